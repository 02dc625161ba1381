package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestBuildJSONLog(t *testing.T) {
	run := RunInfo{
		ID:        "a3f8",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(10 * time.Millisecond),
		Mode:      "stream",
		Index:     "sorted",
		Workers:   1,
		Input:     "-",
		Output:    "-",
	}
	blocklist := BlocklistInfo{Loaded: 5, Retained: 4, Roots: []string{"abc.de", "maps.me", "com", "gdz.ru"}}

	events := []Event{
		{
			Timestamp: time.Now(),
			Type:      EventQueryForbidden,
			Index:     0,
			Query:     "alg.m.gdz.ru",
			Domain:    "alg.m.gdz.ru",
			Root:      "gdz.ru",
			Duration:  1500 * time.Microsecond,
		},
		{
			Timestamp: time.Now(),
			Type:      EventQueryAllowed,
			Index:     1,
			Query:     "me",
			Domain:    "me",
		},
	}

	summary := Summary{
		TotalQueries:     2,
		ForbiddenQueries: 1,
		AllowedQueries:   1,
		UniqueQueries:    2,
		MatchedRoots:     1,
	}

	log := BuildJSONLog(run, blocklist, events, summary)

	if len(log.Queries) != 2 {
		t.Errorf("Queries count = %d, want 2", len(log.Queries))
	}
	if log.Queries[0].Verdict != "Bad" || log.Queries[0].Root != "gdz.ru" {
		t.Errorf("Queries[0] = %+v, want Bad under gdz.ru", log.Queries[0])
	}
	if log.Queries[1].Verdict != "Good" {
		t.Errorf("Queries[1].Verdict = %q, want Good", log.Queries[1].Verdict)
	}
	if got := log.Queries[0].DurationSecs; got != 0.0015 {
		t.Errorf("Queries[0].DurationSecs = %v, want 0.0015", got)
	}
	if log.Run.ID != "a3f8" {
		t.Errorf("Run.ID = %q, want a3f8", log.Run.ID)
	}
	if log.Summary.ForbiddenQueries != 1 {
		t.Errorf("Summary.ForbiddenQueries = %d, want 1", log.Summary.ForbiddenQueries)
	}

	data, err := json.Marshal(log)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	if strings.Contains(string(data), `"root":""`) {
		t.Errorf("allowed query carries an empty root: %s", data)
	}
}

func TestBuildJSONLog_EmptyEvents(t *testing.T) {
	log := BuildJSONLog(RunInfo{ID: "test"}, BlocklistInfo{}, nil, Summary{})

	if log.Queries == nil {
		t.Error("Queries should be non-nil empty slice")
	}
	if log.Blocklist.Roots == nil {
		t.Error("Blocklist.Roots should be non-nil empty slice")
	}
}

func TestWriteJSONLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "test.json")

	log := JSONLog{
		Run:     RunInfo{ID: "test"},
		Queries: []QueryEntry{{Query: "me", Domain: "me", Verdict: "Good"}},
	}

	if err := WriteJSONLog(path, log); err != nil {
		t.Fatalf("WriteJSONLog error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}

	var parsed JSONLog
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshaling written JSON: %v", err)
	}
	if parsed.Run.ID != "test" {
		t.Errorf("Run.ID = %q, want test", parsed.Run.ID)
	}
	if len(parsed.Queries) != 1 || parsed.Queries[0].Verdict != "Good" {
		t.Errorf("Queries = %+v", parsed.Queries)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath("a3f8")
	if !regexp.MustCompile(`^\./domaincheck-a3f8-\d{8}-\d{6}\.json$`).MatchString(path) {
		t.Errorf("DefaultLogPath() = %q", path)
	}
}

func TestNewRunID(t *testing.T) {
	id, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID error: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{4}$`).MatchString(id) {
		t.Errorf("NewRunID() = %q, want 4 hex characters", id)
	}
}
