package logging

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestStderrLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, true, true)

	l.Info("hello")
	l.Debug("details")
	l.Separator()
	l.RunStart("a3f8", "stream", "sorted", 1)
	l.QueryEvent(Event{Query: "me"}, 1)
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}

	l.Error("boom")
	if got := buf.String(); got != "[domaincheck] Error: boom\n" {
		t.Errorf("Error() wrote %q", got)
	}
}

func TestStderrLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false, false)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Debug without verbose wrote %q", buf.String())
	}

	l = NewLogger(&buf, false, true)
	l.Debug("shown %d", 42)
	if got := buf.String(); got != "[domaincheck] DEBUG: shown 42\n" {
		t.Errorf("Debug() wrote %q", got)
	}
}

func TestStderrLogger_BlocklistLoaded(t *testing.T) {
	tests := []struct {
		loaded, retained int
		want             string
	}{
		{5, 4, "[domaincheck] Blocklist: 5 domains, 4 roots (1 collapsed)\n"},
		{2, 2, "[domaincheck] Blocklist: 2 domains, 2 roots\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		summary := fmt.Sprintf("%d domains", tt.loaded)
		NewLogger(&buf, false, false).BlocklistLoaded(summary, tt.loaded, tt.retained)
		if got := buf.String(); got != tt.want {
			t.Errorf("BlocklistLoaded(%d, %d) wrote %q, want %q", tt.loaded, tt.retained, got, tt.want)
		}
	}
}

func TestStderrLogger_DryRun(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false, false)
	l.DryRun(DryRunConfig{
		RunID:      "a3f8",
		Mode:       "list",
		Index:      "radix",
		Workers:    4,
		Input:      "-",
		Output:     "verdicts.txt",
		EntryLines: []string{"domain   gdz.ru                         flag"},
		Roots:      []string{"gdz.ru"},
		Queries:    3,
		LogPath:    "run.json",
	})

	out := buf.String()
	for _, want := range []string{
		"DRY RUN",
		"Run ID:      a3f8",
		"Index:       radix",
		"Input:       stdin",
		"Output:      verdicts.txt",
		"Queries:     3",
		"  gdz.ru",
		"Log file:    run.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DryRun output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Metrics:") {
		t.Errorf("DryRun output mentions metrics without a path:\n%s", out)
	}
}

func TestStderrLogger_PrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false, false)
	l.PrintRunSummary("a3f8", 1500*time.Millisecond, Summary{
		TotalQueries:     3,
		ForbiddenQueries: 2,
		AllowedQueries:   1,
		UniqueQueries:    3,
	}, []RootInfo{{Root: "com", Count: 2}})

	out := buf.String()
	for _, want := range []string{
		"Run a3f8 finished (duration 1.500s)",
		"Queries: 3 total (2 bad, 1 good), 3 unique",
		"com ×2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
