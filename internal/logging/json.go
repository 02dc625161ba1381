package logging

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// JSONLog is the top-level structure for the JSON log file.
type JSONLog struct {
	Run       RunInfo       `json:"run"`
	Blocklist BlocklistInfo `json:"blocklist"`
	Queries   []QueryEntry  `json:"queries"`
	Summary   SummaryInfo   `json:"summary"`
}

// RunInfo holds metadata about the domaincheck run.
type RunInfo struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	DurationSecs float64   `json:"duration_seconds"`
	Mode         string    `json:"mode"`
	Index        string    `json:"index"`
	Workers      int       `json:"workers"`
	Strict       bool      `json:"strict"`
	Input        string    `json:"input"`
	Output       string    `json:"output"`
}

// BlocklistInfo describes the forbidden set used for the run.
type BlocklistInfo struct {
	Loaded   int      `json:"loaded"`
	Retained int      `json:"retained"`
	Roots    []string `json:"roots"`
}

// QueryEntry represents a single checked query in the log.
type QueryEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	Index        int       `json:"index"`
	Query        string    `json:"query"`
	Domain       string    `json:"domain"`
	Verdict      string    `json:"verdict"`
	Root         string    `json:"root,omitempty"`
	DurationSecs float64   `json:"duration_seconds"` // time spent in the matcher
}

// SummaryInfo holds summary statistics for the log.
type SummaryInfo struct {
	TotalQueries     int `json:"total_queries"`
	ForbiddenQueries int `json:"forbidden_queries"`
	AllowedQueries   int `json:"allowed_queries"`
	UniqueQueries    int `json:"unique_queries"`
	MatchedRoots     int `json:"matched_roots"`
}

// BuildJSONLog constructs a JSONLog from run info and events.
func BuildJSONLog(run RunInfo, blocklist BlocklistInfo, events []Event, summary Summary) JSONLog {
	queries := make([]QueryEntry, 0, len(events))
	for _, ev := range events {
		queries = append(queries, QueryEntry{
			Timestamp:    ev.Timestamp,
			Index:        ev.Index,
			Query:        ev.Query,
			Domain:       ev.Domain,
			Verdict:      ev.Verdict(),
			Root:         ev.Root,
			DurationSecs: ev.Duration.Seconds(),
		})
	}

	if blocklist.Roots == nil {
		blocklist.Roots = []string{}
	}

	return JSONLog{
		Run:       run,
		Blocklist: blocklist,
		Queries:   queries,
		Summary: SummaryInfo{
			TotalQueries:     summary.TotalQueries,
			ForbiddenQueries: summary.ForbiddenQueries,
			AllowedQueries:   summary.AllowedQueries,
			UniqueQueries:    summary.UniqueQueries,
			MatchedRoots:     summary.MatchedRoots,
		},
	}
}

// WriteJSONLog writes the JSON log to the specified path atomically.
func WriteJSONLog(path string, log JSONLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON log: %w", err)
	}

	// Write atomically: write to .tmp, then rename
	dir := filepath.Dir(path)
	tmpPath := path + ".tmp"

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temporary log file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming log file: %w", err)
	}

	return nil
}

// DefaultLogPath returns the default log file path for a run.
func DefaultLogPath(runID string) string {
	ts := time.Now().Format("20060102-150405")
	return fmt.Sprintf("./domaincheck-%s-%s.json", runID, ts)
}

// NewRunID returns a random 4-character hex string (e.g., "a3f8").
func NewRunID() (string, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating run ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
