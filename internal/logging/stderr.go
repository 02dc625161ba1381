package logging

import (
	"fmt"
	"io"
	"time"
)

// StderrLogger provides formatted output to stderr.
type StderrLogger struct {
	out     io.Writer
	quiet   bool
	verbose bool
}

// NewLogger creates a StderrLogger that writes to w.
func NewLogger(w io.Writer, quiet, verbose bool) *StderrLogger {
	return &StderrLogger{
		out:     w,
		quiet:   quiet,
		verbose: verbose,
	}
}

// Info logs an informational message.
func (l *StderrLogger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[domaincheck] %s\n", msg)
}

// Debug logs a debug message (only if verbose is enabled).
func (l *StderrLogger) Debug(format string, args ...interface{}) {
	if l.quiet || !l.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[domaincheck] DEBUG: %s\n", msg)
}

// Error logs an error message. Errors are printed even in quiet mode.
func (l *StderrLogger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[domaincheck] Error: %s\n", msg)
}

// Separator prints a visual separator line.
func (l *StderrLogger) Separator() {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, "[domaincheck] ───────────────────────────────────────────────")
}

// RunStart logs the run start information.
func (l *StderrLogger) RunStart(runID, mode, index string, workers int) {
	if l.quiet {
		return
	}
	l.Info("Run %s started", runID)
	l.Info("Mode: %s | Index: %s | Workers: %d", mode, index, workers)
}

// BlocklistLoaded logs the blocklist size before and after collapsing
// subdomains into their roots.
func (l *StderrLogger) BlocklistLoaded(summary string, loaded, retained int) {
	if l.quiet {
		return
	}
	if collapsed := loaded - retained; collapsed > 0 {
		l.Info("Blocklist: %s, %d roots (%d collapsed)", summary, retained, collapsed)
	} else {
		l.Info("Blocklist: %s, %d roots", summary, retained)
	}
}

// DryRunConfig holds configuration for dry-run display.
type DryRunConfig struct {
	RunID       string
	Mode        string
	Index       string
	Workers     int
	Strict      bool
	Input       string
	Output      string
	EntryLines  []string
	Roots       []string
	Queries     int
	LogPath     string
	MetricsPath string
}

// DryRun logs what a run would do without checking any query.
func (l *StderrLogger) DryRun(cfg DryRunConfig) {
	l.Info("DRY RUN: no queries will be checked")
	l.Separator()
	l.Info("Run ID:      %s", cfg.RunID)
	l.Info("Mode:        %s", cfg.Mode)
	l.Info("Index:       %s", cfg.Index)
	l.Info("Workers:     %d", cfg.Workers)
	if cfg.Strict {
		l.Info("Validation:  strict")
	} else {
		l.Info("Validation:  off")
	}
	l.Info("Input:       %s", streamName(cfg.Input, "stdin"))
	l.Info("Output:      %s", streamName(cfg.Output, "stdout"))
	l.Info("Queries:     %d", cfg.Queries)

	if len(cfg.EntryLines) > 0 {
		l.Info("Blocklist entries:")
		for _, line := range cfg.EntryLines {
			l.Info("  %s", line)
		}
	}
	if len(cfg.Roots) > 0 {
		l.Info("Forbidden roots:")
		for _, root := range cfg.Roots {
			l.Info("  %s", root)
		}
	}

	if cfg.LogPath != "" {
		l.Info("Log file:    %s", cfg.LogPath)
	}
	if cfg.MetricsPath != "" {
		l.Info("Metrics:     %s", cfg.MetricsPath)
	}
	l.Separator()
}

func streamName(path, std string) string {
	if path == "" || path == "-" {
		return std
	}
	return path
}

// QueryEvent logs a single verdict (only if verbose is enabled).
func (l *StderrLogger) QueryEvent(ev Event, seenCount int) {
	if l.quiet || !l.verbose {
		return
	}

	repeat := ""
	if seenCount > 1 {
		repeat = fmt.Sprintf(" [seen %dx]", seenCount)
	}

	if ev.IsForbidden() {
		fmt.Fprintf(l.out, "[domaincheck] #%d  BAD   %s (under %s)%s\n", ev.Index+1, ev.Query, ev.Root, repeat)
		return
	}
	fmt.Fprintf(l.out, "[domaincheck] #%d  GOOD  %s%s\n", ev.Index+1, ev.Query, repeat)
}

// PrintRunSummary prints the run-end summary to stderr.
func (l *StderrLogger) PrintRunSummary(runID string, duration time.Duration, summary Summary, hits []RootInfo) {
	if l.quiet {
		return
	}

	l.Separator()
	l.Info("Run %s finished (duration %.3fs)", runID, duration.Seconds())
	l.Info("Queries: %d total (%d bad, %d good), %d unique",
		summary.TotalQueries, summary.ForbiddenQueries, summary.AllowedQueries, summary.UniqueQueries)

	if len(hits) > 0 {
		l.Info("  Matched roots:")
		for _, h := range hits {
			l.Info("    %s ×%d", h.Root, h.Count)
		}
	}
}
