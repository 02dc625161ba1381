// Package config provides the unified configuration struct for domaincheck.
package config

import (
	"fmt"

	"github.com/p4th0r/domaincheck/internal/domain"
)

// Run modes reported by Mode.
const (
	ModeStream = "stream" // blocklist and queries both come from the input
	ModeList   = "list"   // blocklist from flags, input holds only queries
)

// LogAuto asks for a JSON log at the default per-run path.
const LogAuto = "auto"

// StdStream names stdin or stdout for --input and --output.
const StdStream = "-"

// Config holds all parsed CLI state for a domaincheck run.
type Config struct {
	// Blocklist sources; when both are empty the blocklist is read from the input
	BlocklistList string // raw --blocklist value (comma-separated)
	BlocklistFile string // raw --blocklist-file path

	// I/O
	Input  string // --input path, "-" for stdin
	Output string // --output path, "-" for stdout

	// Lookup
	Index   string // "sorted" or "radix"
	Workers int
	Strict  bool

	// Options
	LogPath     string // --log path, "auto" for the default name
	MetricsPath string
	DryRun      bool
	Quiet       bool
	Verbose     bool

	// Derived values (set after parsing)
	RunID string // generated 4-char hex
}

// Mode returns a string describing where the blocklist comes from.
func (c *Config) Mode() string {
	if c.IsListMode() {
		return ModeList
	}
	return ModeStream
}

// IsListMode returns true if the blocklist is given by flags.
func (c *Config) IsListMode() bool {
	return c.BlocklistList != "" || c.BlocklistFile != ""
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Index {
	case domain.IndexSorted, domain.IndexRadix:
	default:
		return fmt.Errorf("invalid index %q: use %s or %s", c.Index, domain.IndexSorted, domain.IndexRadix)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive (got %d)", c.Workers)
	}

	if c.Input == "" || c.Output == "" {
		return fmt.Errorf("input and output must be a path or %q", StdStream)
	}
	if c.Input != StdStream && c.Input == c.Output {
		return fmt.Errorf("input and output are the same file: %s", c.Input)
	}

	if c.LogPath != "" && c.LogPath == c.Output && c.Output != StdStream {
		return fmt.Errorf("log and output are the same file: %s", c.LogPath)
	}

	if c.Quiet && c.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	return nil
}
