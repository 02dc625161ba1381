package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/p4th0r/domaincheck/internal/blocklist"
	"github.com/p4th0r/domaincheck/internal/config"
	"github.com/p4th0r/domaincheck/internal/domain"
	"github.com/p4th0r/domaincheck/internal/logging"
	"github.com/p4th0r/domaincheck/internal/lookup"
	"github.com/p4th0r/domaincheck/internal/metrics"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for domaincheck.
func NewRootCmd(version ...string) *cobra.Command {
	ver := "dev"
	if len(version) > 0 && version[0] != "" {
		ver = version[0]
	}
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "domaincheck [OPTIONS]",
		Short: "Check domain names against a blocklist of forbidden domains",
		Long: `domaincheck answers, for each query, whether the name is a forbidden domain
or a subdomain of one. Matching is case-insensitive and label-aware:
"m.gdz.ru" is under "gdz.ru", "x-gdz.ru" is not.

By default the input holds both lists:
  <n>            number of forbidden domains
  <n names>      one per line
  <m>            number of queries
  <m names>      one per line

With --blocklist or --blocklist-file the input holds only queries, one per line.

Each query produces one line of output: "Bad" if forbidden, "Good" otherwise.

Example:
  printf '2\ngdz.ru\ncom\n2\nm.gdz.ru\nme\n' | domaincheck
  domaincheck --blocklist-file blocked.txt --index radix -i queries.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDomaincheck(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	AddFlags(cmd, cfg)

	// Add subcommands
	cmd.AddCommand(NewCheckCmd(cfg))
	cmd.AddCommand(NewDedupeCmd(cfg))
	cmd.AddCommand(NewVersionCmd(ver))
	cmd.AddCommand(NewCompletionCmd())

	return cmd
}

func runDomaincheck(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := logging.NewLogger(stderr, cfg.Quiet, cfg.Verbose)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID, err := logging.NewRunID()
	if err != nil {
		return err
	}
	cfg.RunID = runID
	startTime := time.Now()

	in, closeIn, err := openInput(cfg.Input, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	entries, queries, err := load(cfg, in)
	if err != nil {
		return err
	}
	logger.Debug("Loaded %s and %d queries from %s", blocklist.Summary(entries), len(queries), cfg.Mode())

	matcher, err := domain.NewMatcher(cfg.Index, blocklist.Domains(entries))
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	met := metrics.New("domaincheck", "", map[string]string{"index": cfg.Index})
	met.SetEntries(len(entries), matcher.Len())

	logPath := cfg.LogPath
	if logPath == config.LogAuto {
		logPath = logging.DefaultLogPath(runID)
	}

	// Handle dry run
	if cfg.DryRun {
		entryLines := make([]string, 0, len(entries))
		for _, e := range entries {
			entryLines = append(entryLines, e.String())
		}
		logger.DryRun(logging.DryRunConfig{
			RunID:       runID,
			Mode:        cfg.Mode(),
			Index:       cfg.Index,
			Workers:     cfg.Workers,
			Strict:      cfg.Strict,
			Input:       cfg.Input,
			Output:      cfg.Output,
			EntryLines:  entryLines,
			Roots:       rootNames(matcher),
			Queries:     len(queries),
			LogPath:     logPath,
			MetricsPath: cfg.MetricsPath,
		})
		return nil
	}

	logger.RunStart(runID, cfg.Mode(), cfg.Index, cfg.Workers)
	logger.BlocklistLoaded(blocklist.Summary(entries), len(entries), matcher.Len())

	results, err := lookup.Run(ctx, matcher, queries, lookup.Options{
		Workers: cfg.Workers,
		Observe: func(r lookup.Result) {
			met.ObserveQuery(r.Forbidden, r.Duration)
		},
	})
	if err != nil {
		return err
	}

	// Events are fed in query order so the verbose trace and seen counts
	// do not depend on worker scheduling.
	eventLogger := logging.NewEventLogger(logger)
	eventLogger.Start()
	for _, r := range results {
		eventLogger.EventCh() <- newEvent(r)
	}
	eventLogger.Stop()

	// The output file is only created once every verdict is known.
	out, closeOut, err := openOutput(cfg.Output, stdout)
	if err != nil {
		return err
	}
	if err := lookup.WriteVerdicts(out, results); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	endTime := time.Now()
	duration := endTime.Sub(startTime)

	summary := eventLogger.GetSummary()
	logger.PrintRunSummary(runID, duration, summary, eventLogger.GetRootHits())

	// Write JSON log file
	if logPath != "" {
		run := logging.RunInfo{
			ID:           runID,
			StartTime:    startTime,
			EndTime:      endTime,
			DurationSecs: duration.Seconds(),
			Mode:         cfg.Mode(),
			Index:        cfg.Index,
			Workers:      cfg.Workers,
			Strict:       cfg.Strict,
			Input:        cfg.Input,
			Output:       cfg.Output,
		}
		bl := logging.BlocklistInfo{
			Loaded:   len(entries),
			Retained: matcher.Len(),
			Roots:    rootNames(matcher),
		}
		jsonLog := logging.BuildJSONLog(run, bl, eventLogger.GetEvents(), summary)
		if err := logging.WriteJSONLog(logPath, jsonLog); err != nil {
			logger.Error("Failed to write JSON log: %v", err)
		} else {
			logger.Info("JSON log written to %s", logPath)
		}
	}

	if cfg.MetricsPath != "" {
		if err := metrics.WriteTextfile(cfg.MetricsPath, met); err != nil {
			logger.Error("Failed to write metrics: %v", err)
		} else {
			logger.Debug("Metrics written to %s", cfg.MetricsPath)
		}
	}

	return nil
}

// load reads the blocklist and the queries for the configured mode.
func load(cfg *config.Config, in io.Reader) ([]blocklist.Entry, []string, error) {
	if cfg.IsListMode() {
		entries, err := blocklist.Parse(cfg.BlocklistList, cfg.BlocklistFile, cfg.Strict)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing blocklist: %w", err)
		}
		queries, err := blocklist.ReadQueries(in, cfg.Strict)
		if err != nil {
			return nil, nil, fmt.Errorf("reading queries: %w", err)
		}
		return entries, queries, nil
	}

	stream, err := blocklist.ReadStream(in, cfg.Strict)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	return stream.Forbidden, stream.Queries, nil
}

func newEvent(r lookup.Result) logging.Event {
	ev := logging.Event{
		Timestamp: time.Now(),
		Type:      logging.EventQueryAllowed,
		Index:     r.Index,
		Query:     r.Query,
		Domain:    r.Domain.String(),
		Duration:  r.Duration,
	}
	if r.Forbidden {
		ev.Type = logging.EventQueryForbidden
		ev.Root = r.Root.String()
	}
	return ev
}

func rootNames(m domain.Matcher) []string {
	roots := m.Roots()
	names := make([]string, len(roots))
	for i, d := range roots {
		names[i] = d.String()
	}
	return names
}

func openInput(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == config.StdStream {
		return stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, f.Close, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == config.StdStream {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	return f, f.Close, nil
}
