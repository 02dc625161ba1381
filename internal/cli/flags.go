// Package cli provides the command-line interface for domaincheck.
package cli

import (
	"github.com/p4th0r/domaincheck/internal/config"
	"github.com/p4th0r/domaincheck/internal/domain"
	"github.com/spf13/cobra"
)

// AddFlags adds all flags to the root command. Blocklist, index and output
// verbosity flags are persistent so the subcommands share them.
func AddFlags(cmd *cobra.Command, cfg *config.Config) {
	// Blocklist source
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfg.BlocklistList, "blocklist", "", "Comma-separated forbidden domains (queries are then read one per line)")
	pf.StringVar(&cfg.BlocklistFile, "blocklist-file", "", "Path to blocklist file (one domain per line)")
	pf.StringVar(&cfg.Index, "index", domain.IndexSorted, "Lookup index: sorted or radix")
	pf.BoolVar(&cfg.Strict, "strict", false, "Reject names that are not valid hostnames")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress informational output")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Show debug output and a trace line per query")

	// Run options
	cmd.Flags().StringVarP(&cfg.Input, "input", "i", config.StdStream, "Input file (- for stdin)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", config.StdStream, "Output file for verdicts (- for stdout)")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 1, "Number of goroutines checking queries")
	cmd.Flags().StringVar(&cfg.LogPath, "log", "", "Path for JSON run log (\"auto\": ./domaincheck-<id>-<timestamp>.json)")
	cmd.Flags().StringVar(&cfg.MetricsPath, "metrics-file", "", "Write Prometheus metrics in text format to this path")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Load and index the blocklist, then report without checking queries")

	_ = cmd.RegisterFlagCompletionFunc("index", completeIndex)
	_ = cmd.RegisterFlagCompletionFunc("log", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.LogAuto}, cobra.ShellCompDirectiveDefault
	})
}

func completeIndex(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		domain.IndexSorted + "\tbinary search over sorted roots",
		domain.IndexRadix + "\tradix tree keyed by canonical name",
	}, cobra.ShellCompDirectiveNoFileComp
}
