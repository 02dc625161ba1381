package cli

import (
	"bufio"
	"fmt"

	"github.com/p4th0r/domaincheck/internal/blocklist"
	"github.com/p4th0r/domaincheck/internal/config"
	"github.com/p4th0r/domaincheck/internal/domain"
	"github.com/p4th0r/domaincheck/internal/logging"
	"github.com/spf13/cobra"
)

// NewDedupeCmd creates the dedupe subcommand.
func NewDedupeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Print the blocklist collapsed to its roots",
		Long: `Prints the forbidden domains that remain after dropping duplicates and
every entry that is a subdomain of another entry, one per line, in index order.

The blocklist comes from --blocklist / --blocklist-file, or from the
count-prefixed stream on stdin (the query section is then ignored).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.Quiet, cfg.Verbose)

			var entries []blocklist.Entry
			if cfg.IsListMode() {
				var err error
				entries, err = blocklist.Parse(cfg.BlocklistList, cfg.BlocklistFile, cfg.Strict)
				if err != nil {
					return fmt.Errorf("parsing blocklist: %w", err)
				}
			} else {
				stream, err := blocklist.ReadStream(cmd.InOrStdin(), cfg.Strict)
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				entries = stream.Forbidden
			}

			checker := domain.NewChecker(blocklist.Domains(entries))
			logger.BlocklistLoaded(blocklist.Summary(entries), len(entries), checker.Len())

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, d := range checker.Get() {
				fmt.Fprintln(w, d)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("writing roots: %w", err)
			}
			return nil
		},
	}
}
