package cli

import (
	"fmt"

	"github.com/p4th0r/domaincheck/internal/blocklist"
	"github.com/p4th0r/domaincheck/internal/config"
	"github.com/p4th0r/domaincheck/internal/domain"
	"github.com/p4th0r/domaincheck/internal/lookup"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check subcommand.
func NewCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>...",
		Short: "Check names given as arguments",
		Long: `Checks each name against --blocklist / --blocklist-file and prints
"<name> Bad" or "<name> Good", one per line.

Example:
  domaincheck check --blocklist gdz.ru,com maps.com m.gdz.ru ggdz.ru`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cfg.IsListMode() {
				return fmt.Errorf("check needs --blocklist or --blocklist-file")
			}

			entries, err := blocklist.Parse(cfg.BlocklistList, cfg.BlocklistFile, cfg.Strict)
			if err != nil {
				return fmt.Errorf("parsing blocklist: %w", err)
			}
			queries := args
			if cfg.Strict {
				queries = make([]string, len(args))
				for i, name := range args {
					if queries[i], err = blocklist.NormalizeQuery(name); err != nil {
						return err
					}
				}
			}

			matcher, err := domain.NewMatcher(cfg.Index, blocklist.Domains(entries))
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			results, err := lookup.Run(cmd.Context(), matcher, queries, lookup.Options{Workers: 1})
			if err != nil {
				return err
			}
			// echo the names as given
			for i := range results {
				results[i].Query = args[i]
			}
			return lookup.WriteLabelled(cmd.OutOrStdout(), results)
		},
	}
}
