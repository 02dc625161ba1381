package cli

import (
	"github.com/spf13/cobra"
)

// NewCompletionCmd creates the completion subcommand with shell-specific subcommands.
func NewCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for domaincheck to stdout.

Besides subcommands and flag names, the scripts complete --index with the
available lookup indexes (sorted, radix) and --log with "auto". File flags
(--blocklist-file, -i, -o, --metrics-file) fall back to file names.

Load for the current shell session:
  bash:  source <(domaincheck completion bash)
  zsh:   source <(domaincheck completion zsh)
  fish:  domaincheck completion fish | source`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			}
			return nil
		},
	}

	return cmd
}
