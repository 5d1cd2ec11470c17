package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for revtree.

With completions loaded, subcommands and flags complete in place, e.g.
typing "revtree render ledger.xlsx -f " suggests the output formats.

To load completions:

Bash:
  $ source <(revtree completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ revtree completion bash > /etc/bash_completion.d/revtree
  # macOS:
  $ revtree completion bash > $(brew --prefix)/etc/bash_completion.d/revtree

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ revtree completion zsh > "${fpath[1]}/_revtree"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ revtree completion fish | source

  # To load completions for each session, execute once:
  $ revtree completion fish > ~/.config/fish/completions/revtree.fish

PowerShell:
  PS> revtree completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> revtree completion powershell > revtree.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
