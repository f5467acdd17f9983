package cli

import (
	"github.com/spf13/cobra"
)

// inputExtensions are the document formats pkg/graph can read.
var inputExtensions = []string{"json", "yaml", "yml"}

// completeInputFile completes the optional [file] argument with causality
// tree documents only.
func completeInputFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return inputExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand prints shell completion scripts. Input arguments
// complete to .json, .yaml and .yml files.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for causeview. File arguments of
serve, tui, render, inspect and export complete to causality tree
documents (.json, .yaml, .yml).

Bash:
  $ source <(causeview completion bash)

Zsh:
  $ causeview completion zsh > "${fpath[1]}/_causeview"

Fish:
  $ causeview completion fish > ~/.config/fish/completions/causeview.fish

PowerShell:
  PS> causeview completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
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
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
