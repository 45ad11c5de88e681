package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/pipeline"
)

// documentExts are the file extensions offered when completing a document
// argument.
var documentExts = []string{"json", "jsonc", "yaml", "yml"}

// takesDocuments lists the commands whose arguments are RoomML documents.
var takesDocuments = map[string]bool{
	"validate": true,
	"layout":   true,
	"render":   true,
	"fmt":      true,
	"watch":    true,
	"inspect":  true,
}

func completeDocuments(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return documentExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last entry of a comma-separated --format
// value, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	used := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		used[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, name := range pipeline.FormatNames {
		if !used[name] && strings.HasPrefix(name, last) {
			out = append(out, prefix+name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for roomml.

Besides command and flag names, the scripts complete document arguments of
validate, layout, render, fmt, watch and inspect to .json, .jsonc, .yaml and
.yml files, and --format to the known output formats (comma-separated lists
included).

Load it for the current shell:

  $ source <(roomml completion bash)
  $ roomml completion fish | source
  PS> roomml completion powershell | Out-String | Invoke-Expression

Or install it once:

  $ roomml completion bash > ~/.local/share/bash-completion/completions/roomml
  $ roomml completion zsh > "${fpath[1]}/_roomml"
  $ roomml completion fish > ~/.config/fish/completions/roomml.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}

	return cmd
}
