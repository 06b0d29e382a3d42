package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionWriters maps a shell name to its cobra generator.
var completionWriters = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionWriters))
	for name := range completionWriters {
		shells = append(shells, name)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion <" + strings.Join(shells, "|") + ">",
		Short: "Print a shell completion script",
		Long: `Print a completion script for the given shell to stdout.

  $ source <(autogen completion bash)
  $ autogen completion zsh > "${fpath[1]}/_autogen"
  $ autogen completion fish > ~/.config/fish/completions/autogen.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionWriters[args[0]](cmd.Root(), c.Out)
		},
	}
}
