package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/palette"
	"github.com/matzehuels/heatmap/pkg/pipeline"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for heatmap.

Bash:
  $ source <(heatmap completion bash)

Zsh:
  $ heatmap completion zsh > "${fpath[1]}/_heatmap"

Fish:
  $ heatmap completion fish > ~/.config/fish/completions/heatmap.fish

PowerShell:
  PS> heatmap completion powershell | Out-String | Invoke-Expression

Flag values such as --palette and --format complete as well.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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
}

// registerFlagCompletions wires value completion for the chart flags that
// cmd defines.
func registerFlagCompletions(cmd *cobra.Command) {
	complete := func(name string, values func() []string) {
		if cmd.Flags().Lookup(name) == nil {
			return
		}
		_ = cmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeList(values(), toComplete)
		})
	}
	complete("palette", palette.Names)
	complete("palette-order", func() []string {
		return []string{string(palette.WarmFirst), string(palette.CoolFirst)}
	})
	complete("format", formatNames)
}

func formatNames() []string {
	names := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// completeList completes the last element of a comma-separated value.
func completeList(values []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, last) {
			matches = append(matches, prefix+v)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
