package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// completionGenerators maps a shell name to the cobra generator for it.
var completionGenerators = map[string]func(w io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletion(w) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Print a completion script for jot to stdout.

Load it for the current session:
  source <(jot completion bash)
  source <(jot completion zsh)

Or install it:
  jot completion bash > ~/.local/share/bash-completion/completions/jot
  jot completion zsh  > "${fpath[1]}/_jot"
  jot completion fish > ~/.config/fish/completions/jot.fish
  jot completion powershell | Out-String | Invoke-Expression   # in $PROFILE`,
	ValidArgs:   supportedShells(),
	Annotations: map[string]string{"skipServices": "true"},
	Args:        cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func supportedShells() []string {
	return []string{"bash", "zsh", "fish", "powershell"}
}

// generateCompletion writes the completion script for shell to deps.Stdout
func generateCompletion(shell string) {
	gen, ok := completionGenerators[shell]
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintf(deps.Stderr, "Supported shells: %s\n", strings.Join(supportedShells(), ", "))
		deps.Exit(1)
		return
	}

	if err := gen(deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}
