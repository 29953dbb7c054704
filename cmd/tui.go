package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for jot.

Views available:
  - Entries: Browse entries by type and date range, search and read them
  - Compose: Write a new entry
  - Config: View configuration and pick a theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-3: Jump to specific view
  - j/k or arrows: Navigate within lists
  - T: Cycle entry type, t/y/w/W/m/M/a: pick a date range
  - ctrl+s: Save the entry being composed
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI(cmd *cobra.Command) {
	ctx := cmd.Context()
	if err := deps.Services.Init(ctx); err != nil {
		cli.Fail(deps, "Failed to prepare the journal directory", err, "Check storage_dir and the git settings in 'jot config'")
		return
	}

	if err := tui.Run(ctx, deps.Services); err != nil && ctx.Err() == nil {
		cli.Fail(deps, "Failed to run the terminal UI", err, "")
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cmd)
		return true
	}
	return false
}
