package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore a journal from a backup",
	Long: `Restore a journal file from a backup. A backup is taken before every
write, keeping the last 3.

By default, restores from the most recent backup (.bak.1). Restoring backs
up the current file first, so a restore can itself be undone.

Examples:
  jot restore            Restore the journal from its most recent backup
  jot restore 2          Restore from backup #2
  jot restore -t work    Restore the work journal`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		typeName, _ := cmd.Flags().GetString("type")
		handlers.RestoreJournal(deps, typeName, args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
