package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/cli/handlers"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Write a journal entry",
	Long: `Write an entry under today's date. The text is analysed into the
sections of its entry type when GEMINI_API_TOKEN is set and always kept
verbatim under "Raw Input". Without arguments the text is read from stdin.

Examples:
  jot add slept well, long walk in the park
  jot add -t work shipped the exporter, blocked on review
  pbpaste | jot add`,
	Run: func(cmd *cobra.Command, args []string) {
		typeName, _ := cmd.Flags().GetString("type")
		content, err := handlers.ReadContent(deps, args)
		if err != nil {
			cli.Fail(deps, "Failed to read entry text", err, "")
			return
		}
		writeEntry(cmd, typeName, content)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// writeEntry prepares the journal directory before composing so that a
// git-backed journal is cloned or opened before the first file is written.
func writeEntry(cmd *cobra.Command, typeName, content string) {
	ctx := cmd.Context()
	if err := deps.Services.Init(ctx); err != nil {
		cli.Fail(deps, "Failed to prepare the journal directory", err, "Check storage_dir and the git settings in 'jot config'")
		return
	}
	handlers.AddEntry(ctx, deps, typeName, content)
}
