package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli/handlers"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a journal as HTML",
	Long: `Export the entries of a journal as a standalone HTML document, most
recent first. Markdown journals are rendered with goldmark; org journals
with the built-in outline renderer.

Examples:
  jot export > journal.html            Export to stdout
  jot export -o journal.html           Export to a file
  jot export -t work -r lm -o work.html  Last month's work entries`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		typeName, _ := cmd.Flags().GetString("type")
		rangeExpr, _ := cmd.Flags().GetString("range")
		out, _ := cmd.Flags().GetString("output")
		handlers.ExportEntries(deps, typeName, rangeExpr, out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("range", "r", "", "date range to export (see 'jot list --help')")
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}
