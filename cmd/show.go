package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli/handlers"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show one entry",
	Long: `Render one entry as an outline. The index refers to the entry number
shown by 'jot list' (1 is the most recent).

Examples:
  jot show 1                     The most recent entry
  jot show --html 3 > entry.html The third most recent entry as HTML`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		typeName, _ := cmd.Flags().GetString("type")
		html, _ := cmd.Flags().GetBool("html")
		handlers.ShowEntry(deps, typeName, args[0], html)
	},
}

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List entry types",
	Long:  `List the configured entry types, the journal file each writes to and the fields it is analysed into.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListTypes(deps)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(typesCmd)
	showCmd.Flags().Bool("html", false, "render as HTML")
}
