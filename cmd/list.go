package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli/handlers"
	"github.com/xolan/jot/internal/timeutil"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [range]",
	Short: "List journal entries",
	Long: `List the entries of a journal, most recent first. The index shown is
the one 'jot show' takes.

Ranges:
  today, y (yesterday), w (this week), lw (last week), m (this month),
  lm (last month), "last N days", a date (YYYY-MM-DD) or FROM..TO

Examples:
  jot list                       All entries
  jot list w                     This week's entries
  jot list 2024-03-01..          Entries since March 1st 2024
  jot list -s tea                Entries mentioning "tea"
  jot list -t work lm            Last month's work entries`,
	Aliases:   []string{"ls"},
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: timeutil.RangeNames,
	Run: func(cmd *cobra.Command, args []string) {
		typeName, _ := cmd.Flags().GetString("type")
		keyword, _ := cmd.Flags().GetString("search")
		rangeExpr := ""
		if len(args) > 0 {
			rangeExpr = args[0]
		}
		handlers.ListEntries(deps, typeName, rangeExpr, keyword)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "s", "", "only entries containing this keyword (case-insensitive)")
}
