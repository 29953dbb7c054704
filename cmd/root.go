package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/cli/handlers"
	"github.com/xolan/jot/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "An AI-assisted journal",
	Long: `jot keeps a plain-text journal in org or markdown files. Entries are
analysed into sections (with GEMINI_API_TOKEN set), written under today's
date and optionally synced to a git remote.

Usage:
  jot <text>                       Write a journal entry
  jot                              List journal entries
  jot add -t work <text>           Write an entry of another type
  jot list w                       List this week's entries
  jot show 1                       Show the most recent entry
  jot export -o journal.html       Export the journal as HTML
  jot serve                        Run the web API
  jot tui                          Open the terminal UI
  jot validate                     Check journal file health
  jot restore [n]                  Restore a journal backup (default: most recent)

Entry types are configured in the config file; see 'jot types'.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deps != nil && deps.Log != nil {
			_ = deps.Log.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		typeName, _ := cmd.Flags().GetString("type")
		if len(args) == 0 {
			handlers.ListEntries(deps, typeName, "", "")
			return
		}
		writeEntry(cmd, typeName, strings.Join(args, " "))
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check journal file health",
	Long: `Validate every journal file and report its line and entry counts, how
many entries carry raw input and any lines that sit outside a dated entry.`,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateJournals(deps)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().StringP("type", "t", "", "entry type (default \""+config.DefaultEntryType+"\")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// errReported marks errors already printed in the Error/Details/Hint form
var errReported = errors.New("reported")

// ownDeps is set when setup built deps, which Execute then discards
var ownDeps bool

// setup builds deps for the command about to run. Commands annotated with
// skipServices only get the process streams.
func setup(cmd *cobra.Command) error {
	if deps != nil {
		return nil
	}
	if cmd.Annotations["skipServices"] == "true" {
		deps, ownDeps = cli.NewDeps(nil, config.DefaultConfig(), nil), true
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := newDeps(ctx, setupOptions{Serve: cmd == serveCmd, Verbose: verbose})
	if err != nil {
		stderr := cmd.ErrOrStderr()
		_, _ = fmt.Fprintln(stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "Hint: Check that your config file is valid TOML; 'jot config init' writes a commented sample")
		return fmt.Errorf("%w: %w", errReported, err)
	}
	deps, ownDeps = d, true
	return nil
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"jot version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command with ctx, which serve and tui stop on
func Execute(ctx context.Context) error {
	defer func() {
		if ownDeps {
			deps, ownDeps = nil, false
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Hint: Run 'jot --help' for usage")
	}
	return err
}
