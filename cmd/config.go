package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/jot/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for jot.

Shows the configuration file location, whether it exists, and the current
settings. Values are merged from the config file with defaults; secrets
come only from the environment:

  JOURNAL_PASSWORD     password for the web API (required by 'jot serve')
  GEMINI_API_TOKEN     enables entry analysis
  GITHUB_TOKEN         enables git sync, with GIT_USERNAME and GIT_REPO_NAME

Configuration file location:
  ~/.config/jot/config.toml          Linux
  ~/Library/Application Support/jot/config.toml   macOS
  %APPDATA%\jot\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(deps)
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Long:  `Write a commented sample config.toml to the config file location. An existing file is never overwritten.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(deps)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
