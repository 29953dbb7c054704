package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/jot/internal/cli"
)

// ShowConfig displays the effective configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for jot")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Format:          %s\n", cfg.Format)
	storageDir := cfg.StorageDir
	if storageDir == "" {
		storageDir = "(default)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Storage Dir:     %s\n", storageDir)
	_, _ = fmt.Fprintf(deps.Stdout, "Week Start Day:  %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:        %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "Listen Addr:     %s\n", cfg.ListenAddr)
	_, _ = fmt.Fprintf(deps.Stdout, "Session TTL:     %s\n", cfg.SessionDuration())
	_, _ = fmt.Fprintf(deps.Stdout, "Entry Types:     %s\n", strings.Join(cfg.TypeNames(), ", "))

	analysis := "off (GEMINI_API_TOKEN not set)"
	if cfg.GeminiToken != "" {
		analysis = cfg.AI.Model
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Analysis:        %s\n", analysis)

	sync := "off"
	if cfg.GitEnabled() {
		sync = cfg.GitRemoteURL()
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Git Sync:        %s\n", sync)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'jot config init' to create a sample config file.")
	}
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	if err := deps.Services.Config.Init(); err != nil {
		cli.Fail(deps, "Failed to create config file", err, "")
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
