package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/logging"
	"github.com/xolan/jot/internal/osutil"
	"github.com/xolan/jot/internal/service"
)

// deps is the global dependencies instance used by commands. It is built
// by the root command before each run unless a test installed one.
var deps *cli.Deps

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *cli.Deps) {
	deps = d
}

// ResetDeps clears the global dependencies (for testing cleanup).
func ResetDeps() {
	deps = nil
}

// setupOptions selects how much of the application a command needs.
type setupOptions struct {
	Serve   bool // log at the configured level and format instead of warnings only
	Verbose bool
}

// loadConfig reads the config file, or the defaults when it is missing, and
// applies the environment overrides.
func loadConfig() (cfg config.Config, path string, err error) {
	path, err = config.GetConfigPath()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to determine config file location: %w", err)
	}
	cfg, err = config.LoadOrDefault(path)
	if err != nil {
		return config.Config{}, path, err
	}
	cfg.ApplyEnv(osutil.Provider.Getenv)
	return cfg, path, nil
}

// newDeps loads the configuration, builds the logger and wires the services.
func newDeps(ctx context.Context, opts setupOptions) (*cli.Deps, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: "warn", Format: "console", Verbose: opts.Verbose}
	if opts.Serve {
		logOpts.Level, logOpts.Format = cfg.LogLevel, cfg.LogFormat
	}
	log, err := logging.New(os.Stderr, logOpts)
	if err != nil {
		return nil, err
	}

	services, err := service.NewServices(ctx, cfg, path, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return cli.NewDeps(services, cfg, log), nil
}
