package cmd

import (
	"context"
	"net"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xolan/jot/internal/auth"
	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/server"
)

const sessionPruneInterval = 5 * time.Minute

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web API",
	Long: `Run the HTTP API and serve the web front end.

Submitted entries are queued and composed by a background worker, so the
API answers before analysis and git sync finish. The server stops on
SIGINT or SIGTERM after draining in-flight requests and queued entries.

JOURNAL_PASSWORD must be set; it is the single password the API accepts.

Examples:
  jot serve                        Listen on listen_addr from the config
  jot serve --addr 127.0.0.1:9000  Listen on another address`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		secure, _ := cmd.Flags().GetBool("secure-cookie")
		if addr == "" {
			addr = deps.Config.ListenAddr
		}

		if deps.Config.Password == "" {
			cli.Fail(deps, config.EnvPassword+" is not set", nil, "Export "+config.EnvPassword+" with the password the web API should accept")
			return
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			cli.Fail(deps, "Failed to listen on "+addr, err, "Pick another address with --addr or listen_addr")
			return
		}
		if err := serve(cmd.Context(), deps, ln, secure); err != nil {
			cli.Fail(deps, "Server stopped with an error", err, "")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default listen_addr from the config)")
	serveCmd.Flags().Bool("secure-cookie", false, "set the Secure flag on the session cookie (behind HTTPS)")
}

// serve prepares the journal directory, then runs the submission processor,
// the HTTP server on ln and the session pruner until ctx is cancelled or
// one of them fails.
func serve(ctx context.Context, d *cli.Deps, ln net.Listener, secureCookie bool) error {
	if err := d.Services.Init(ctx); err != nil {
		_ = ln.Close()
		return err
	}

	sessions := auth.NewSessions(d.Config.Password, d.Config.SessionDuration())
	srv := server.New(server.Options{
		Addr:         ln.Addr().String(),
		StaticDir:    d.Config.StaticDir,
		SecureCookie: secureCookie,
	}, d.Services.Journal, d.Services.Processor, sessions, d.Renderer(), d.Log.Named("http"))

	d.Log.Info("starting jot",
		zap.String("addr", ln.Addr().String()),
		zap.Strings("types", d.Config.TypeNames()),
		zap.Bool("git_sync", d.Services.Git != nil),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.Services.Processor.Run(ctx)
	})
	g.Go(func() error {
		return srv.Serve(ctx, ln)
	})
	g.Go(func() error {
		return srv.PruneSessions(ctx, sessionPruneInterval)
	})
	return g.Wait()
}
