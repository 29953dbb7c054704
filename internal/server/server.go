// Package server provides the jot HTTP API and serves the web front end.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/jot/internal/auth"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/export"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/timeutil"
)

const shutdownTimeout = 10 * time.Second

// Journal is the part of the journal service the API uses.
type Journal interface {
	Types() []config.EntryType
	NewSubmission(typeName, content string) (service.Submission, error)
	Raw(typeName string) (string, error)
	Entries(typeName string, f *filter.Filter) ([]entry.Entry, error)
	ParseRange(expr string) (*timeutil.Range, error)
}

// Queue accepts submissions for background processing.
type Queue interface {
	Submit(sub service.Submission) error
}

// Options configures a Server.
type Options struct {
	Addr         string
	StaticDir    string // front-end build served at /; empty disables it
	SecureCookie bool   // set the Secure flag on the session cookie
}

// Server is the jot HTTP API.
type Server struct {
	opts     Options
	journal  Journal
	queue    Queue
	sessions *auth.Sessions
	renderer *export.Renderer
	log      *zap.Logger
	srv      *http.Server
}

// New creates a Server.
func New(opts Options, j Journal, q Queue, sessions *auth.Sessions, renderer *export.Renderer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts:     opts,
		journal:  j,
		queue:    q,
		sessions: sessions,
		renderer: renderer,
		log:      log,
	}
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(log),
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.Handle("POST /api/logout", s.requireAuth(http.HandlerFunc(s.handleLogout)))
	mux.Handle("GET /api/check-auth", s.requireAuth(http.HandlerFunc(s.handleCheckAuth)))
	mux.Handle("GET /api/types", s.requireAuth(http.HandlerFunc(s.handleTypes)))
	mux.Handle("POST /api/entries", s.requireAuth(http.HandlerFunc(s.handleCreateEntry)))
	mux.Handle("GET /api/entries", s.requireAuth(http.HandlerFunc(s.handleRawEntries)))
	mux.Handle("GET /api/entries/parsed", s.requireAuth(http.HandlerFunc(s.handleParsedEntries)))
	mux.Handle("/api/login", methodNotAllowed(http.MethodPost))
	mux.Handle("/api/logout", methodNotAllowed(http.MethodPost))
	mux.Handle("/api/check-auth", methodNotAllowed(http.MethodGet))
	mux.Handle("/api/types", methodNotAllowed(http.MethodGet))
	mux.Handle("/api/entries", methodNotAllowed(http.MethodGet, http.MethodPost))
	mux.Handle("/api/entries/parsed", methodNotAllowed(http.MethodGet))
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	mux.Handle("/", s.staticHandler())

	var handler http.Handler = mux
	handler = s.recoverer(handler)
	handler = s.requestLogger(handler)
	return handler
}

func (s *Server) staticHandler() http.Handler {
	files := http.NotFoundHandler()
	if s.opts.StaticDir != "" {
		if info, err := os.Stat(s.opts.StaticDir); err == nil && info.IsDir() {
			files = http.FileServer(http.Dir(s.opts.StaticDir))
		} else {
			s.log.Warn("static directory not found, front end disabled", zap.String("dir", s.opts.StaticDir))
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// letting in-flight requests finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}

// PruneSessions drops expired sessions every interval until ctx is cancelled.
func (s *Server) PruneSessions(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.sessions.Prune(); n > 0 {
				s.log.Debug("pruned expired sessions", zap.Int("count", n))
			}
		}
	}
}
