package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xolan/jot/internal/analyze"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/gitsync"
	"github.com/xolan/jot/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Journal   *JournalService
	Processor *Processor
	Config    *ConfigService
	Git       Repository // nil when git sync is disabled

	log *zap.Logger
}

// NewServices wires the services for cfg: the journal store in the
// configured directory, Gemini analysis when a token is set and git sync
// when credentials are set.
func NewServices(ctx context.Context, cfg config.Config, configPath string, log *zap.Logger) (*Services, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir := cfg.StorageDir
	if dir == "" {
		var err error
		if dir, err = storage.GetStorageDir(); err != nil {
			return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
		}
	}
	store := storage.NewStore(dir, cfg.Syntax())

	var analyzer analyze.Analyzer = analyze.Passthrough{}
	if cfg.GeminiToken != "" {
		g, err := analyze.NewGemini(ctx, cfg.GeminiToken, cfg.AI.Model, cfg.Header)
		if err != nil {
			return nil, err
		}
		analyzer = g
		log.Info("entry analysis enabled", zap.String("analyzer", g.Name()))
	} else {
		log.Info("no Gemini token set, entries keep raw input only")
	}

	var repo Repository
	if cfg.GitEnabled() {
		repo = gitsync.New(gitsync.Options{
			Dir:         dir,
			RemoteURL:   cfg.GitRemoteURL(),
			Username:    cfg.Git.Username,
			Token:       cfg.GitHubToken,
			AuthorEmail: cfg.GitAuthorEmail(),
		}, log.Named("git"))
	}

	return NewServicesWith(cfg, configPath, store, analyzer, repo, log), nil
}

// NewServicesWith creates a Services instance from explicit parts (useful for testing).
// repo may be nil.
func NewServicesWith(cfg config.Config, configPath string, store *storage.Store, analyzer analyze.Analyzer, repo Repository, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}

	var syncer Syncer
	if repo != nil {
		syncer = repo
	}
	journalService := NewJournalService(cfg, store, analyzer, syncer, log.Named("journal"))

	return &Services{
		Journal:   journalService,
		Processor: NewProcessor(journalService, cfg.QueueSize, log.Named("processor")),
		Config:    NewConfigService(configPath, cfg),
		Git:       repo,
		log:       log,
	}
}

// Init prepares the journal directory: the git repository is cloned or
// pulled first, then missing journal files are created.
func (s *Services) Init(ctx context.Context) error {
	if s.Git != nil {
		if err := s.Git.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialise git sync: %w", err)
		}
	}

	created, err := s.Journal.EnsureFiles()
	if err != nil {
		return fmt.Errorf("failed to create journal files: %w", err)
	}
	for _, path := range created {
		s.log.Info("created journal file", zap.String("path", path))
	}
	return nil
}
