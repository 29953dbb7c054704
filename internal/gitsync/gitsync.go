// Package gitsync keeps the journal directory in a git repository and pushes
// each update to a remote.
package gitsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"
)

const (
	// RemoteName is the remote pushed to after each commit
	RemoteName = "origin"
	ignoreFile = ".gitignore"
)

// ignorePatterns keeps backups and in-flight writes out of commits.
const ignorePatterns = "*.bak.*\n*.tmp\n"

// ErrNotInitialized is returned by Sync before Init succeeded
var ErrNotInitialized = errors.New("git repository not initialized")

// Options configures a Repo.
type Options struct {
	Dir         string
	RemoteURL   string // empty keeps the repository local
	Username    string
	Token       string
	AuthorName  string
	AuthorEmail string
}

// Repo is the git repository holding the journal files.
type Repo struct {
	opts Options
	repo *git.Repository
	log  *zap.Logger
	now  func() time.Time
}

// New creates a Repo. Call Init before Sync.
func New(opts Options, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.AuthorName == "" {
		opts.AuthorName = opts.Username
	}
	return &Repo{opts: opts, log: log, now: time.Now}
}

func (r *Repo) auth() transport.AuthMethod {
	if r.opts.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: r.opts.Username, Password: r.opts.Token}
}

// Init opens the repository in Dir. A missing repository is cloned from the
// remote when Dir is empty, or initialised in place otherwise. An existing
// repository is pulled; pull failures are logged and do not fail Init.
func (r *Repo) Init(ctx context.Context) error {
	repo, err := git.PlainOpen(r.opts.Dir)
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		repo, err = r.create(ctx)
		if err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("failed to open repository: %w", err)
	default:
		r.pull(ctx, repo)
	}

	r.repo = repo
	return r.ensureIgnore()
}

func (r *Repo) create(ctx context.Context) (*git.Repository, error) {
	if r.opts.RemoteURL != "" && dirEmpty(r.opts.Dir) {
		r.log.Info("cloning journal repository", zap.String("url", r.opts.RemoteURL), zap.String("dir", r.opts.Dir))
		repo, err := git.PlainCloneContext(ctx, r.opts.Dir, false, &git.CloneOptions{
			URL:  r.opts.RemoteURL,
			Auth: r.auth(),
		})
		if err == nil {
			return repo, nil
		}
		if !errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return nil, fmt.Errorf("failed to clone %s: %w", r.opts.RemoteURL, err)
		}
		r.log.Info("remote repository is empty, initialising locally")
		// a failed clone can leave a partial .git behind
		_ = os.RemoveAll(filepath.Join(r.opts.Dir, git.GitDirName))
	}

	if err := os.MkdirAll(r.opts.Dir, 0755); err != nil {
		return nil, err
	}
	repo, err := git.PlainInit(r.opts.Dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise repository: %w", err)
	}
	if r.opts.RemoteURL != "" {
		if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: RemoteName,
			URLs: []string{r.opts.RemoteURL},
		}); err != nil {
			return nil, fmt.Errorf("failed to add remote: %w", err)
		}
	}
	r.log.Info("initialised journal repository", zap.String("dir", r.opts.Dir))
	return repo, nil
}

func (r *Repo) pull(ctx context.Context, repo *git.Repository) {
	if _, err := repo.Remote(RemoteName); err != nil {
		return
	}
	w, err := repo.Worktree()
	if err != nil {
		r.log.Warn("failed to get worktree", zap.Error(err))
		return
	}
	err = w.PullContext(ctx, &git.PullOptions{RemoteName: RemoteName, Auth: r.auth()})
	switch {
	case err == nil:
		r.log.Info("pulled latest journal changes")
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		r.log.Debug("journal repository already up to date")
	default:
		r.log.Warn("failed to pull journal repository", zap.Error(err))
	}
}

func (r *Repo) ensureIgnore() error {
	path := filepath.Join(r.opts.Dir, ignoreFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(ignorePatterns), 0644)
}

// Sync stages every change in the journal directory, commits it with msg
// and pushes to the remote if one is configured. Sync with nothing to
// commit is a no-op.
func (r *Repo) Sync(ctx context.Context, msg string) error {
	if r.repo == nil {
		return ErrNotInitialized
	}

	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	patterns, err := gitignore.ReadPatterns(w.Filesystem, nil)
	if err != nil {
		return fmt.Errorf("failed to read ignore patterns: %w", err)
	}
	w.Excludes = append(w.Excludes, patterns...)
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}
	if status.IsClean() {
		r.log.Debug("nothing to commit")
		return nil
	}

	hash, err := w.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.opts.AuthorName,
			Email: r.opts.AuthorEmail,
			When:  r.now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	r.log.Info("committed journal update", zap.String("commit", hash.String()[:7]), zap.String("message", msg))

	if _, err := r.repo.Remote(RemoteName); errors.Is(err, git.ErrRemoteNotFound) {
		return nil
	}
	err = r.repo.PushContext(ctx, &git.PushOptions{RemoteName: RemoteName, Auth: r.auth()})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push: %w", err)
	}
	r.log.Info("pushed journal update", zap.String("remote", RemoteName))
	return nil
}

func dirEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Is(err, os.ErrNotExist)
	}
	return len(entries) == 0
}
