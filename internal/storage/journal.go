package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xolan/jot/internal/app"
	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/osutil"
)

// JournalDir is the directory under the app config dir holding journal files
const JournalDir = "journal"

// GetStorageDir returns the default journal directory, <UserConfigDir>/jot/journal.
// Creates the directory if it doesn't exist.
func GetStorageDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, app.Name, JournalDir)
	if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Store reads and writes the per-type journal files in one directory.
// Writes are serialised so concurrent appends never lose a section.
type Store struct {
	dir    string
	syntax journal.Syntax
	mu     sync.Mutex
}

// NewStore creates a Store rooted at dir using syntax s.
func NewStore(dir string, s journal.Syntax) *Store {
	return &Store{dir: dir, syntax: s}
}

// Dir returns the journal directory.
func (s *Store) Dir() string {
	return s.dir
}

// Syntax returns the journal syntax of the store.
func (s *Store) Syntax() journal.Syntax {
	return s.syntax
}

// Path returns the file path for a target file base name.
func (s *Store) Path(target string) string {
	return filepath.Join(s.dir, s.syntax.FileName(target))
}

// EnsureFiles creates the journal directory and an empty file for each
// target that does not exist yet.
func (s *Store) EnsureFiles(targets []string) ([]string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	var created []string
	for _, target := range targets {
		path := s.Path(target)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return created, err
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

// Read returns the whole journal file for target.
// A missing file reads as an empty journal.
func (s *Store) Read(target string) (string, error) {
	data, err := os.ReadFile(s.Path(target))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// Append adds sections under dateHeader to the target journal, merging into
// an existing block for the same date. The previous file is backed up first.
func (s *Store) Append(target, dateHeader string, sections []journal.Section, rawInput string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Read(target)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	path := s.Path(target)
	if err := CreateBackup(path); err != nil {
		return fmt.Errorf("failed to back up journal: %w", err)
	}

	updated := s.syntax.Append(existing, dateHeader, sections, rawInput)
	if err := writeFileAtomic(path, updated); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// Backups lists the backups of the target journal, most recent first.
func (s *Store) Backups(target string) ([]BackupInfo, error) {
	return ListBackups(s.Path(target))
}

// Restore replaces the target journal with backup n. The current file is
// backed up first so a restore can itself be undone.
func (s *Store) Restore(target string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RestoreBackup(s.Path(target), n)
}

// writeFileAtomic writes content to a temp file next to path and renames it
// over path.
func writeFileAtomic(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}
