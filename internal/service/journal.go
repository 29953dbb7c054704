package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xolan/jot/internal/analyze"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/storage"
	"github.com/xolan/jot/internal/timeutil"
)

// JournalService composes, reads and maintains the journal files
type JournalService struct {
	cfg      config.Config
	store    *storage.Store
	analyzer analyze.Analyzer
	syncer   Syncer
	log      *zap.Logger
	now      func() time.Time
}

// NewJournalService creates a new JournalService. syncer may be nil to
// disable git sync.
func NewJournalService(cfg config.Config, store *storage.Store, analyzer analyze.Analyzer, syncer Syncer, log *zap.Logger) *JournalService {
	if analyzer == nil {
		analyzer = analyze.Passthrough{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalService{
		cfg:      cfg,
		store:    store,
		analyzer: analyzer,
		syncer:   syncer,
		log:      log,
		now:      time.Now,
	}
}

// Syntax returns the journal file syntax
func (s *JournalService) Syntax() journal.Syntax {
	return s.store.Syntax()
}

// Types returns the configured entry types
func (s *JournalService) Types() []config.EntryType {
	return append([]config.EntryType(nil), s.cfg.EntryTypes...)
}

// ResolveType returns the named entry type. An empty name selects the
// default type; an unknown name is an error.
func (s *JournalService) ResolveType(name string) (config.EntryType, error) {
	if strings.TrimSpace(name) == "" {
		name = config.DefaultEntryType
	}
	et, ok := s.cfg.EntryType(name)
	if !ok {
		return config.EntryType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return et, nil
}

// NewSubmission validates content and type and stamps a new submission
func (s *JournalService) NewSubmission(typeName, content string) (Submission, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Submission{}, ErrEmptyContent
	}
	et, err := s.ResolveType(typeName)
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		ID:       uuid.NewString(),
		Type:     et.Name,
		Content:  content,
		Received: s.now(),
	}, nil
}

// Compose analyses the submission and appends it to its journal under the
// date it was received, then syncs to git. Analysis failures fall back to
// writing the raw input alone; sync failures are reported in the result.
func (s *JournalService) Compose(ctx context.Context, sub Submission) (*ComposeResult, error) {
	et, err := s.ResolveType(sub.Type)
	if err != nil {
		return nil, err
	}
	log := s.log.With(zap.String("submission", sub.ID), zap.String("type", et.Name))

	sections := s.analyze(ctx, log, et, sub.Content)

	when := sub.Received
	if when.IsZero() {
		when = s.now()
	}
	when = when.In(s.cfg.Location())

	header := s.store.Syntax().DateHeader(when)
	if err := s.store.Append(et.TargetFile, header, sections, sub.Content); err != nil {
		return nil, fmt.Errorf("failed to append %s entry: %w", et.Name, err)
	}

	res := &ComposeResult{
		Type:       et.Name,
		Path:       s.store.Path(et.TargetFile),
		DateHeader: header,
		Sections:   len(sections),
	}
	log.Info("journal entry appended", zap.String("path", res.Path), zap.Int("sections", res.Sections))

	if s.syncer != nil {
		if err := s.syncer.Sync(ctx, journal.CommitMessage(when.Format("2006-01-02 15:04"))); err != nil {
			res.SyncErr = err
			log.Error("git sync failed", zap.Error(err))
		} else {
			res.Synced = true
		}
	}
	return res, nil
}

func (s *JournalService) analyze(ctx context.Context, log *zap.Logger, et config.EntryType, content string) []journal.Section {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AITimeout())
	defer cancel()

	a, err := s.analyzer.Analyze(ctx, et, content)
	if err != nil {
		log.Warn("analysis failed, keeping raw input only", zap.Error(err))
		return nil
	}
	return a.Sections(et.Fields, s.cfg.Header)
}

// Raw returns the whole journal file of the named type
func (s *JournalService) Raw(typeName string) (string, error) {
	et, err := s.ResolveType(typeName)
	if err != nil {
		return "", err
	}
	content, err := s.store.Read(et.TargetFile)
	if err != nil {
		return "", fmt.Errorf("failed to read journal: %w", err)
	}
	return content, nil
}

// Entries returns the parsed entries of the named journal, most recent
// first, that match f. A nil filter matches every entry.
func (s *JournalService) Entries(typeName string, f *filter.Filter) ([]entry.Entry, error) {
	content, err := s.Raw(typeName)
	if err != nil {
		return nil, err
	}

	entries := entry.ParseSyntax(content, s.store.Syntax())
	if f.IsEmpty() {
		return entries, nil
	}

	scoped := *f
	if scoped.Location == nil {
		scoped.Location = s.cfg.Location()
	}
	return filter.FilterEntries(entries, &scoped), nil
}

// Entry returns the nth most recent entry of the named journal (1-based)
func (s *JournalService) Entry(typeName string, n int) (entry.Entry, error) {
	if n < 1 {
		return entry.Entry{}, fmt.Errorf("%w: %d", ErrInvalidIndex, n)
	}
	entries, err := s.Entries(typeName, nil)
	if err != nil {
		return entry.Entry{}, err
	}
	if len(entries) == 0 {
		return entry.Entry{}, ErrNoEntries
	}
	if n > len(entries) {
		return entry.Entry{}, fmt.Errorf("%w: %d (valid range: 1-%d)", ErrIndexOutOfRange, n, len(entries))
	}
	return entries[n-1], nil
}

// ParseRange resolves a date range expression in the configured timezone
// and week start. An empty expression returns nil.
func (s *JournalService) ParseRange(expr string) (*timeutil.Range, error) {
	r, ok, err := timeutil.ParseRange(expr, s.now().In(s.cfg.Location()), s.cfg.WeekStartDay)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

// targets returns the distinct journal files of the configured types
func (s *JournalService) targets() []string {
	seen := map[string]bool{}
	var out []string
	for _, et := range s.cfg.EntryTypes {
		if !seen[et.TargetFile] {
			seen[et.TargetFile] = true
			out = append(out, et.TargetFile)
		}
	}
	return out
}

// EnsureFiles creates an empty journal for every type that has none
func (s *JournalService) EnsureFiles() ([]string, error) {
	return s.store.EnsureFiles(s.targets())
}

// Validate reports the health of every journal file
func (s *JournalService) Validate() ([]storage.JournalHealth, error) {
	var out []storage.JournalHealth
	for _, target := range s.targets() {
		h, err := s.store.Validate(target)
		if err != nil {
			return nil, fmt.Errorf("failed to validate %s: %w", target, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// Backups lists the backups of the named journal
func (s *JournalService) Backups(typeName string) ([]storage.BackupInfo, error) {
	et, err := s.ResolveType(typeName)
	if err != nil {
		return nil, err
	}
	return s.store.Backups(et.TargetFile)
}

// Restore replaces the named journal with backup n
func (s *JournalService) Restore(typeName string, n int) error {
	et, err := s.ResolveType(typeName)
	if err != nil {
		return err
	}
	if err := s.store.Restore(et.TargetFile, n); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	s.log.Info("journal restored from backup", zap.String("type", et.Name), zap.Int("backup", n))
	return nil
}
