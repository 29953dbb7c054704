package storage

import (
	"os"
	"strings"

	"github.com/xolan/jot/internal/entry"
)

// JournalHealth summarises the state of one journal file.
type JournalHealth struct {
	Path        string
	Exists      bool
	TotalLines  int
	Entries     int
	WithRaw     int // entries carrying a Raw Input section
	OrphanLines int // non-blank lines before the first entry, ignored by the parser
}

// Validate reports on the journal file for target. A missing file is not an error.
func (s *Store) Validate(target string) (JournalHealth, error) {
	health := JournalHealth{Path: s.Path(target)}

	content, err := s.Read(target)
	if err != nil {
		return health, err
	}
	if _, statErr := os.Stat(health.Path); statErr == nil {
		health.Exists = true
	}
	if content == "" {
		return health, nil
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	health.TotalLines = len(lines)
	for _, line := range lines {
		if s.syntax.IsEntryStart(line) {
			break
		}
		if strings.TrimSpace(line) != "" {
			health.OrphanLines++
		}
	}

	entries := entry.ParseSyntax(content, s.syntax)
	health.Entries = len(entries)
	for _, e := range entries {
		if e.RawInput != "" {
			health.WithRaw++
		}
	}
	return health, nil
}

// Healthy reports whether the parser sees every non-blank line.
func (h JournalHealth) Healthy() bool {
	return h.OrphanLines == 0
}
