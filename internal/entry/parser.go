package entry

import (
	"strings"

	"github.com/xolan/jot/internal/journal"
)

// Parse splits an org journal into entries, most recent first.
// See ParseSyntax.
func Parse(content string) []Entry {
	return ParseSyntax(content, journal.Org)
}

// ParseSyntax splits a journal into entries using the given syntax.
//
// A line made of the entry prefix followed by the year prefix opens a new
// entry whose Date is the rest of that line. Every following line up to the
// next entry start belongs to the entry's Content. Lines before the first
// entry start are discarded. Entries are returned in reverse file order, and
// each entry's Raw Input section is moved into RawInput.
func ParseSyntax(content string, s journal.Syntax) []Entry {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var entries []Entry
	var current *Entry
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(body, "\n")
		entries = append(entries, *current)
	}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if s.IsEntryStart(line) {
			flush()
			current = &Entry{Date: strings.TrimPrefix(line, s.EntryPrefix)}
			body = nil
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	reversed := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, extractRawInput(entries[i], s.RawInputMarker()))
	}
	return reversed
}

// extractRawInput moves everything after the raw input marker into RawInput.
// The marker only counts at the start of a line.
func extractRawInput(e Entry, marker string) Entry {
	idx := indexAtLineStart(e.Content, marker)
	if idx == -1 {
		return e
	}
	e.RawInput = strings.TrimSpace(e.Content[idx+len(marker):])
	e.Content = strings.TrimSpace(e.Content[:idx])
	return e
}

func indexAtLineStart(s, marker string) int {
	if strings.HasPrefix(s, marker) {
		return 0
	}
	if idx := strings.Index(s, "\n"+marker); idx != -1 {
		return idx + 1
	}
	return -1
}
