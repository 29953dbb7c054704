package filter

import (
	"strings"
	"time"

	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/timeutil"
)

// Filter represents search and filtering criteria for journal entries.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	Keyword  string          // Case-insensitive substring search in date, content and raw input
	Range    *timeutil.Range // Entries whose date falls in the range; nil matches all
	Location *time.Location  // Timezone entry dates are read in; nil means time.Local
}

// NewFilter creates a new Filter with the given criteria.
func NewFilter(keyword string, r *timeutil.Range) *Filter {
	return &Filter{
		Keyword: strings.TrimSpace(keyword),
		Range:   r,
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Keyword == "" && f.Range == nil)
}

// FilterEntries returns a new slice containing only entries that match the filter criteria.
// If the filter is empty, returns all entries.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the entry (case-insensitive).
// An empty keyword matches all entries.
func (f *Filter) MatchesKeyword(e entry.Entry) bool {
	if f.Keyword == "" {
		return true
	}
	kw := strings.ToLower(f.Keyword)
	return strings.Contains(strings.ToLower(e.Date), kw) ||
		strings.Contains(strings.ToLower(e.Content), kw) ||
		strings.Contains(strings.ToLower(e.RawInput), kw)
}

// MatchesRange returns true if the entry's date falls within the range.
// Entries whose date does not parse never match a set range.
func (f *Filter) MatchesRange(e entry.Entry) bool {
	if f.Range == nil {
		return true
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	day, ok := e.Day(loc)
	if !ok {
		return false
	}
	return f.Range.Contains(day)
}

// Matches returns true if the entry satisfies every criterion
func (f *Filter) Matches(e entry.Entry) bool {
	return f.MatchesKeyword(e) && f.MatchesRange(e)
}
