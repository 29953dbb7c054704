package entry

import (
	"strings"
	"time"

	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/outline"
)

// DateLayout is the layout of the date at the start of an entry header.
const DateLayout = "2006-01-02"

// Entry represents a single dated journal entry parsed from a journal file
type Entry struct {
	Date     string `json:"date"`
	Content  string `json:"content"`
	RawInput string `json:"raw_input,omitempty"`
}

// Day parses the leading date of the entry header in loc.
// Returns false when the header does not begin with a 2006-01-02 date.
func (e Entry) Day(loc *time.Location) (time.Time, bool) {
	if len(e.Date) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, e.Date[:len(DateLayout)], loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Preview returns the first line of text in the entry body, without heading
// markers or bullets. An entry with an empty body previews its raw input.
func (e Entry) Preview(s journal.Syntax) string {
	for _, block := range outline.RenderSyntax(e.Content, s) {
		switch {
		case block.Kind == outline.List && len(block.Items) > 0:
			return block.Items[0]
		case block.Text != "":
			return block.Text
		}
	}
	if line, _, _ := strings.Cut(e.RawInput, "\n"); strings.TrimSpace(line) != "" {
		return strings.TrimSpace(line)
	}
	return "(empty)"
}
