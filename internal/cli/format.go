// Package cli provides the CLI presentation layer for jot.
// It handles command-line output formatting and user interaction.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/outline"
	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/storage"
)

// Fail prints an Error/Details/Hint block to deps.Stderr and exits with 1.
// err and hint are omitted when empty.
func Fail(deps *Deps, msg string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// HintFor returns a hint for the well-known service errors
func HintFor(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownType):
		return "List the configured types with 'jot types'"
	case errors.Is(err, service.ErrEmptyContent):
		return "Write something, e.g. jot add had a quiet day"
	case errors.Is(err, service.ErrNoEntries):
		return "Write an entry first with 'jot add <text>'"
	case errors.Is(err, service.ErrIndexOutOfRange), errors.Is(err, service.ErrInvalidIndex):
		return "List entries with 'jot list' to see available indices"
	}
	return ""
}

// FormatEntryLine formats one entry of a listing: a right-aligned 1-based
// index, the date header and a preview truncated to 60 characters.
func FormatEntryLine(index, indexWidth int, e entry.Entry, s journal.Syntax) string {
	return fmt.Sprintf("[%*d] %s  %s", indexWidth, index, e.Date, Truncate(e.Preview(s), 60))
}

// FormatOutline renders entry content as plain text: headings underlined,
// list items bulleted and paragraphs as-is.
func FormatOutline(content string, s journal.Syntax) string {
	var b strings.Builder
	for i, block := range outline.RenderSyntax(content, s) {
		if i > 0 {
			b.WriteString("\n")
		}
		switch block.Kind {
		case outline.Heading:
			b.WriteString(block.Text + "\n" + strings.Repeat("=", len([]rune(block.Text))) + "\n")
		case outline.SubHeading:
			b.WriteString(block.Text + "\n" + strings.Repeat("-", len([]rune(block.Text))) + "\n")
		case outline.List:
			for _, item := range block.Items {
				b.WriteString("  • " + item + "\n")
			}
		default:
			b.WriteString(block.Text + "\n")
		}
	}
	return b.String()
}

// FormatHealth formats the health report of one journal file
func FormatHealth(h storage.JournalHealth) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Journal file: %s\n", h.Path)
	if !h.Exists {
		b.WriteString("  (missing, created on first entry)\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Total lines:      %d\n", h.TotalLines)
	fmt.Fprintf(&b, "  Entries:          %d\n", h.Entries)
	fmt.Fprintf(&b, "  With raw input:   %d\n", h.WithRaw)
	fmt.Fprintf(&b, "  Orphan lines:     %d\n", h.OrphanLines)
	return b.String()
}

// FormatComposeResult describes where a composed entry was written
func FormatComposeResult(res *service.ComposeResult) string {
	msg := fmt.Sprintf("Saved %s entry under %q in %s", res.Type, res.DateHeader, res.Path)
	if res.Sections > 0 {
		msg += fmt.Sprintf(" (%d analysed %s)", res.Sections, Pluralize("section", res.Sections))
	}
	return msg
}

// Truncate shortens s to max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	switch {
	case count == 1:
		return word
	case strings.HasSuffix(word, "y"):
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}
