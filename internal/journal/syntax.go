// Package journal describes the on-disk journal formats and composes new
// dated sections into an existing journal file.
package journal

import (
	"fmt"
	"strings"
	"time"
)

// Format identifies a journal file dialect
type Format string

const (
	FormatOrg      Format = "org"
	FormatMarkdown Format = "markdown"
)

// YearPrefix is the literal that must follow the entry prefix for a line to
// start a new entry. Dates are written as 2006-01-02, so this is "20".
const YearPrefix = "20"

// RawInputHeading is the section title holding the user's verbatim text.
const RawInputHeading = "Raw Input"

// Syntax holds the line prefixes and layouts for one Format.
type Syntax struct {
	Format Format
	// EntryPrefix starts a dated entry ("* " for org, "## " for markdown)
	EntryPrefix string
	// SectionPrefix starts a section inside an entry
	SectionPrefix string
	// ListPrefix starts a bullet item
	ListPrefix string
	Extension  string
}

// Org is the org-mode syntax.
var Org = Syntax{
	Format:        FormatOrg,
	EntryPrefix:   "* ",
	SectionPrefix: "** ",
	ListPrefix:    "- ",
	Extension:     ".org",
}

// Markdown is the markdown syntax.
var Markdown = Syntax{
	Format:        FormatMarkdown,
	EntryPrefix:   "## ",
	SectionPrefix: "### ",
	ListPrefix:    "- ",
	Extension:     ".md",
}

// SyntaxFor returns the syntax for a format name. Unknown names are an error.
func SyntaxFor(format string) (Syntax, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatOrg:
		return Org, nil
	case FormatMarkdown:
		return Markdown, nil
	default:
		return Syntax{}, fmt.Errorf("unknown journal format %q: must be org or markdown", format)
	}
}

// FileName returns base with the syntax's file extension.
func (s Syntax) FileName(base string) string {
	return base + s.Extension
}

// DateHeader returns the entry header line for t, e.g. "* 2024-03-01 Fri".
func (s Syntax) DateHeader(t time.Time) string {
	return s.EntryPrefix + t.Format("2006-01-02 Mon")
}

// IsEntryStart reports whether line opens a new dated entry.
func (s Syntax) IsEntryStart(line string) bool {
	return strings.HasPrefix(line, s.EntryPrefix+YearPrefix)
}

// RawInputMarker is the section header line introducing the raw input block.
func (s Syntax) RawInputMarker() string {
	return s.SectionPrefix + RawInputHeading
}

// IsMarkdown reports whether the syntax pads headers with blank lines.
func (s Syntax) IsMarkdown() bool {
	return s.Format == FormatMarkdown
}
