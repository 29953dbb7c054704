package journal

import (
	"fmt"
	"strings"
)

// Section is one titled block of a composed entry. Text is written verbatim;
// each of Items becomes a bullet line.
type Section struct {
	Header string
	Text   string
	Items  []string
}

// lines returns the body lines of the section in write order.
func (sec Section) lines(s Syntax) []string {
	var out []string
	if sec.Text != "" {
		out = append(out, sec.Text)
	}
	for _, item := range sec.Items {
		out = append(out, s.ListPrefix+item)
	}
	return out
}

// FormatEntry renders the sections of a new entry (without its date header).
// A non-empty raw input is written last under the Raw Input heading.
func (s Syntax) FormatEntry(sections []Section, rawInput string) string {
	var sb strings.Builder

	write := func(header string, body []string) {
		sb.WriteString(s.SectionPrefix + header + "\n")
		if s.IsMarkdown() {
			sb.WriteString("\n")
		}
		for _, line := range body {
			sb.WriteString(line + "\n")
		}
		if s.IsMarkdown() {
			sb.WriteString("\n")
		}
	}

	for _, sec := range sections {
		write(sec.Header, sec.lines(s))
	}
	if rawInput != "" {
		write(RawInputHeading, []string{rawInput})
	}

	sb.WriteString("\n")
	return sb.String()
}

// Append adds an entry dated by dateHeader to the existing journal text.
// When the journal already has a block for dateHeader the sections are merged
// into it, otherwise a new block is appended at the end.
func (s Syntax) Append(existing, dateHeader string, sections []Section, rawInput string) string {
	if strings.Contains(existing, dateHeader) {
		return s.merge(existing, dateHeader, sections, rawInput)
	}

	prefix := ""
	if len(existing) > 0 && !strings.HasSuffix(existing, "\n") {
		prefix = "\n"
	}
	return existing + prefix + dateHeader + "\n" + s.FormatEntry(sections, rawInput)
}

func (s Syntax) merge(content, dateHeader string, sections []Section, rawInput string) string {
	idx := strings.Index(content, dateHeader)
	before := content[:idx]
	rest := content[idx:]

	// the block ends where the next dated entry begins
	block, after := rest, ""
	if next := strings.Index(rest[len(dateHeader):], "\n"+s.EntryPrefix); next != -1 {
		split := len(dateHeader) + next
		block, after = rest[:split], rest[split:]
	}

	for _, sec := range sections {
		header := s.SectionPrefix + sec.Header
		for _, line := range sec.lines(s) {
			block = s.appendToSection(block, header, line)
		}
	}
	if rawInput != "" {
		block = s.appendToSection(block, s.RawInputMarker(), rawInput)
	}

	return before + block + after
}

func (s Syntax) appendToSection(block, header, item string) string {
	idx := strings.Index(block, header)
	if idx == -1 {
		if !strings.HasSuffix(block, "\n") {
			block += "\n"
		}
		sep := "\n"
		if s.IsMarkdown() {
			sep = "\n\n"
		}
		return block + header + sep + item + "\n"
	}

	rest := block[idx+len(header):]
	next := strings.Index(rest, "\n"+s.SectionPrefix)
	if next == -1 {
		suffix := ""
		if !strings.HasSuffix(block, "\n") {
			suffix = "\n"
		}
		return block + suffix + item + "\n"
	}

	insert := idx + len(header) + next
	return block[:insert] + "\n" + item + block[insert:]
}

// CommitMessage is the git commit message used for journal updates.
func CommitMessage(stamp string) string {
	return fmt.Sprintf("Journal entry %s", stamp)
}
