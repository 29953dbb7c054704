package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/outline"
	"github.com/xolan/jot/internal/tui/ui"
)

// EntryRenderOptions configures how entry lists are rendered
type EntryRenderOptions struct {
	Syntax journal.Syntax
	Width  int // Available width for rendering
	Cursor int // Currently selected entry index (-1 for none)
}

// RenderEntryList renders entries one per line with aligned index and date
// columns followed by a one-line preview of the entry body.
func RenderEntryList(entries []entry.Entry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	indexWidth := len(fmt.Sprintf("[%d]", len(entries)))
	dateWidth := 0
	for _, e := range entries {
		dateWidth = max(dateWidth, lipgloss.Width(e.Date))
	}

	previewWidth := max(opts.Width-indexWidth-dateWidth-6, 20)

	var b strings.Builder
	for i, e := range entries {
		style := styles.EntryNormal
		if i == opts.Cursor {
			style = styles.EntrySelected
		}

		index := styles.EntryIndex.Render(fmt.Sprintf("%-*s", indexWidth, fmt.Sprintf("[%d]", i+1)))
		date := styles.EntryDate.Render(fmt.Sprintf("%-*s", dateWidth, e.Date))
		preview := styles.EntryPreview.Render(truncate(e.Preview(opts.Syntax), previewWidth))

		b.WriteString(style.Render(fmt.Sprintf("%s %s  %s", index, date, preview)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderOutline renders entry content as styled outline blocks wrapped to width
func RenderOutline(content string, s journal.Syntax, styles ui.Styles, width int) string {
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}

	var parts []string
	for _, block := range outline.RenderSyntax(content, s) {
		switch block.Kind {
		case outline.Heading:
			parts = append(parts, styles.Heading.Render(block.Text))
		case outline.SubHeading:
			parts = append(parts, styles.SubHeading.Render(block.Text))
		case outline.List:
			items := make([]string, len(block.Items))
			for i, item := range block.Items {
				items[i] = styles.Bullet.Render("• ") + item
			}
			parts = append(parts, wrap.Render(strings.Join(items, "\n")))
		default:
			parts = append(parts, wrap.Render(block.Text))
		}
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width < 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func pluralize(word string, count int) string {
	switch {
	case count == 1:
		return word
	case strings.HasSuffix(word, "y"):
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}
