// Package outline classifies the lines of an entry body into block-level
// nodes and turns those nodes back into text or HTML.
package outline

import (
	"html"
	"strings"

	"github.com/xolan/jot/internal/journal"
)

// Kind is the type of a block node
type Kind int

const (
	Paragraph Kind = iota
	Heading
	SubHeading
	List
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case SubHeading:
		return "subheading"
	case List:
		return "list"
	default:
		return "paragraph"
	}
}

// Block is one rendered node. Text is empty for lists; Items is only set for lists.
type Block struct {
	Kind  Kind     `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// Render classifies the lines of an org entry body.
func Render(content string) []Block {
	return RenderSyntax(content, journal.Org)
}

// RenderSyntax classifies each line of content, in order:
//   - a blank line closes any open list
//   - a list prefixed line is appended to the open list, opening one if needed
//   - an entry prefixed line is a heading
//   - a section prefixed line is a sub-heading
//   - anything else is a paragraph
//
// A list left open at the end of input is emitted.
func RenderSyntax(content string, s journal.Syntax) []Block {
	var blocks []Block
	var list *Block

	closeList := func() {
		if list != nil {
			blocks = append(blocks, *list)
			list = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.TrimSpace(line) == "":
			closeList()
		case strings.HasPrefix(line, s.ListPrefix):
			if list == nil {
				list = &Block{Kind: List}
			}
			list.Items = append(list.Items, strings.TrimPrefix(line, s.ListPrefix))
		case strings.HasPrefix(line, s.EntryPrefix):
			closeList()
			blocks = append(blocks, Block{Kind: Heading, Text: strings.TrimPrefix(line, s.EntryPrefix)})
		case strings.HasPrefix(line, s.SectionPrefix):
			closeList()
			blocks = append(blocks, Block{Kind: SubHeading, Text: strings.TrimPrefix(line, s.SectionPrefix)})
		default:
			closeList()
			blocks = append(blocks, Block{Kind: Paragraph, Text: line})
		}
	}
	closeList()

	return blocks
}

// Text rebuilds outline source from blocks. Blocks are separated by a blank
// line so that consecutive lists stay distinct when rendered again.
func Text(blocks []Block, s journal.Syntax) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case Heading:
			parts = append(parts, s.EntryPrefix+b.Text)
		case SubHeading:
			parts = append(parts, s.SectionPrefix+b.Text)
		case List:
			items := make([]string, len(b.Items))
			for i, item := range b.Items {
				items[i] = s.ListPrefix + item
			}
			parts = append(parts, strings.Join(items, "\n"))
		default:
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// HTML renders blocks as an HTML fragment. Node text is escaped; no inline
// markup is interpreted.
func HTML(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case Heading:
			sb.WriteString("<h3>" + html.EscapeString(b.Text) + "</h3>\n")
		case SubHeading:
			sb.WriteString("<h4>" + html.EscapeString(b.Text) + "</h4>\n")
		case List:
			sb.WriteString("<ul>\n")
			for _, item := range b.Items {
				sb.WriteString("<li>" + html.EscapeString(item) + "</li>\n")
			}
			sb.WriteString("</ul>\n")
		default:
			sb.WriteString("<p>" + html.EscapeString(b.Text) + "</p>\n")
		}
	}
	return sb.String()
}
