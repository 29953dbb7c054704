// Package export renders journal entries as HTML.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/outline"
)

// Renderer converts entry bodies to HTML. Markdown journals go through
// goldmark with raw HTML disabled; org journals use the outline renderer.
type Renderer struct {
	syntax journal.Syntax
	md     goldmark.Markdown
}

// NewRenderer creates a Renderer for journals written in syntax s.
func NewRenderer(s journal.Syntax) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &Renderer{syntax: s, md: md}
}

// Body renders entry content, without its date header.
func (r *Renderer) Body(content string) (string, error) {
	if !r.syntax.IsMarkdown() {
		return outline.HTML(outline.RenderSyntax(content, r.syntax)), nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// Entry renders one entry body followed by its raw input, if any.
func (r *Renderer) Entry(e entry.Entry) (string, error) {
	body, err := r.Body(e.Content)
	if err != nil {
		return "", err
	}
	if e.RawInput == "" {
		return body, nil
	}
	return body + "<details>\n<summary>" + journal.RawInputHeading + "</summary>\n<pre>" +
		template.HTMLEscapeString(e.RawInput) + "</pre>\n</details>\n", nil
}

type documentEntry struct {
	Date string
	Body template.HTML
}

var documentTemplate = template.Must(template.New("journal").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="generated">Exported {{.Generated}}</p>
{{range .Entries}}<article>
<h2>{{.Date}}</h2>
{{.Body}}</article>
{{else}}<p>No entries.</p>
{{end}}</body>
</html>
`))

// Document writes a standalone HTML page holding every entry in order.
func (r *Renderer) Document(w io.Writer, title string, entries []entry.Entry, generated time.Time) error {
	data := struct {
		Title     string
		Generated string
		Entries   []documentEntry
	}{
		Title:     title,
		Generated: generated.Format("2006-01-02 15:04"),
	}

	for _, e := range entries {
		body, err := r.Entry(e)
		if err != nil {
			return fmt.Errorf("failed to render entry %s: %w", e.Date, err)
		}
		// bodies are produced by escaping renderers
		data.Entries = append(data.Entries, documentEntry{Date: e.Date, Body: template.HTML(body)})
	}

	return documentTemplate.Execute(w, data)
}
