// Package analyze turns a free-form journal submission into the structured
// fields of an entry type.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/journal"
)

// ErrEmptyResponse is returned when the model produces no text
var ErrEmptyResponse = errors.New("no content in response")

// Analysis maps entry type fields to a string or a list of strings
type Analysis map[string]any

// Analyzer extracts an Analysis from the text of a submission.
type Analyzer interface {
	Analyze(ctx context.Context, et config.EntryType, text string) (Analysis, error)
}

// Passthrough is used when no model is configured. It extracts nothing, so
// only the raw input is written to the journal.
type Passthrough struct{}

// Analyze implements Analyzer.
func (Passthrough) Analyze(context.Context, config.EntryType, string) (Analysis, error) {
	return Analysis{}, nil
}

// Sections converts the analysis into journal sections in the order of
// fields. Fields missing from the analysis are skipped.
func (a Analysis) Sections(fields []string, header func(field string) string) []journal.Section {
	var sections []journal.Section
	for _, field := range fields {
		val, ok := a[field]
		if !ok || val == nil {
			continue
		}

		sec := journal.Section{Header: header(field)}
		switch v := val.(type) {
		case string:
			sec.Text = strings.TrimSpace(v)
		case []string:
			sec.Items = v
		case []any:
			for _, item := range v {
				sec.Items = append(sec.Items, fmt.Sprint(item))
			}
		default:
			sec.Text = fmt.Sprint(v)
		}

		if sec.Text == "" && len(sec.Items) == 0 {
			continue
		}
		sections = append(sections, sec)
	}
	return sections
}

// Decode parses a model response into an Analysis, tolerating a markdown
// code fence around the JSON.
func Decode(response string) (Analysis, error) {
	var a Analysis
	if err := json.Unmarshal([]byte(StripFences(response)), &a); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return a, nil
}

// StripFences removes a surrounding ```json ... ``` or ``` ... ``` fence.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// Prompt builds the instruction sent to the model for an entry type.
func Prompt(et config.EntryType, header func(field string) string, text string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following journal entry and provide a structured response in JSON format.\n")
	sb.WriteString("The JSON should have the following fields:\n")
	for _, field := range et.Fields {
		fmt.Fprintf(&sb, "- %q: %s.\n", field, header(field))
	}
	sb.WriteString("Use a string for summary fields and a list of strings for fields that name several things.\n\n")
	sb.WriteString("Journal Entry:\n")
	fmt.Fprintf(&sb, "%q\n", text)
	return sb.String()
}
