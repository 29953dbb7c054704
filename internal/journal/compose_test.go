package journal

import (
	"strings"
	"testing"
	"time"
)

func TestSyntaxFor(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"org", FormatOrg, false},
		{"ORG", FormatOrg, false},
		{" markdown ", FormatMarkdown, false},
		{"md", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := SyntaxFor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SyntaxFor(%q) expected error, got %v", tt.input, s.Format)
				}
				return
			}
			if err != nil {
				t.Fatalf("SyntaxFor(%q) returned unexpected error: %v", tt.input, err)
			}
			if s.Format != tt.expected {
				t.Errorf("SyntaxFor(%q) = %q, expected %q", tt.input, s.Format, tt.expected)
			}
		})
	}
}

func TestDateHeader(t *testing.T) {
	day := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	if got := Org.DateHeader(day); got != "* 2024-03-01 Fri" {
		t.Errorf("Org.DateHeader = %q", got)
	}
	if got := Markdown.DateHeader(day); got != "## 2024-03-01 Fri" {
		t.Errorf("Markdown.DateHeader = %q", got)
	}
	if !Org.IsEntryStart(Org.DateHeader(day)) {
		t.Error("Org date header should be recognised as an entry start")
	}
	if Org.IsEntryStart("* Notes") {
		t.Error("heading without year prefix should not start an entry")
	}
	if Org.FileName("journal") != "journal.org" || Markdown.FileName("journal") != "journal.md" {
		t.Error("FileName did not apply the format extension")
	}
}

func TestFormatEntry_Org(t *testing.T) {
	sections := []Section{
		{Header: "General Emotional Checkin", Text: "calm"},
		{Header: "Things that made me happy", Items: []string{"tea", "sun"}},
	}

	got := Org.FormatEntry(sections, "had tea in the sun")
	expected := "** General Emotional Checkin\ncalm\n" +
		"** Things that made me happy\n- tea\n- sun\n" +
		"** Raw Input\nhad tea in the sun\n" +
		"\n"

	if got != expected {
		t.Errorf("FormatEntry() =\n%q\nexpected\n%q", got, expected)
	}
}

func TestFormatEntry_MarkdownPadsHeaders(t *testing.T) {
	got := Markdown.FormatEntry([]Section{{Header: "Blockers", Items: []string{"ci"}}}, "")
	expected := "### Blockers\n\n- ci\n\n\n"
	if got != expected {
		t.Errorf("FormatEntry() = %q, expected %q", got, expected)
	}
}

func TestAppend_NewDay(t *testing.T) {
	existing := "* 2024-02-29 Thu\n** Raw Input\nold"

	got := Org.Append(existing, "* 2024-03-01 Fri", nil, "new")
	expected := existing + "\n* 2024-03-01 Fri\n** Raw Input\nnew\n\n"
	if got != expected {
		t.Errorf("Append() =\n%q\nexpected\n%q", got, expected)
	}
}

func TestAppend_MergesIntoExistingDay(t *testing.T) {
	existing := "* 2024-03-01 Fri\n" +
		"** Things that made me happy\n- tea\n" +
		"** Raw Input\nfirst\n\n" +
		"* 2024-03-02 Sat\n** Raw Input\nlater\n"

	sections := []Section{
		{Header: "Things that made me happy", Items: []string{"sun"}},
		{Header: "Things that were stressful", Items: []string{"traffic"}},
	}
	got := Org.Append(existing, "* 2024-03-01 Fri", sections, "second")

	if !strings.Contains(got, "- tea\n- sun\n** Raw Input") {
		t.Errorf("new item not inserted into existing section:\n%s", got)
	}
	if !strings.Contains(got, "** Things that were stressful\n- traffic\n") {
		t.Errorf("missing section not added:\n%s", got)
	}
	if !strings.Contains(got, "first\nsecond\n** Things that were stressful") {
		t.Errorf("raw input not appended:\n%s", got)
	}
	if !strings.HasSuffix(got, "* 2024-03-02 Sat\n** Raw Input\nlater\n") {
		t.Errorf("following day was modified:\n%s", got)
	}
	if strings.Count(got, "* 2024-03-01 Fri") != 1 {
		t.Errorf("date header duplicated:\n%s", got)
	}
}

func TestAppend_MarkdownMissingSectionUsesBlankLine(t *testing.T) {
	existing := "## 2024-03-01 Fri\n### Raw Input\n\nfirst\n\n"
	got := Markdown.Append(existing, "## 2024-03-01 Fri", []Section{{Header: "Blockers", Text: "none"}}, "")

	if !strings.HasSuffix(got, "### Blockers\n\nnone\n") {
		t.Errorf("Append() = %q", got)
	}
}

func TestCommitMessage(t *testing.T) {
	if got := CommitMessage("2024-03-01 09:30"); got != "Journal entry 2024-03-01 09:30" {
		t.Errorf("CommitMessage() = %q", got)
	}
}
