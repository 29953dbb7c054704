package entry

import (
	"strings"
	"testing"
	"time"

	"github.com/xolan/jot/internal/journal"
)

func TestParse_NoEntryStart(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain text", "just some notes\nwith no header"},
		{"heading without year", "* Notes\n** Raw Input\nhello"},
		{"sub-heading with year", "** 2024-03-01 Fri\nbody"},
		{"missing space", "*2024-03-01 Fri\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if len(got) != 0 {
				t.Errorf("Parse(%q) returned %d entries, expected 0", tt.input, len(got))
			}
		})
	}
}

func TestParse_SingleEntry(t *testing.T) {
	input := "* 2024-03-01 Fri\nfirst line\nsecond line\n- item"

	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d entries, expected 1", len(got))
	}
	if got[0].Date != "2024-03-01 Fri" {
		t.Errorf("Date = %q, expected %q", got[0].Date, "2024-03-01 Fri")
	}
	expected := "first line\nsecond line\n- item"
	if got[0].Content != expected {
		t.Errorf("Content = %q, expected %q", got[0].Content, expected)
	}
	if got[0].RawInput != "" {
		t.Errorf("RawInput = %q, expected empty", got[0].RawInput)
	}
}

func TestParse_TrailingNewlineDoesNotAddLine(t *testing.T) {
	got := Parse("* 2024-03-01 Fri\na\nb\n")
	if len(got) != 1 || got[0].Content != "a\nb" {
		t.Errorf("Parse() = %+v", got)
	}
}

func TestParse_CRLF(t *testing.T) {
	got := Parse("* 2024-03-01 Fri\r\na\r\nb\r\n")
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d entries, expected 1", len(got))
	}
	if got[0].Date != "2024-03-01 Fri" || got[0].Content != "a\nb" {
		t.Errorf("Parse() = %+v", got[0])
	}
}

func TestParse_ReversesOrder(t *testing.T) {
	input := "* 2024-03-01 Fri\nA body\n* 2024-03-02 Sat\nB body\n* 2024-03-03 Sun\nC body"

	got := Parse(input)
	if len(got) != 3 {
		t.Fatalf("Parse() returned %d entries, expected 3", len(got))
	}

	expectedDates := []string{"2024-03-03 Sun", "2024-03-02 Sat", "2024-03-01 Fri"}
	for i, date := range expectedDates {
		if got[i].Date != date {
			t.Errorf("entry %d Date = %q, expected %q", i, got[i].Date, date)
		}
	}
	if got[2].Content != "A body" {
		t.Errorf("oldest entry Content = %q, expected %q", got[2].Content, "A body")
	}
}

func TestParse_DiscardsLeadingLines(t *testing.T) {
	input := "#+TITLE: Journal\npreamble\n\n* 2024-03-01 Fri\nbody"

	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d entries, expected 1", len(got))
	}
	if strings.Contains(got[0].Content, "preamble") {
		t.Errorf("leading lines leaked into entry: %q", got[0].Content)
	}
}

func TestParse_EmptyDateAndBody(t *testing.T) {
	got := Parse("* 20")
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d entries, expected 1", len(got))
	}
	if got[0].Date != "20" || got[0].Content != "" {
		t.Errorf("Parse() = %+v", got[0])
	}
}

func TestParse_ExtractsRawInput(t *testing.T) {
	input := "* 2024-03-01 Fri\n" +
		"** General Emotional Checkin\n" +
		"Calm and rested.\n" +
		"** Raw Input\n" +
		"  slept well, long walk\n" +
		"  then tea  \n" +
		"\n"

	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d entries, expected 1", len(got))
	}

	e := got[0]
	if e.RawInput != "slept well, long walk\n  then tea" {
		t.Errorf("RawInput = %q", e.RawInput)
	}
	if strings.Contains(e.Content, "Raw Input") || strings.Contains(e.Content, "long walk") {
		t.Errorf("Content still holds the raw input block: %q", e.Content)
	}
	if e.Content != "** General Emotional Checkin\nCalm and rested." {
		t.Errorf("Content = %q", e.Content)
	}
}

func TestParse_RawInputPerEntry(t *testing.T) {
	input := "* 2024-03-01 Fri\n** Raw Input\nfirst\n* 2024-03-02 Sat\nno raw here"

	got := Parse(input)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d entries, expected 2", len(got))
	}
	if got[0].RawInput != "" {
		t.Errorf("newest entry RawInput = %q, expected empty", got[0].RawInput)
	}
	if got[1].RawInput != "first" || got[1].Content != "" {
		t.Errorf("oldest entry = %+v", got[1])
	}
}

func TestParse_RawInputMarkerMidLineIgnored(t *testing.T) {
	got := Parse("* 2024-03-01 Fri\nsee ** Raw Input below")
	if got[0].RawInput != "" {
		t.Errorf("RawInput = %q, expected empty", got[0].RawInput)
	}
}

func TestParseSyntax_Markdown(t *testing.T) {
	input := "# Journal\n\n" +
		"## 2024-03-01 Fri\n\n### Things that made me happy\n\n- tea\n\n### Raw Input\n\nhad tea\n\n" +
		"## 2024-03-02 Sat\n\n### Raw Input\n\nrainy\n"

	got := ParseSyntax(input, journal.Markdown)
	if len(got) != 2 {
		t.Fatalf("ParseSyntax() returned %d entries, expected 2", len(got))
	}
	if got[0].Date != "2024-03-02 Sat" || got[0].RawInput != "rainy" {
		t.Errorf("newest entry = %+v", got[0])
	}
	if got[1].RawInput != "had tea" {
		t.Errorf("oldest RawInput = %q", got[1].RawInput)
	}
	if got[1].Content != "### Things that made me happy\n\n- tea" {
		t.Errorf("oldest Content = %q", got[1].Content)
	}
}

func TestEntry_Day(t *testing.T) {
	tests := []struct {
		date string
		ok   bool
	}{
		{"2024-03-01 Fri", true},
		{"2024-03-01", true},
		{"20", false},
		{"2024-13-01 ???", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			day, ok := Entry{Date: tt.date}.Day(time.UTC)
			if ok != tt.ok {
				t.Fatalf("Day() ok = %v, expected %v", ok, tt.ok)
			}
			if ok && (day.Year() != 2024 || day.Month() != time.March || day.Day() != 1) {
				t.Errorf("Day() = %v", day)
			}
		})
	}
}

func TestEntry_Preview(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		expected string
	}{
		{"sub-heading", Entry{Content: "** Happy\n- tea"}, "Happy"},
		{"list", Entry{Content: "- tea\n- cake"}, "tea"},
		{"paragraph after blank", Entry{Content: "\nquiet day"}, "quiet day"},
		{"raw input", Entry{RawInput: "slept well\nthen tea"}, "slept well"},
		{"empty", Entry{}, "(empty)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Preview(journal.Org); got != tt.expected {
				t.Errorf("Preview() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
