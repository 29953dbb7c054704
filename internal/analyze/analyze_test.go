package analyze

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/journal"
)

func testHeader(field string) string {
	return strings.ToUpper(field)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"surrounding space", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.expected {
				t.Errorf("StripFences(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	a, err := Decode("```json\n{\"mood\":\"ok\",\"wins\":[\"tea\"]}\n```")
	if err != nil {
		t.Fatalf("Decode() returned unexpected error: %v", err)
	}
	if a["mood"] != "ok" {
		t.Errorf("mood = %v", a["mood"])
	}

	if _, err := Decode("not json"); err == nil {
		t.Error("Decode() expected error for invalid JSON")
	}
}

func TestAnalysis_Sections(t *testing.T) {
	a := Analysis{
		"mood":  "  calm ",
		"wins":  []any{"tea", 3},
		"empty": "",
		"count": 2.5,
		"none":  nil,
		"names": []string{"ann"},
	}

	got := a.Sections([]string{"wins", "mood", "missing", "empty", "none", "count", "names"}, testHeader)
	expected := []journal.Section{
		{Header: "WINS", Items: []string{"tea", "3"}},
		{Header: "MOOD", Text: "calm"},
		{Header: "COUNT", Text: "2.5"},
		{Header: "NAMES", Items: []string{"ann"}},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Sections() = %+v, expected %+v", got, expected)
	}
}

func TestPrompt(t *testing.T) {
	et := config.EntryType{Name: "journal", Fields: []string{"happy_things", "focus_items"}}
	got := Prompt(et, testHeader, "had tea")

	for _, want := range []string{`"happy_things": HAPPY_THINGS`, `"focus_items": FOCUS_ITEMS`, `"had tea"`, "JSON"} {
		if !strings.Contains(got, want) {
			t.Errorf("Prompt() missing %q:\n%s", want, got)
		}
	}
}

func TestPassthrough(t *testing.T) {
	a, err := Passthrough{}.Analyze(context.Background(), config.EntryType{Fields: []string{"x"}}, "hi")
	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	if len(a.Sections([]string{"x"}, testHeader)) != 0 {
		t.Errorf("Passthrough produced sections: %v", a)
	}
}

type fakeGenerator struct {
	text   string
	err    error
	model  string
	prompt string
	mime   string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if cfg != nil {
		f.mime = cfg.ResponseMIMEType
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestGemini_Analyze(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n{\"happy_things\":[\"tea\"]}\n```"}
	g := &Gemini{models: gen, model: "test-model", header: testHeader}
	et := config.EntryType{Name: "journal", Fields: []string{"happy_things"}}

	a, err := g.Analyze(context.Background(), et, "had tea")
	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	if gen.model != "test-model" {
		t.Errorf("model = %q", gen.model)
	}
	if gen.mime != "application/json" {
		t.Errorf("ResponseMIMEType = %q", gen.mime)
	}
	if !strings.Contains(gen.prompt, "had tea") {
		t.Errorf("prompt missing submission: %q", gen.prompt)
	}
	sections := a.Sections(et.Fields, testHeader)
	if len(sections) != 1 || !reflect.DeepEqual(sections[0].Items, []string{"tea"}) {
		t.Errorf("Sections() = %+v", sections)
	}
	if g.Name() != "gemini:test-model" {
		t.Errorf("Name() = %q", g.Name())
	}
}

func TestGemini_Errors(t *testing.T) {
	et := config.EntryType{Fields: []string{"x"}}

	boom := errors.New("boom")
	g := &Gemini{models: &fakeGenerator{err: boom}, header: testHeader}
	if _, err := g.Analyze(context.Background(), et, "hi"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped generate error, got %v", err)
	}

	g = &Gemini{models: &fakeGenerator{text: ""}, header: testHeader}
	if _, err := g.Analyze(context.Background(), et, "hi"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewGemini_RequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", "", testHeader); err == nil {
		t.Error("NewGemini() expected error without API key")
	}
}
