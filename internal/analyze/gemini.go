package analyze

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/xolan/jot/internal/config"
)

// generator is the part of *genai.Models the analyzer uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini analyzes submissions with a Gemini model.
type Gemini struct {
	models generator
	model  string
	header func(string) string
}

// NewGemini creates a Gemini analyzer. header maps fields to the titles used
// to describe them in the prompt.
func NewGemini(ctx context.Context, apiKey, model string, header func(string) string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{models: client.Models, model: model, header: header}, nil
}

// Analyze implements Analyzer.
func (g *Gemini) Analyze(ctx context.Context, et config.EntryType, text string) (Analysis, error) {
	prompt := Prompt(et, g.header, text)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	out := resp.Text()
	if out == "" {
		return nil, ErrEmptyResponse
	}
	return Decode(out)
}

// Name returns the analyzer name for logging.
func (g *Gemini) Name() string {
	return "gemini:" + g.model
}
