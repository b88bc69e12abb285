package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/translatebar/internal/language"
)

// contentGenerator is the part of the genai Models service the provider uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider translates with Google Gemini models
type GeminiProvider struct {
	model   string
	models  contentGenerator
	catalog *Catalog
}

// NewGeminiProvider creates a new Gemini translation provider. Without an
// API key the provider is created but every Translate call fails.
func NewGeminiProvider(apiKey, model string, catalog *Catalog) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	p := &GeminiProvider{model: model, catalog: catalog}
	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.models = client.Models
	return p, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// FetchPreferences returns the configured catalog
func (p *GeminiProvider) FetchPreferences(ctx context.Context) (language.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return language.Preferences{}, err
	}
	return p.catalog.Load()
}

// Translate translates text from source to target
func (p *GeminiProvider) Translate(ctx context.Context, text string, source, target language.Language) (Translation, error) {
	if p.models == nil {
		return Translation{}, fmt.Errorf("Gemini %w", ErrMissingAPIKey)
	}

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(buildPrompt(text, source, target)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	})
	if err != nil {
		return Translation{}, fmt.Errorf("Gemini API error: %w", err)
	}

	if resp == nil {
		return Translation{}, ErrNoTranslation
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return Translation{}, ErrNoTranslation
	}

	return Translation{Text: translated, Source: source, Target: target}, nil
}
