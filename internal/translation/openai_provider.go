package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/translatebar/internal/language"
)

// chatClient is the part of the OpenAI client the provider uses
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider translates with OpenAI chat completions
type OpenAIProvider struct {
	apiKey  string
	model   string
	client  chatClient
	catalog *Catalog
}

// NewOpenAIProvider creates a new OpenAI translation provider
func NewOpenAIProvider(apiKey, model string, catalog *Catalog) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		client:  openai.NewClient(apiKey),
		catalog: catalog,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// FetchPreferences returns the configured catalog
func (p *OpenAIProvider) FetchPreferences(ctx context.Context) (language.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return language.Preferences{}, err
	}
	return p.catalog.Load()
}

// Translate translates text from source to target
func (p *OpenAIProvider) Translate(ctx context.Context, text string, source, target language.Language) (Translation, error) {
	if p.apiKey == "" {
		return Translation{}, fmt.Errorf("OpenAI %w", ErrMissingAPIKey)
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional translator. You never explain, comment or add quotes.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, source, target),
			},
		},
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Translation{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Translation{}, ErrNoTranslation
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return Translation{}, ErrNoTranslation
	}

	return Translation{Text: translated, Source: source, Target: target}, nil
}
