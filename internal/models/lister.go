package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// modelsClient is the part of the OpenAI client the lister uses
type modelsClient interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client modelsClient
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ChatModels returns the sorted IDs of models usable for translation
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .translatebar.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chatModels []string
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)
	return chatModels, nil
}

func isChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "image", "embedding", "search"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.Contains(id, "gpt") || strings.HasPrefix(id, "o1") ||
		strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4") ||
		strings.Contains(id, "chat")
}

// ListAvailableModels prints the chat models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	chatModels, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Chat/Translation Models (use with --openai-model):")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, model := range chatModels {
		fmt.Fprintf(w, "  %s\n", model)
	}
	return nil
}
