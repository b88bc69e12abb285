package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/snonux/translatebar/internal/language"
)

var (
	// ErrMissingAPIKey is returned when a provider has no credentials
	ErrMissingAPIKey = errors.New("API key not found")

	// ErrNoTranslation is returned when the backend answered without text
	ErrNoTranslation = errors.New("no translation returned")

	// ErrUnknownProvider is returned by NewProvider for unsupported names
	ErrUnknownProvider = errors.New("unknown translation provider")

	// ErrUnavailable is returned while the circuit breaker rejects calls
	ErrUnavailable = errors.New("translation backend temporarily unavailable")
)

// Provider translates text and advertises the languages it supports
type Provider interface {
	// FetchPreferences returns the language catalog
	FetchPreferences(ctx context.Context) (language.Preferences, error)

	// Translate translates text from source to target
	Translate(ctx context.Context, text string, source, target language.Language) (Translation, error)

	// Name returns the provider name
	Name() string
}

// Translation is the result of a Translate call
type Translation struct {
	Text   string
	Source language.Language
	Target language.Language
}

// Config holds the settings for building a provider
type Config struct {
	Provider    string // "openai" or "gemini"
	CatalogFile string // optional catalog payload overriding the embedded one

	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string

	// Breaker settings; MaxFailures 0 disables the breaker
	MaxFailures    uint32
	BreakerTimeout time.Duration

	// Cache wraps the provider in an in-memory cache
	Cache bool
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:       "openai",
		OpenAIModel:    "gpt-4o-mini",
		GeminiModel:    "gemini-2.0-flash",
		MaxFailures:    3,
		BreakerTimeout: 30 * time.Second,
		Cache:          true,
	}
}

// NewProvider creates the provider named in config, wrapped in the
// breaker and cache decorators it asks for
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	catalog := NewCatalog(config.CatalogFile)

	var provider Provider
	switch config.Provider {
	case "openai", "":
		provider = NewOpenAIProvider(config.OpenAIKey, config.OpenAIModel, catalog)
	case "gemini":
		gemini, err := NewGeminiProvider(config.GeminiKey, config.GeminiModel, catalog)
		if err != nil {
			return nil, err
		}
		provider = gemini
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, config.Provider)
	}

	if config.MaxFailures > 0 {
		provider = NewBreakerProvider(provider, config.MaxFailures, config.BreakerTimeout)
	}
	if config.Cache {
		provider = NewCachedProvider(provider)
	}

	return provider, nil
}

// buildPrompt returns the instruction sent to LLM backends
func buildPrompt(text string, source, target language.Language) string {
	return fmt.Sprintf("Translate the following text from %s to %s. "+
		"Respond with only the translation, nothing else. Keep line breaks and punctuation.\n\n%s",
		source, target, text)
}
