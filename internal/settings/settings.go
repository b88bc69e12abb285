package settings

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/translatebar/internal/history"
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/orchestrator"
	"codeberg.org/snonux/translatebar/internal/translation"
)

// Configuration keys
const (
	KeyProvider           = "provider"
	KeyOpenAIKey          = "openai.key"
	KeyOpenAIModel        = "openai.model"
	KeyGeminiKey          = "gemini.key"
	KeyGeminiModel        = "gemini.model"
	KeySourceLanguages    = "languages.source"
	KeyTargetLanguages    = "languages.target"
	KeyDebounce           = "translate.debounce"
	KeyTimeout            = "translate.timeout"
	KeyClipboardAuto      = "clipboard.auto_translate"
	KeyHistoryEnabled     = "history.enabled"
	KeyHistoryPath        = "history.path"
	KeyCatalogFile        = "catalog.file"
	KeyBreakerMaxFailures = "breaker.max_failures"
	KeyBreakerTimeout     = "breaker.timeout"
)

// Settings holds the typed application configuration
type Settings struct {
	Provider    string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string

	// Pinned language codes; their count fixes the number of buttons per side
	SourceLanguages []string
	TargetLanguages []string

	Debounce time.Duration
	Timeout  time.Duration

	ClipboardAutoTranslate bool

	HistoryEnabled bool
	HistoryPath    string

	CatalogFile        string
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	d := translation.DefaultConfig()

	v.SetDefault(KeyProvider, d.Provider)
	v.SetDefault(KeyOpenAIModel, d.OpenAIModel)
	v.SetDefault(KeyGeminiModel, d.GeminiModel)
	v.SetDefault(KeySourceLanguages, []string{"en", "ru", "de"})
	v.SetDefault(KeyTargetLanguages, []string{"ru", "en", "de"})
	v.SetDefault(KeyDebounce, orchestrator.DefaultDebounce)
	v.SetDefault(KeyTimeout, orchestrator.DefaultRequestTimeout)
	v.SetDefault(KeyClipboardAuto, true)
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryPath, history.DefaultPath())
	v.SetDefault(KeyBreakerMaxFailures, d.MaxFailures)
	v.SetDefault(KeyBreakerTimeout, d.BreakerTimeout)
}

// Load reads the settings from v. API keys come from the environment
// first and the config second.
func Load(v *viper.Viper) *Settings {
	SetDefaults(v)

	return &Settings{
		Provider:               v.GetString(KeyProvider),
		OpenAIKey:              firstNonEmpty(os.Getenv("OPENAI_API_KEY"), v.GetString(KeyOpenAIKey)),
		OpenAIModel:            v.GetString(KeyOpenAIModel),
		GeminiKey:              firstNonEmpty(os.Getenv("GEMINI_API_KEY"), v.GetString(KeyGeminiKey)),
		GeminiModel:            v.GetString(KeyGeminiModel),
		SourceLanguages:        v.GetStringSlice(KeySourceLanguages),
		TargetLanguages:        v.GetStringSlice(KeyTargetLanguages),
		Debounce:               v.GetDuration(KeyDebounce),
		Timeout:                v.GetDuration(KeyTimeout),
		ClipboardAutoTranslate: v.GetBool(KeyClipboardAuto),
		HistoryEnabled:         v.GetBool(KeyHistoryEnabled),
		HistoryPath:            v.GetString(KeyHistoryPath),
		CatalogFile:            v.GetString(KeyCatalogFile),
		BreakerMaxFailures:     v.GetUint32(KeyBreakerMaxFailures),
		BreakerTimeout:         v.GetDuration(KeyBreakerTimeout),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// AutoTranslateClipboard reports whether clipboard text is translated when
// the window opens
func (s *Settings) AutoTranslateClipboard() bool {
	return s.ClipboardAutoTranslate
}

// TranslationConfig returns the provider configuration
func (s *Settings) TranslationConfig() *translation.Config {
	return &translation.Config{
		Provider:       s.Provider,
		CatalogFile:    s.CatalogFile,
		OpenAIKey:      s.OpenAIKey,
		OpenAIModel:    s.OpenAIModel,
		GeminiKey:      s.GeminiKey,
		GeminiModel:    s.GeminiModel,
		MaxFailures:    s.BreakerMaxFailures,
		BreakerTimeout: s.BreakerTimeout,
		Cache:          true,
	}
}

// OrchestratorConfig resolves the pinned language codes against catalog
func (s *Settings) OrchestratorConfig(catalog language.Preferences) (orchestrator.Config, error) {
	source, err := ResolveLanguages(s.SourceLanguages, catalog)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("invalid %s: %w", KeySourceLanguages, err)
	}
	target, err := ResolveLanguages(s.TargetLanguages, catalog)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("invalid %s: %w", KeyTargetLanguages, err)
	}

	return orchestrator.Config{
		SourceSeed:     source,
		TargetSeed:     target,
		Debounce:       s.Debounce,
		RequestTimeout: s.Timeout,
	}, nil
}

// ResolveLanguages maps codes to catalog languages. Codes must be known
// and distinct.
func ResolveLanguages(codes []string, catalog language.Preferences) ([]language.Language, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("no languages configured")
	}

	seen := make(map[string]bool, len(codes))
	langs := make([]language.Language, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			return nil, fmt.Errorf("language %q listed twice", code)
		}
		seen[code] = true

		lang, ok := catalog.Lookup(code)
		if !ok {
			return nil, fmt.Errorf("unknown language code %q", code)
		}
		langs = append(langs, lang)
	}
	return langs, nil
}
