package translation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"codeberg.org/snonux/translatebar/internal/language"
)

var (
	english = language.Language{ShortName: "en", FullName: "English"}
	german  = language.Language{ShortName: "de", FullName: "German"}
)

type fakeChatClient struct {
	resp openai.ChatCompletionResponse
	err  error
	reqs []openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

type fakeGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	models []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.models = append(f.models, model)
	return f.resp, f.err
}

func geminiResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

// stubProvider counts calls and fails while err is set
type stubProvider struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchPreferences(ctx context.Context) (language.Preferences, error) {
	return language.Preferences{Languages: []language.Language{english, german}}, nil
}

func (s *stubProvider) Translate(ctx context.Context, text string, source, target language.Language) (Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return Translation{}, s.err
	}
	return Translation{Text: strings.ToUpper(text), Source: source, Target: target}, nil
}

func (s *stubProvider) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestOpenAIProvider_NoAPIKey(t *testing.T) {
	p := NewOpenAIProvider("", "", nil)

	_, err := p.Translate(context.Background(), "Hallo", german, english)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
	if err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestOpenAIProvider_Translate(t *testing.T) {
	client := &fakeChatClient{resp: chatResponse("  Hello  \n")}
	p := NewOpenAIProvider("key", "", nil)
	p.client = client

	got, err := p.Translate(context.Background(), "Hallo", german, english)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got.Text != "Hello" || got.Source != german || got.Target != english {
		t.Errorf("Unexpected translation %+v", got)
	}

	req := client.reqs[0]
	if req.Model != openai.GPT4oMini {
		t.Errorf("Expected default model %s, got %s", openai.GPT4oMini, req.Model)
	}
	if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "from German to English") {
		t.Errorf("Unexpected prompt %+v", req.Messages)
	}
	if !strings.HasSuffix(req.Messages[1].Content, "Hallo") {
		t.Error("Expected prompt to end with the text")
	}
}

func TestOpenAIProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeChatClient
		want   error
	}{
		{"no choices", &fakeChatClient{}, ErrNoTranslation},
		{"blank content", &fakeChatClient{resp: chatResponse("   ")}, ErrNoTranslation},
		{"api error", &fakeChatClient{err: context.DeadlineExceeded}, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewOpenAIProvider("key", "gpt-4o", nil)
			p.client = tt.client

			_, err := p.Translate(context.Background(), "x", german, english)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenAIProvider_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	p := NewOpenAIProvider(apiKey, "", nil)
	got, err := p.Translate(context.Background(), "Apfel", german, english)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got.Text == "" {
		t.Error("Got empty translation")
	}
	t.Logf("Translation of 'Apfel': %s", got.Text)
}

func TestGeminiProvider_NoAPIKey(t *testing.T) {
	p, err := NewGeminiProvider("", "", nil)
	if err != nil {
		t.Fatalf("NewGeminiProvider failed: %v", err)
	}

	if _, err := p.Translate(context.Background(), "Hallo", german, english); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGeminiProvider_Translate(t *testing.T) {
	gen := &fakeGenerator{resp: geminiResponse("Hello\n")}
	p := &GeminiProvider{model: "gemini-2.0-flash", models: gen}

	got, err := p.Translate(context.Background(), "Hallo", german, english)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got.Text != "Hello" {
		t.Errorf("Expected 'Hello', got %q", got.Text)
	}
	if gen.models[0] != "gemini-2.0-flash" {
		t.Errorf("Unexpected model %q", gen.models[0])
	}
}

func TestGeminiProvider_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want error
	}{
		{"nil response", &fakeGenerator{}, ErrNoTranslation},
		{"empty text", &fakeGenerator{resp: geminiResponse("")}, ErrNoTranslation},
		{"api error", &fakeGenerator{err: context.Canceled}, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &GeminiProvider{model: "m", models: tt.gen}
			if _, err := p.Translate(context.Background(), "x", german, english); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCatalog_Embedded(t *testing.T) {
	prefs, err := NewCatalog("").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(prefs.Languages) == 0 {
		t.Fatal("Expected embedded catalog to list languages")
	}
	if _, ok := prefs.Lookup("en"); !ok {
		t.Error("Expected English in the embedded catalog")
	}
}

func TestCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{"dirs":["en-de"],"langs":{"en":"English","de":"German"}}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	prefs, err := NewCatalog(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(prefs.Languages) != 2 || !prefs.Supports(english, german) {
		t.Errorf("Unexpected catalog %+v", prefs)
	}

	if _, err := NewCatalog(filepath.Join(t.TempDir(), "missing.json")).Load(); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestProviders_FetchPreferencesHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gemini, _ := NewGeminiProvider("", "", nil)
	for _, p := range []Provider{NewOpenAIProvider("", "", nil), gemini} {
		if _, err := p.FetchPreferences(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", p.Name(), err)
		}
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantName string
		wantErr  error
	}{
		{"default", nil, "openai", nil},
		{"gemini", &Config{Provider: "gemini"}, "gemini", nil},
		{"empty name", &Config{}, "openai", nil},
		{"unknown", &Config{Provider: "deepl"}, "", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected %s, got %s", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewProvider_Decorators(t *testing.T) {
	p, _ := NewProvider(DefaultConfig())
	cached, ok := p.(*CachedProvider)
	if !ok {
		t.Fatalf("Expected cache outermost, got %T", p)
	}
	if _, ok := cached.next.(*BreakerProvider); !ok {
		t.Errorf("Expected breaker inside cache, got %T", cached.next)
	}

	p, _ = NewProvider(&Config{Provider: "openai"})
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("Expected bare provider without decorators, got %T", p)
	}
}

func TestBreakerProvider_OpensAfterFailures(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	b := NewBreakerProvider(stub, 2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := b.Translate(ctx, "x", english, german); err == nil {
			t.Fatal("Expected failure")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("Expected open breaker, got %v", b.State())
	}

	_, err := b.Translate(ctx, "x", english, german)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if stub.callCount() != 2 {
		t.Errorf("Expected open breaker to skip the backend, got %d calls", stub.callCount())
	}
}

func TestBreakerProvider_RecoversAfterTimeout(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	b := NewBreakerProvider(stub, 1, 20*time.Millisecond)
	ctx := context.Background()

	b.Translate(ctx, "x", english, german)
	stub.setErr(nil)
	time.Sleep(40 * time.Millisecond)

	got, err := b.Translate(ctx, "x", english, german)
	if err != nil {
		t.Fatalf("Expected half-open probe to succeed, got %v", err)
	}
	if got.Text != "X" || b.State() != gobreaker.StateClosed {
		t.Errorf("Expected closed breaker after success, got %v / %v", got.Text, b.State())
	}
}

func TestBreakerProvider_IgnoresBenignErrors(t *testing.T) {
	for _, benign := range []error{context.Canceled, ErrNoTranslation} {
		stub := &stubProvider{err: benign}
		b := NewBreakerProvider(stub, 1, time.Hour)

		for i := 0; i < 3; i++ {
			b.Translate(context.Background(), "x", english, german)
		}
		if b.State() != gobreaker.StateClosed {
			t.Errorf("%v: expected closed breaker, got %v", benign, b.State())
		}
	}
}

func TestCachedProvider(t *testing.T) {
	stub := &stubProvider{}
	c := NewCachedProvider(stub)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := c.Translate(ctx, "hallo", german, english)
		if err != nil || got.Text != "HALLO" {
			t.Fatalf("Translate = %v, %v", got, err)
		}
	}
	if stub.callCount() != 1 {
		t.Errorf("Expected one backend call, got %d", stub.callCount())
	}

	// Direction is part of the key
	c.Translate(ctx, "hallo", english, german)
	if stub.callCount() != 2 || c.cache.Len() != 2 {
		t.Errorf("Expected a second entry for the other direction")
	}
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	c := NewCachedProvider(stub)
	ctx := context.Background()

	if _, err := c.Translate(ctx, "x", english, german); err == nil {
		t.Fatal("Expected error")
	}
	stub.setErr(nil)
	if got, err := c.Translate(ctx, "x", english, german); err != nil || got.Text != "X" {
		t.Errorf("Expected fresh call after error, got %v, %v", got, err)
	}
	if stub.callCount() != 2 {
		t.Errorf("Expected 2 backend calls, got %d", stub.callCount())
	}
}

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	if _, ok := cache.Get("cat", english, german); ok {
		t.Error("Expected empty cache")
	}
	cache.Add("cat", english, german, "Katze")
	if got, ok := cache.Get("cat", english, german); !ok || got != "Katze" {
		t.Errorf("Get = %q, %v", got, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", cache.Len())
	}
}
