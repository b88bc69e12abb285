package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/translatebar/internal/history"
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/translation"
)

// TranslateCall records one call to MockProvider.Translate
type TranslateCall struct {
	Text   string
	Source language.Language
	Target language.Language
}

// MockProvider mocks a translation provider
type MockProvider struct {
	mu sync.Mutex

	Preferences    language.Preferences
	PreferencesErr error
	Translations   map[string]string
	Errors         map[string]error

	gates map[string]chan struct{}
	calls []TranslateCall
	fetch int
}

// NewMockProvider creates a provider serving the test catalog
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Preferences:  Catalog(),
		Translations: make(map[string]string),
		Errors:       make(map[string]error),
		gates:        make(map[string]chan struct{}),
	}
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// FetchPreferences mocks the catalog request
func (m *MockProvider) FetchPreferences(ctx context.Context) (language.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetch++
	if m.PreferencesErr != nil {
		return language.Preferences{}, m.PreferencesErr
	}
	return m.Preferences, nil
}

// Translate mocks translating text. Calls for a gated text block until the
// gate is released.
func (m *MockProvider) Translate(ctx context.Context, text string, source, target language.Language) (translation.Translation, error) {
	m.mu.Lock()
	m.calls = append(m.calls, TranslateCall{Text: text, Source: source, Target: target})
	gate := m.gates[text]
	err := m.Errors[text]
	translated, ok := m.Translations[text]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return translation.Translation{}, ctx.Err()
		}
	}

	if err != nil {
		return translation.Translation{}, err
	}
	if !ok {
		translated = fmt.Sprintf("%s [%s->%s]", text, source.ShortName, target.ShortName)
	}
	return translation.Translation{Text: translated, Source: source, Target: target}, nil
}

// Gate makes Translate block for text until the returned function is called
func (m *MockProvider) Gate(text string) (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.gates[text] = ch
	m.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// SetTranslation sets the answer for text
func (m *MockProvider) SetTranslation(text, translated string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Translations[text] = translated
}

// SetError makes Translate fail for text
func (m *MockProvider) SetError(text string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[text] = err
}

// Calls returns the recorded Translate calls
func (m *MockProvider) Calls() []TranslateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranslateCall(nil), m.calls...)
}

// FetchCount returns how many times the catalog was requested
func (m *MockProvider) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetch
}

// MockClipboard mocks the system clipboard
type MockClipboard struct {
	mu   sync.Mutex
	text string
	set  bool
}

// SetText puts text on the clipboard
func (m *MockClipboard) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.set = text, true
}

// CurrentText returns the clipboard text, if any
func (m *MockClipboard) CurrentText() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.set
}

// MockPreferenceStore mocks the user settings the view model reads
type MockPreferenceStore struct {
	AutoTranslate bool
}

// AutoTranslateClipboard reports whether clipboard text is translated on open
func (m *MockPreferenceStore) AutoTranslateClipboard() bool {
	return m.AutoTranslate
}

// MockRecorder collects history entries in memory
type MockRecorder struct {
	mu      sync.Mutex
	entries []history.Entry
	Err     error
}

// Record stores entry
func (m *MockRecorder) Record(ctx context.Context, entry history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.entries = append(m.entries, entry)
	return nil
}

// Entries returns the recorded entries
func (m *MockRecorder) Entries() []history.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]history.Entry(nil), m.entries...)
}
