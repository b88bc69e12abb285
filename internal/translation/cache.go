package translation

import (
	"context"
	"sync"

	"codeberg.org/snonux/translatebar/internal/language"
)

// cacheKey identifies one translation request
type cacheKey struct {
	Text   string
	Source string
	Target string
}

// TranslationCache stores translations in memory
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[cacheKey]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[cacheKey]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(text string, source, target language.Language, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[newCacheKey(text, source, target)] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(text string, source, target language.Language) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[newCacheKey(text, source, target)]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

func newCacheKey(text string, source, target language.Language) cacheKey {
	return cacheKey{Text: text, Source: source.ShortName, Target: target.ShortName}
}

// CachedProvider answers repeated requests from memory
type CachedProvider struct {
	next  Provider
	cache *TranslationCache
}

// NewCachedProvider wraps next with a fresh cache
func NewCachedProvider(next Provider) *CachedProvider {
	return &CachedProvider{next: next, cache: NewTranslationCache()}
}

// Name returns the wrapped provider name
func (c *CachedProvider) Name() string {
	return c.next.Name()
}

// FetchPreferences passes through to the wrapped provider
func (c *CachedProvider) FetchPreferences(ctx context.Context) (language.Preferences, error) {
	return c.next.FetchPreferences(ctx)
}

// Translate returns a cached translation or asks the wrapped provider
func (c *CachedProvider) Translate(ctx context.Context, text string, source, target language.Language) (Translation, error) {
	if cached, ok := c.cache.Get(text, source, target); ok {
		return Translation{Text: cached, Source: source, Target: target}, nil
	}

	result, err := c.next.Translate(ctx, text, source, target)
	if err != nil {
		return Translation{}, err
	}
	c.cache.Add(text, source, target, result.Text)
	return result, nil
}
