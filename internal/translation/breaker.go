package translation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/translatebar/internal/language"
)

// BreakerProvider stops calling a failing backend for a while after too
// many consecutive failures
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next in a circuit breaker that opens after
// maxFailures consecutive failures and probes again after openTimeout
func NewBreakerProvider(next Provider, maxFailures uint32, openTimeout time.Duration) *BreakerProvider {
	if maxFailures == 0 {
		maxFailures = 1
	}
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request or an empty answer says nothing about the
			// backend's health
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrNoTranslation)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("Translation backend %s: circuit %s -> %s", name, from, to)
		},
	}

	return &BreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

// FetchPreferences passes through to the wrapped provider
func (b *BreakerProvider) FetchPreferences(ctx context.Context) (language.Preferences, error) {
	return b.next.FetchPreferences(ctx)
}

// Translate calls the wrapped provider unless the breaker is open
func (b *BreakerProvider) Translate(ctx context.Context, text string, source, target language.Language) (Translation, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Translation{}, fmt.Errorf("%w: %s", ErrUnavailable, b.next.Name())
		}
		return Translation{}, err
	}
	return result.(Translation), nil
}
