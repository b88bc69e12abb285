package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"codeberg.org/snonux/translatebar/internal/history"
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/reactive"
	"codeberg.org/snonux/translatebar/internal/recency"
	"codeberg.org/snonux/translatebar/internal/translation"
)

// MaxCharactersCount is the input length shown in the limitation label
const MaxCharactersCount = 5000

const (
	// DefaultDebounce is how long input must be quiet before it is translated
	DefaultDebounce = time.Second

	// DefaultRequestTimeout bounds each provider call
	DefaultRequestTimeout = 30 * time.Second
)

// ErrClosed is returned by operations on a closed orchestrator
var ErrClosed = errors.New("orchestrator is closed")

// ClipboardReader reads the current clipboard text
type ClipboardReader interface {
	CurrentText() (string, bool)
}

// PreferenceStore exposes the user settings the orchestrator reads
type PreferenceStore interface {
	AutoTranslateClipboard() bool
}

// Recorder receives every translation shown to the user
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Config holds orchestrator settings
type Config struct {
	// Seeds for the pinned languages; their lengths fix the queue capacities
	SourceSeed []language.Language
	TargetSeed []language.Language

	Debounce       time.Duration
	RequestTimeout time.Duration
	Logger         *log.Logger
}

// DefaultSeeds returns the pinned languages used when none are configured
func DefaultSeeds() (source, target []language.Language) {
	en := language.Language{ShortName: "en", FullName: "English"}
	ru := language.Language{ShortName: "ru", FullName: "Russian"}
	de := language.Language{ShortName: "de", FullName: "German"}
	return []language.Language{en, ru, de}, []language.Language{ru, en, de}
}

// Option configures optional collaborators
type Option func(*Orchestrator)

// WithClipboard sets the clipboard used by TranslateFromClipboard
func WithClipboard(c ClipboardReader) Option {
	return func(o *Orchestrator) { o.clipboard = c }
}

// WithPreferenceStore sets the settings consulted by TranslateFromClipboard
func WithPreferenceStore(p PreferenceStore) Option {
	return func(o *Orchestrator) { o.settings = p }
}

// WithRecorder sets where accepted translations are recorded
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

type languageQueue = recency.Queue[language.Language]

// request is the (text, source, target) triple sent to the provider
type request struct {
	text   string
	source language.Language
	target language.Language
}

// Orchestrator turns raw input and language selections into a live
// translation.
//
// Every cell is mutated on a single event loop goroutine. Setters post to
// the loop and wait; timer and network completions post without waiting.
// Subscribers run on the loop and must not call blocking setters.
type Orchestrator struct {
	provider  translation.Provider
	clipboard ClipboardReader
	settings  PreferenceStore
	recorder  Recorder
	logger    *log.Logger
	timeout   time.Duration

	ops       chan func()
	quit      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	bag       reactive.Bag
	debouncer *reactive.Debouncer

	rawInput           *reactive.Cell[reactive.Optional[string]]
	rawOutput          *reactive.Cell[reactive.Optional[string]]
	sourceIndex        *reactive.Cell[int]
	targetIndex        *reactive.Cell[int]
	sourceQueue        *reactive.Cell[languageQueue]
	targetQueue        *reactive.Cell[languageQueue]
	searchQuery        *reactive.Cell[reactive.Optional[string]]
	sourcePickerActive *reactive.Cell[bool]
	targetPickerActive *reactive.Cell[bool]
	inputWords         *reactive.Cell[[]string]
	popoverPinned      *reactive.Cell[bool]
	preferences        *reactive.Cell[language.Preferences]

	inputText  *reactive.Cell[string]
	outputText *reactive.Cell[string]

	isSuggestHidden        reactive.Observable[bool]
	isLanguagePickerNeeded reactive.Observable[bool]
	text                   reactive.Observable[reactive.Optional[string]]
	limitationText         reactive.Observable[string]
	clearButtonHidden      reactive.Observable[bool]
	sourceLanguage         reactive.Observable[language.Language]
	targetLanguage         reactive.Observable[language.Language]
	allLanguages           reactive.Observable[[]language.Language]

	// Loop-owned bookkeeping
	lastRaw      reactive.Optional[string]
	hasLastRaw   bool
	generation   uint64
	lastIssued   request
	hasIssued    bool
	flushPending bool
}

// New creates an orchestrator and starts fetching the language catalog
func New(provider translation.Provider, config Config, opts ...Option) (*Orchestrator, error) {
	if provider == nil {
		return nil, fmt.Errorf("translation provider is required")
	}

	defaultSource, defaultTarget := DefaultSeeds()
	if config.SourceSeed == nil {
		config.SourceSeed = defaultSource
	}
	if config.TargetSeed == nil {
		config.TargetSeed = defaultTarget
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "orchestrator: ", log.LstdFlags)
	}

	sourceQueue, err := recency.New(config.SourceSeed...)
	if err != nil {
		return nil, fmt.Errorf("invalid source languages: %w", err)
	}
	targetQueue, err := recency.New(config.TargetSeed...)
	if err != nil {
		return nil, fmt.Errorf("invalid target languages: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		provider: provider,
		logger:   config.Logger,
		timeout:  config.RequestTimeout,
		ops:      make(chan func(), 64),
		quit:     make(chan struct{}),
		loopDone: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,

		rawInput:           reactive.NewCell(reactive.None[string]()),
		rawOutput:          reactive.NewCell(reactive.None[string]()),
		sourceIndex:        reactive.NewCell(0),
		targetIndex:        reactive.NewCell(0),
		sourceQueue:        reactive.NewCell(sourceQueue),
		targetQueue:        reactive.NewCell(targetQueue),
		searchQuery:        reactive.NewCell(reactive.None[string]()),
		sourcePickerActive: reactive.NewCell(false),
		targetPickerActive: reactive.NewCell(false),
		inputWords:         reactive.NewCell([]string{}),
		popoverPinned:      reactive.NewCell(false),
		preferences:        reactive.NewCell(language.Preferences{}),
		inputText:          reactive.NewCell(""),
		outputText:         reactive.NewCell(""),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.debouncer = reactive.NewDebouncer(config.Debounce, o.post)

	o.setupDerived()
	o.setupTranslation()
	o.setupPickersActivity()
	o.flush()

	go o.run()
	o.fetchPreferences()

	return o, nil
}

// Close stops the event loop, cancels in-flight requests and disposes every
// subscription. Later calls are no-ops.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.cancel()
		o.debouncer.Stop()
		close(o.quit)
		<-o.loopDone
		o.bag.Dispose()
		o.wg.Wait()
	})
}

func (o *Orchestrator) run() {
	defer close(o.loopDone)
	for {
		select {
		case fn := <-o.ops:
			fn()
			o.flush()
		case <-o.quit:
			return
		}
	}
}

// post queues fn on the loop without waiting
func (o *Orchestrator) post(fn func()) {
	select {
	case o.ops <- fn:
	case <-o.quit:
	}
}

// do runs fn on the loop and waits for it. It reports false when the
// orchestrator is closed.
func (o *Orchestrator) do(fn func()) bool {
	done := make(chan struct{})
	select {
	case o.ops <- func() {
		defer close(done)
		fn()
	}:
	case <-o.quit:
		return false
	}

	select {
	case <-done:
		return true
	case <-o.quit:
		return false
	}
}

func (o *Orchestrator) setupDerived() {
	o.isSuggestHidden = reactive.Map(&o.bag, o.inputWords.ReadOnly(), func(words []string) bool {
		if len(words) != 1 {
			return true
		}
		return utf8.RuneCountInString(words[0]) == 0
	})

	o.isLanguagePickerNeeded = reactive.Combine2Distinct(&o.bag,
		o.targetPickerActive.ReadOnly(), o.sourcePickerActive.ReadOnly(),
		func(target, source bool) bool { return target || source },
	)

	o.text = reactive.Merge(&o.bag, o.rawInput.ReadOnly(), o.rawOutput.ReadOnly())

	o.limitationText = reactive.Map(&o.bag, o.rawInput.ReadOnly(), func(in reactive.Optional[string]) string {
		return fmt.Sprintf("%d/%d", utf8.RuneCountInString(in.OrElse("")), MaxCharactersCount)
	})

	o.clearButtonHidden = reactive.Map(&o.bag, o.rawInput.ReadOnly(), func(in reactive.Optional[string]) bool {
		return in.OrElse("") == ""
	})

	o.sourceLanguage = reactive.Combine2Distinct(&o.bag, o.sourceQueue.ReadOnly(), o.sourceIndex.ReadOnly(), selectedLanguage)
	o.targetLanguage = reactive.Combine2Distinct(&o.bag, o.targetQueue.ReadOnly(), o.targetIndex.ReadOnly(), selectedLanguage)

	o.allLanguages = reactive.Combine3(&o.bag,
		o.preferences.ReadOnly(), o.searchQuery.ReadOnly(), o.isLanguagePickerNeeded,
		func(prefs language.Preferences, query reactive.Optional[string], pickerNeeded bool) []language.Language {
			if !pickerNeeded || query.OrElse("") == "" {
				return append([]language.Language(nil), prefs.Languages...)
			}
			return prefs.Filter(query.Value)
		},
	)
}

// selectedLanguage resolves the language in slot index, or the zero
// language when the index is out of range
func selectedLanguage(q languageQueue, index int) language.Language {
	l, err := q.Get(index)
	if err != nil {
		return language.Language{}
	}
	return l
}

func (o *Orchestrator) setupTranslation() {
	o.bag.Add(o.rawInput.Subscribe(o.onRawInput))

	o.bag.Add(o.outputText.Subscribe(func(out string) {
		o.rawOutput.Set(reactive.Some(out))
	}))

	pending := func() { o.flushPending = true }
	o.bag.Add(
		o.inputText.Subscribe(func(string) { pending() }),
		o.sourceLanguage.Subscribe(func(language.Language) { pending() }),
		o.targetLanguage.Subscribe(func(language.Language) { pending() }),
	)
}

// onRawInput clears everything at once when the input is emptied and
// otherwise debounces the new text into inputText
func (o *Orchestrator) onRawInput(in reactive.Optional[string]) {
	if in.OrElse("") == "" {
		o.debouncer.Cancel()
		o.generation++
		o.hasIssued = false
		o.inputText.Set("")
		o.outputText.Set("")
	}

	if o.hasLastRaw && in == o.lastRaw {
		return
	}
	o.lastRaw, o.hasLastRaw = in, true

	if text := in.OrElse(""); text != "" {
		o.debouncer.Trigger(func() { o.inputText.Set(text) })
	}
}

// flush issues at most one translate request per loop turn, for the
// latest (text, source, target) triple
func (o *Orchestrator) flush() {
	if !o.flushPending {
		return
	}
	o.flushPending = false

	req := request{
		text:   o.inputText.Value(),
		source: o.sourceLanguage.Value(),
		target: o.targetLanguage.Value(),
	}
	if req.text == "" || req.source.IsZero() || req.target.IsZero() {
		return
	}
	if o.hasIssued && req == o.lastIssued {
		return
	}
	o.lastIssued, o.hasIssued = req, true
	o.generation++
	gen := o.generation

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ctx, cancel := context.WithTimeout(o.ctx, o.timeout)
		defer cancel()

		result, err := o.provider.Translate(ctx, req.text, req.source, req.target)
		o.post(func() { o.completeTranslation(gen, req, result, err) })
	}()
}

// completeTranslation applies a finished request. Only the most recently
// issued request may write the output.
func (o *Orchestrator) completeTranslation(gen uint64, req request, result translation.Translation, err error) {
	if gen != o.generation {
		return
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			o.logger.Printf("Warning: translation %s->%s failed: %v", req.source.ShortName, req.target.ShortName, err)
		}
		o.hasIssued = false
		return
	}

	o.outputText.Set(result.Text)

	if o.recorder != nil {
		entry := history.Entry{
			Text:        req.text,
			Translation: result.Text,
			Source:      req.source.ShortName,
			Target:      req.target.ShortName,
			CreatedAt:   time.Now(),
		}
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			if err := o.recorder.Record(o.ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
				o.logger.Printf("Warning: failed to record translation: %v", err)
			}
		}()
	}
}

// setupPickersActivity keeps at most one language picker active
func (o *Orchestrator) setupPickersActivity() {
	o.bag.Add(o.sourcePickerActive.Subscribe(func(active bool) {
		if active && o.targetPickerActive.Value() {
			o.targetPickerActive.Set(false)
		}
	}))
	o.bag.Add(o.targetPickerActive.Subscribe(func(active bool) {
		if active && o.sourcePickerActive.Value() {
			o.sourcePickerActive.Set(false)
		}
	}))
}

// fetchPreferences loads the language catalog once. Failures are logged
// and leave the catalog empty.
func (o *Orchestrator) fetchPreferences() {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ctx, cancel := context.WithTimeout(o.ctx, o.timeout)
		defer cancel()

		prefs, err := o.provider.FetchPreferences(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				o.logger.Printf("Warning: failed to fetch translation preferences: %v", err)
			}
			return
		}
		o.post(func() { o.preferences.Set(prefs) })
	}()
}
