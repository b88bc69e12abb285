package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"codeberg.org/snonux/translatebar/internal/anki"
	"codeberg.org/snonux/translatebar/internal/archive"
	"codeberg.org/snonux/translatebar/internal/batch"
	"codeberg.org/snonux/translatebar/internal/cli"
	"codeberg.org/snonux/translatebar/internal/gui"
	"codeberg.org/snonux/translatebar/internal/history"
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/models"
	"codeberg.org/snonux/translatebar/internal/settings"
	"codeberg.org/snonux/translatebar/internal/translation"
)

// Processor runs one command line mode
type Processor struct {
	flags    *cli.Flags
	settings *settings.Settings
	provider translation.Provider
	out      io.Writer
}

// NewProcessor creates a processor using the configured provider
func NewProcessor(flags *cli.Flags, s *settings.Settings) (*Processor, error) {
	provider, err := translation.NewProvider(s.TranslationConfig())
	if err != nil {
		return nil, err
	}
	return newProcessor(flags, s, provider, os.Stdout), nil
}

func newProcessor(flags *cli.Flags, s *settings.Settings, provider translation.Provider, out io.Writer) *Processor {
	return &Processor{
		flags:    flags,
		settings: s,
		provider: provider,
		out:      out,
	}
}

// ProcessText translates a single text from the command line
func (p *Processor) ProcessText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("nothing to translate")
	}

	source, target, err := p.direction(ctx)
	if err != nil {
		return err
	}

	store := p.openHistory()
	if store != nil {
		defer store.Close()
	}

	result, err := p.translate(ctx, text, source, target)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, result)
	p.record(ctx, store, text, result, source, target)

	return nil
}

// ProcessBatch translates every entry of the batch file
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	source, target, err := p.direction(ctx)
	if err != nil {
		return err
	}

	store := p.openHistory()
	if store != nil {
		defer store.Close()
	}

	// Track statistics
	translatedCount := 0
	providedCount := 0
	errorCount := 0

	for _, entry := range entries {
		result := entry.Translation
		if entry.NeedsTranslation() {
			result, err = p.translate(ctx, entry.Text, source, target)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error translating line %d '%s': %v\n", entry.Line, entry.Text, err)
				errorCount++
				continue
			}
			translatedCount++
		} else {
			providedCount++
		}

		fmt.Fprintf(p.out, "%s = %s\n", entry.Text, result)
		p.record(ctx, store, entry.Text, result, source, target)
	}

	// Print summary
	fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total entries: %d\n", len(entries))
	fmt.Fprintf(p.out, "Translated: %d\n", translatedCount)
	fmt.Fprintf(p.out, "Already translated: %d\n", providedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.out, "=====================\n")

	return nil
}

// ListLanguages prints the language catalog
func (p *Processor) ListLanguages(ctx context.Context) error {
	prefs, err := p.provider.FetchPreferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load language catalog: %w", err)
	}

	for _, l := range prefs.Languages {
		fmt.Fprintf(p.out, "%-8s %s\n", l.ShortName, l.FullName)
	}
	return nil
}

// ListModels prints the OpenAI chat models
func (p *Processor) ListModels(ctx context.Context) error {
	return models.NewLister(p.settings.OpenAIKey).ListAvailableModels(ctx, p.out)
}

// PrintHistory prints the last n translations, newest first
func (p *Processor) PrintHistory(ctx context.Context, n int) error {
	store, err := history.Open(p.settings.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No translations recorded yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(p.out, "%s  %s->%s  %s = %s\n",
			e.CreatedAt.Format(time.DateTime), e.Source, e.Target, e.Text, e.Translation)
	}
	return nil
}

// ClearHistory deletes every recorded translation
func (p *Processor) ClearHistory(ctx context.Context) error {
	store, err := history.Open(p.settings.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Translation history cleared")
	return nil
}

// ArchiveHistory moves the history database aside
func (p *Processor) ArchiveHistory(ctx context.Context) error {
	archivePath, err := archive.ArchiveHistory(p.settings.HistoryPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Translation history archived to: %s\n", archivePath)
	return nil
}

// ExportAnki writes the translation history as an Anki import file
func (p *Processor) ExportAnki(ctx context.Context) error {
	store, err := history.Open(p.settings.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.All(ctx)
	if err != nil {
		return err
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     p.flags.ExportAnki,
		IncludeHeaders: true,
	})
	added := gen.AddHistory(entries)
	if added == 0 {
		return fmt.Errorf("no translations suitable for flashcards in the history")
	}
	if err := gen.GenerateCSV(); err != nil {
		return err
	}

	_, directions := gen.Stats()
	fmt.Fprintf(p.out, "Exported %d cards to %s\n", added, p.flags.ExportAnki)
	for _, dir := range sortedKeys(directions) {
		fmt.Fprintf(p.out, "  %s: %d\n", dir, directions[dir])
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RunGUIMode launches the translation window
func (p *Processor) RunGUIMode(ctx context.Context) error {
	prefs, err := p.provider.FetchPreferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load language catalog: %w", err)
	}

	config, err := p.settings.OrchestratorConfig(prefs)
	if err != nil {
		return err
	}

	guiConfig := &gui.Config{
		Provider:     p.provider,
		Orchestrator: config,
		Settings:     p.settings,
	}

	store := p.openHistory()
	if store != nil {
		defer store.Close()
		guiConfig.Recorder = store
	}

	app, err := gui.New(guiConfig)
	if err != nil {
		return err
	}
	app.Run()

	return nil
}

// direction resolves the --from/--to flags, falling back to the first
// pinned languages
func (p *Processor) direction(ctx context.Context) (language.Language, language.Language, error) {
	prefs, err := p.provider.FetchPreferences(ctx)
	if err != nil {
		return language.Language{}, language.Language{}, fmt.Errorf("failed to load language catalog: %w", err)
	}

	from := firstCode(p.flags.From, p.settings.SourceLanguages)
	to := firstCode(p.flags.To, p.settings.TargetLanguages)

	source, ok := prefs.Lookup(from)
	if !ok {
		return language.Language{}, language.Language{}, fmt.Errorf("unknown source language %q (see --list-languages)", from)
	}
	target, ok := prefs.Lookup(to)
	if !ok {
		return language.Language{}, language.Language{}, fmt.Errorf("unknown target language %q (see --list-languages)", to)
	}

	if !prefs.Supports(source, target) {
		fmt.Fprintf(os.Stderr, "Warning: the catalog does not list %s->%s, trying anyway\n", source.ShortName, target.ShortName)
	}
	return source, target, nil
}

func firstCode(flag string, pinned []string) string {
	if flag != "" {
		return flag
	}
	if len(pinned) > 0 {
		return pinned[0]
	}
	return ""
}

func (p *Processor) translate(ctx context.Context, text string, source, target language.Language) (string, error) {
	timeout := p.settings.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := p.provider.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// openHistory opens the history store when recording is enabled. Failures
// are reported and translation goes on without history.
func (p *Processor) openHistory() *history.Store {
	if !p.settings.HistoryEnabled {
		return nil
	}
	store, err := history.Open(p.settings.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: translation history disabled: %v\n", err)
		return nil
	}
	return store
}

func (p *Processor) record(ctx context.Context, store *history.Store, text, result string, source, target language.Language) {
	if store == nil {
		return
	}
	err := store.Record(ctx, history.Entry{
		Text:        text,
		Translation: result,
		Source:      source.ShortName,
		Target:      target.ShortName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record translation: %v\n", err)
	}
}
