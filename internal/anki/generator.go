package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/translatebar/internal/history"
)

// Card represents a single Anki flashcard
type Card struct {
	Front string // The translated text
	Back  string // Its translation
	Tags  []string
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
	seen    map[string]bool
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		seen:    make(map[string]bool),
	}
}

// AddCard adds a card unless a card with the same front and back exists
func (g *Generator) AddCard(card Card) bool {
	key := card.Front + "\x00" + card.Back
	if g.seen[key] {
		return false
	}
	g.seen[key] = true
	g.cards = append(g.cards, card)
	return true
}

// AddHistory turns translation history entries into cards, tagged with
// their direction. Multi-line texts are skipped since they make poor
// flashcards.
func (g *Generator) AddHistory(entries []history.Entry) (added int) {
	for _, e := range entries {
		front := strings.TrimSpace(e.Text)
		back := strings.TrimSpace(e.Translation)
		if front == "" || back == "" || strings.Contains(front, "\n") {
			continue
		}
		card := Card{
			Front: front,
			Back:  back,
			Tags:  []string{"translatebar", fmt.Sprintf("%s-%s", e.Source, e.Target)},
		}
		if g.AddCard(card) {
			added++
		}
	}
	return added
}

// GetCards returns the collected cards
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates the CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := g.WriteCSV(file); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes the cards as CSV to w
func (g *Generator) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Front", "Back", "Tags"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{card.Front, card.Back, strings.Join(card.Tags, " ")}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards int, directions map[string]int) {
	directions = make(map[string]int)
	for _, card := range g.cards {
		for _, tag := range card.Tags {
			if strings.Contains(tag, "-") {
				directions[tag]++
			}
		}
	}
	return len(g.cards), directions
}
