package translation

import (
	_ "embed"
	"fmt"
	"os"

	"codeberg.org/snonux/translatebar/internal/language"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog loads the language catalog advertised by LLM backends, which
// have no catalog endpoint of their own
type Catalog struct {
	path string
}

// NewCatalog creates a catalog reading path, or the embedded catalog when
// path is empty
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Load decodes the catalog
func (c *Catalog) Load() (language.Preferences, error) {
	data := defaultCatalog
	if c != nil && c.path != "" {
		content, err := os.ReadFile(c.path)
		if err != nil {
			return language.Preferences{}, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = content
	}
	return language.DecodePreferences(data)
}
