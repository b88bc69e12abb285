package language

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Preferences is the catalog of languages a provider can translate between
type Preferences struct {
	Languages  []Language
	Directions map[Language][]Language
}

// payload is the wire shape of a catalog: a code to name map plus a list
// of "from-to" direction pairs
type payload struct {
	Dirs  []string          `json:"dirs"`
	Langs map[string]string `json:"langs"`
}

// DecodePreferences parses a catalog payload.
//
// A missing or malformed language map is an error. Direction entries that
// are malformed or reference unknown codes are skipped with a warning.
func DecodePreferences(data []byte) (Preferences, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("failed to decode language catalog: %w", err)
	}
	if p.Langs == nil {
		return Preferences{}, fmt.Errorf("language catalog has no langs map")
	}

	prefs := Preferences{
		Languages:  make([]Language, 0, len(p.Langs)),
		Directions: make(map[Language][]Language),
	}
	for code, name := range p.Langs {
		prefs.Languages = append(prefs.Languages, Language{ShortName: code, FullName: name})
	}
	sort.Slice(prefs.Languages, func(i, j int) bool {
		if prefs.Languages[i].FullName != prefs.Languages[j].FullName {
			return prefs.Languages[i].FullName < prefs.Languages[j].FullName
		}
		return prefs.Languages[i].ShortName < prefs.Languages[j].ShortName
	})

	for _, dir := range p.Dirs {
		parts := strings.Split(dir, "-")
		from, to := parts[0], parts[len(parts)-1]
		if len(parts) < 2 || from == "" || to == "" {
			log.Printf("Warning: skipping malformed direction %q", dir)
			continue
		}
		src, ok := prefs.Lookup(from)
		if !ok {
			log.Printf("Warning: skipping direction %q: unknown language %q", dir, from)
			continue
		}
		dst, ok := prefs.Lookup(to)
		if !ok {
			log.Printf("Warning: skipping direction %q: unknown language %q", dir, to)
			continue
		}
		prefs.Directions[src] = append(prefs.Directions[src], dst)
	}

	return prefs, nil
}

// Encode renders the catalog back into its wire shape
func (p Preferences) Encode() ([]byte, error) {
	out := payload{Langs: make(map[string]string, len(p.Languages))}
	for _, l := range p.Languages {
		out.Langs[l.ShortName] = l.FullName
	}
	for _, src := range p.Languages {
		for _, dst := range p.Directions[src] {
			out.Dirs = append(out.Dirs, src.ShortName+"-"+dst.ShortName)
		}
	}
	return json.Marshal(out)
}

// Lookup finds a language by its short code
func (p Preferences) Lookup(code string) (Language, bool) {
	for _, l := range p.Languages {
		if l.ShortName == code {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve looks up code, falling back to a language carrying only the code
func (p Preferences) Resolve(code string) Language {
	if l, ok := p.Lookup(code); ok {
		return l
	}
	return Language{ShortName: code, FullName: code}
}

// Targets returns the languages src can be translated into
func (p Preferences) Targets(src Language) []Language {
	return append([]Language(nil), p.Directions[src]...)
}

// Supports reports whether the catalog lists the src to dst direction.
// A catalog without any directions supports every pair.
func (p Preferences) Supports(src, dst Language) bool {
	if len(p.Directions) == 0 {
		return true
	}
	for _, l := range p.Directions[src] {
		if l == dst {
			return true
		}
	}
	return false
}

// Filter returns the languages whose full name contains query
func (p Preferences) Filter(query string) []Language {
	var out []Language
	for _, l := range p.Languages {
		if l.MatchesQuery(query) {
			out = append(out, l)
		}
	}
	return out
}
