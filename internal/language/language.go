package language

import "strings"

// Language identifies one end of a translation direction
type Language struct {
	ShortName string
	FullName  string
}

// IsZero reports whether l is the unresolved language
func (l Language) IsZero() bool {
	return l == Language{}
}

// String returns the display name, falling back to the code
func (l Language) String() string {
	if l.FullName != "" {
		return l.FullName
	}
	return l.ShortName
}

// MatchesQuery reports whether the full name contains query, ignoring case
func (l Language) MatchesQuery(query string) bool {
	return strings.Contains(strings.ToLower(l.FullName), strings.ToLower(query))
}
