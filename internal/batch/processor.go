package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one line of a batch file
type Entry struct {
	Line        int
	Text        string
	Translation string
}

// NeedsTranslation reports whether the entry still has to be translated
func (e Entry) NeedsTranslation() bool {
	return e.Translation == ""
}

// ReadBatchFile reads entries from a file.
// Supports formats:
// - Text only: "good morning" (will be translated)
// - With translation: "good morning = доброе утро" (only recorded)
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads entries from r
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		text, translation, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, Entry{Line: lineNo, Text: line})
			continue
		}

		text = strings.TrimSpace(text)
		translation = strings.TrimSpace(translation)
		if text == "" {
			// Nothing to translate from
			continue
		}
		entries = append(entries, Entry{Line: lineNo, Text: text, Translation: translation})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}
