package gui

import (
	"strings"

	"fyne.io/fyne/v2"
)

// clipboardReader exposes the system clipboard to the orchestrator. Fyne
// only allows clipboard access from the UI goroutine, so CurrentText must
// be called from a fyne callback.
type clipboardReader struct {
	clipboard fyne.Clipboard
}

// CurrentText returns the clipboard text. It reports false when the
// clipboard holds nothing but whitespace.
func (c clipboardReader) CurrentText() (string, bool) {
	if c.clipboard == nil {
		return "", false
	}
	text := c.clipboard.Content()
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
