package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// EscapeEntry is a text entry that reports the Escape key instead of
// swallowing it
type EscapeEntry struct {
	widget.Entry
	onEscape func()
}

// NewEscapeEntry creates a single-line entry
func NewEscapeEntry() *EscapeEntry {
	entry := &EscapeEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewMultiLineEscapeEntry creates a word-wrapping multi-line entry
func NewMultiLineEscapeEntry() *EscapeEntry {
	entry := &EscapeEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *EscapeEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *EscapeEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// setTextQuietly replaces the text without reporting it through OnChanged.
// Used when the text comes from the orchestrator rather than from typing.
func (e *EscapeEntry) setTextQuietly(text string) {
	if e.Text == text {
		return
	}
	onChanged := e.OnChanged
	e.OnChanged = nil
	e.SetText(text)
	e.OnChanged = onChanged
}
