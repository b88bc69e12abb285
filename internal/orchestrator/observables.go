package orchestrator

import (
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/reactive"
)

// RawInput is the text as the user typed it; None before anything is entered
func (o *Orchestrator) RawInput() reactive.Observable[reactive.Optional[string]] {
	return o.rawInput.ReadOnly()
}

// RawOutput is the translation shown to the user
func (o *Orchestrator) RawOutput() reactive.Observable[reactive.Optional[string]] {
	return o.rawOutput.ReadOnly()
}

func (o *Orchestrator) SourceLanguageIndex() reactive.Observable[int] {
	return o.sourceIndex.ReadOnly()
}

func (o *Orchestrator) TargetLanguageIndex() reactive.Observable[int] {
	return o.targetIndex.ReadOnly()
}

// SourceLanguagesQueue holds the pinned source languages
func (o *Orchestrator) SourceLanguagesQueue() reactive.Observable[languageQueue] {
	return o.sourceQueue.ReadOnly()
}

// TargetLanguagesQueue holds the pinned target languages
func (o *Orchestrator) TargetLanguagesQueue() reactive.Observable[languageQueue] {
	return o.targetQueue.ReadOnly()
}

func (o *Orchestrator) SearchQuery() reactive.Observable[reactive.Optional[string]] {
	return o.searchQuery.ReadOnly()
}

func (o *Orchestrator) IsSourceLanguagePickerActive() reactive.Observable[bool] {
	return o.sourcePickerActive.ReadOnly()
}

func (o *Orchestrator) IsTargetLanguagePickerActive() reactive.Observable[bool] {
	return o.targetPickerActive.ReadOnly()
}

func (o *Orchestrator) IsPopoverPinned() reactive.Observable[bool] {
	return o.popoverPinned.ReadOnly()
}

// Preferences is the language catalog; empty until the provider answers
func (o *Orchestrator) Preferences() reactive.Observable[language.Preferences] {
	return o.preferences.ReadOnly()
}

// IsSuggestHidden is false only when the input is a single non-empty word
func (o *Orchestrator) IsSuggestHidden() reactive.Observable[bool] {
	return o.isSuggestHidden
}

// IsLanguagePickerNeeded reports whether either picker is open
func (o *Orchestrator) IsLanguagePickerNeeded() reactive.Observable[bool] {
	return o.isLanguagePickerNeeded
}

// Text carries whichever of input or output changed last
func (o *Orchestrator) Text() reactive.Observable[reactive.Optional[string]] {
	return o.text
}

// LimitationText renders the input length against MaxCharactersCount
func (o *Orchestrator) LimitationText() reactive.Observable[string] {
	return o.limitationText
}

func (o *Orchestrator) ClearButtonHidden() reactive.Observable[bool] {
	return o.clearButtonHidden
}

// SourceLanguage is the selected source language, zero when unresolved
func (o *Orchestrator) SourceLanguage() reactive.Observable[language.Language] {
	return o.sourceLanguage
}

// TargetLanguage is the selected target language, zero when unresolved
func (o *Orchestrator) TargetLanguage() reactive.Observable[language.Language] {
	return o.targetLanguage
}

// AllLanguages lists the languages offered by the open picker, filtered by
// the search query
func (o *Orchestrator) AllLanguages() reactive.Observable[[]language.Language] {
	return o.allLanguages
}
