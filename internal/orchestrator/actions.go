package orchestrator

import (
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/reactive"
)

// SetRawInput replaces the user's text
func (o *Orchestrator) SetRawInput(text string) {
	o.do(func() { o.rawInput.Set(reactive.Some(text)) })
}

// ClearRawInput resets the input to "nothing entered"
func (o *Orchestrator) ClearRawInput() {
	o.do(func() { o.rawInput.Set(reactive.None[string]()) })
}

// SetSearchQuery sets the language picker filter
func (o *Orchestrator) SetSearchQuery(query string) {
	o.do(func() { o.searchQuery.Set(reactive.Some(query)) })
}

// ClearSearchQuery removes the language picker filter
func (o *Orchestrator) ClearSearchQuery() {
	o.do(func() { o.searchQuery.Set(reactive.None[string]()) })
}

// SetSourcePickerActive opens or closes the source language picker
func (o *Orchestrator) SetSourcePickerActive(active bool) {
	o.do(func() { o.sourcePickerActive.Set(active) })
}

// SetTargetPickerActive opens or closes the target language picker
func (o *Orchestrator) SetTargetPickerActive(active bool) {
	o.do(func() { o.targetPickerActive.Set(active) })
}

// SetSourceLanguageIndex selects a pinned source language
func (o *Orchestrator) SetSourceLanguageIndex(index int) error {
	return o.setIndex(o.sourceQueue, o.sourceIndex, index)
}

// SetTargetLanguageIndex selects a pinned target language
func (o *Orchestrator) SetTargetLanguageIndex(index int) error {
	return o.setIndex(o.targetQueue, o.targetIndex, index)
}

func (o *Orchestrator) setIndex(queue *reactive.Cell[languageQueue], cell *reactive.Cell[int], index int) error {
	var err error
	ran := o.do(func() {
		if _, err = queue.Value().Get(index); err != nil {
			return
		}
		cell.Set(index)
	})
	if !ran {
		return ErrClosed
	}
	return err
}

// SetInputWords reports the words of the current input, as split by the view
func (o *Orchestrator) SetInputWords(words []string) {
	words = append([]string(nil), words...)
	o.do(func() { o.inputWords.Set(words) })
}

// SetPopoverPinned keeps the window open when it loses focus
func (o *Orchestrator) SetPopoverPinned(pinned bool) {
	o.do(func() { o.popoverPinned.Set(pinned) })
}

// Pick commits lang on the side whose picker is active and closes that
// picker. With no active picker it does nothing.
func (o *Orchestrator) Pick(lang language.Language) {
	o.do(func() {
		switch {
		case o.sourcePickerActive.Value():
			o.pushLanguage(o.sourceQueue, o.sourceIndex, lang)
			o.sourcePickerActive.Set(false)
		case o.targetPickerActive.Value():
			o.pushLanguage(o.targetQueue, o.targetIndex, lang)
			o.targetPickerActive.Set(false)
		}
	})
}

func (o *Orchestrator) pushLanguage(queue *reactive.Cell[languageQueue], index *reactive.Cell[int], lang language.Language) {
	next, result := queue.Value().Push(lang)
	index.Set(result.Index)
	queue.Set(next)
}

// Swap exchanges the input and output texts and the selected languages
func (o *Orchestrator) Swap() {
	o.do(func() {
		in, out := o.rawInput.Value(), o.rawOutput.Value()
		o.rawInput.Set(out)
		o.rawOutput.Set(in)

		// The swapped-in text is final, so it skips the debounce
		if text := out.OrElse(""); text != "" {
			o.debouncer.Cancel()
			o.inputText.Set(text)
		}

		o.swapLanguages()
	})
}

func (o *Orchestrator) swapLanguages() {
	sourceQueue, targetQueue := o.sourceQueue.Value(), o.targetQueue.Value()
	sourceIndex, targetIndex := o.sourceIndex.Value(), o.targetIndex.Value()

	src, err := sourceQueue.Get(sourceIndex)
	if err != nil {
		o.logger.Printf("Warning: cannot swap, source index %d: %v", sourceIndex, err)
		return
	}
	tgt, err := targetQueue.Get(targetIndex)
	if err != nil {
		o.logger.Printf("Warning: cannot swap, target index %d: %v", targetIndex, err)
		return
	}

	if !targetQueue.Contains(src) && !sourceQueue.Contains(tgt) {
		// Disjoint selections trade places in their slots
		nextSource, _ := sourceQueue.With(sourceIndex, tgt)
		nextTarget, _ := targetQueue.With(targetIndex, src)
		o.sourceQueue.Set(nextSource)
		o.targetQueue.Set(nextTarget)
		return
	}

	o.reconcile(o.sourceQueue, o.sourceIndex, tgt)
	o.reconcile(o.targetQueue, o.targetIndex, src)
}

// reconcile selects lang on one side, reusing its slot when already pinned
func (o *Orchestrator) reconcile(queue *reactive.Cell[languageQueue], index *reactive.Cell[int], lang language.Language) {
	if i, ok := queue.Value().IndexOf(lang); ok {
		index.Set(i)
		return
	}
	next, result := queue.Value().Push(lang)
	queue.Set(next)
	index.Set(result.Index)
}

// TranslateFromClipboard copies the clipboard into the input when the user
// enabled clipboard translation
func (o *Orchestrator) TranslateFromClipboard() {
	if o.settings == nil || o.clipboard == nil || !o.settings.AutoTranslateClipboard() {
		return
	}

	text, ok := o.clipboard.CurrentText()
	next := reactive.None[string]()
	if ok {
		next = reactive.Some(text)
	}
	o.do(func() { o.rawInput.Set(next) })
}
