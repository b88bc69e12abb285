// Package orchestrator implements the translation view model.
//
// An Orchestrator owns observable cells for the raw input and output, the
// pinned source and target languages and the language picker state. Typing
// is debounced into a committed input; each change of the committed input or
// the selected languages issues a translate request, and only the most
// recently issued request may update the output. Emptying the input clears
// input and output at once and drops any request still in flight.
//
// All state changes happen on one event loop goroutine. Subscribers are
// invoked on that goroutine, so they must hand work off (for example with
// fyne.Do) instead of calling the blocking setters directly.
package orchestrator
