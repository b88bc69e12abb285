package gui

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/translatebar/internal"
	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/orchestrator"
	"codeberg.org/snonux/translatebar/internal/reactive"
	"codeberg.org/snonux/translatebar/internal/recency"
	"codeberg.org/snonux/translatebar/internal/translation"
)

type languageQueue = recency.Queue[language.Language]

const (
	appID             = "org.codeberg.snonux.translatebar"
	dictionaryURLBase = "https://en.wiktionary.org/wiki/"
)

// Application represents the translation window
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sourceBar       *LanguageBar
	targetBar       *LanguageBar
	picker          *LanguagePicker
	inputEntry      *EscapeEntry
	outputEntry     *EscapeEntry
	editors         *container.Split
	limitationLabel *widget.Label
	statusLabel     *widget.Label
	logViewer       *LogViewer

	swapButton    *ttwidget.Button
	clearButton   *ttwidget.Button
	copyButton    *ttwidget.Button
	pinButton     *ttwidget.Button
	suggestButton *ttwidget.Button
	helpButton    *ttwidget.Button

	orch *orchestrator.Orchestrator
	bag  reactive.Bag

	// hasTray is set when the window can be reopened from the system tray,
	// which is what allows hiding it instead of quitting.
	hasTray bool

	config       *Config
	shutdownOnce sync.Once
}

// Config holds GUI application configuration
type Config struct {
	Provider     translation.Provider
	Orchestrator orchestrator.Config
	// Settings decides whether the clipboard is translated when the
	// window comes to the foreground
	Settings orchestrator.PreferenceStore
	// Recorder receives every completed translation, it may be nil
	Recorder orchestrator.Recorder
}

// New creates the application window and its orchestrator
func New(config *Config) (*Application, error) {
	myApp := app.NewWithID(appID)
	myApp.SetIcon(GetAppIcon())
	return newApplication(myApp, config)
}

func newApplication(fyneApp fyne.App, config *Config) (*Application, error) {
	if config == nil || config.Provider == nil {
		return nil, fmt.Errorf("gui: a translation provider is required")
	}

	a := &Application{
		app:       fyneApp,
		config:    config,
		logViewer: NewLogViewer(),
	}

	orchConfig := config.Orchestrator
	if orchConfig.Logger == nil {
		orchConfig.Logger = log.New(io.MultiWriter(os.Stderr, a.logViewer), "", 0)
	}

	opts := []orchestrator.Option{
		orchestrator.WithClipboard(clipboardReader{clipboard: fyneApp.Clipboard()}),
	}
	if config.Settings != nil {
		opts = append(opts, orchestrator.WithPreferenceStore(config.Settings))
	}
	if config.Recorder != nil {
		opts = append(opts, orchestrator.WithRecorder(config.Recorder))
	}

	orch, err := orchestrator.New(config.Provider, orchConfig, opts...)
	if err != nil {
		return nil, err
	}
	a.orch = orch

	a.setupUI(len(orchConfig.SourceSeed), len(orchConfig.TargetSeed))
	a.bindOrchestrator()
	a.setupLifecycle()

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI(sourceSlots, targetSlots int) {
	a.window = a.app.NewWindow(fmt.Sprintf("translatebar v%s", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(720, 420))

	a.sourceBar = NewLanguageBar(sourceSlots, a.onSelectSource, a.onToggleSourcePicker)
	a.targetBar = NewLanguageBar(targetSlots, a.onSelectTarget, a.onToggleTargetPicker)

	a.picker = NewLanguagePicker(a.orch.Pick, a.orch.SetSearchQuery, a.onClosePickers)
	a.picker.Hide()

	a.inputEntry = NewMultiLineEscapeEntry()
	a.inputEntry.SetPlaceHolder("Type or paste text to translate...")
	a.inputEntry.OnChanged = a.onInputChanged
	a.inputEntry.SetOnEscape(a.onEscape)

	a.outputEntry = NewMultiLineEscapeEntry()
	a.outputEntry.SetPlaceHolder("Translation")
	a.outputEntry.SetOnEscape(a.onEscape)

	a.editors = container.NewHSplit(a.inputEntry, a.outputEntry)
	a.editors.SetOffset(0.5)

	a.swapButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.orch.Swap)
	a.pinButton = ttwidget.NewButtonWithIcon("", theme.VisibilityOffIcon(), a.onTogglePin)
	a.clearButton = ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.onClear)
	a.copyButton = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopyTranslation)
	a.suggestButton = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onLookUpWord)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	toolbar := container.NewHBox(
		a.sourceBar,
		layout.NewSpacer(),
		a.swapButton,
		layout.NewSpacer(),
		a.targetBar,
		widget.NewSeparator(),
		a.pinButton,
		a.helpButton,
	)

	a.limitationLabel = widget.NewLabel("")
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	statusBar := container.NewHBox(
		a.limitationLabel,
		a.statusLabel,
		layout.NewSpacer(),
		a.suggestButton,
		a.clearButton,
		a.copyButton,
	)

	logSection := widget.NewAccordion(widget.NewAccordionItem("Log", a.logViewer))

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		container.NewVBox(statusBar, logSection),
		nil, nil,
		container.NewStack(a.editors, a.picker),
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(a.shutdown)
	a.setupKeyboardShortcuts()
}

func (a *Application) setupTooltips() {
	a.swapButton.SetToolTip("Swap languages and texts (s)")
	a.pinButton.SetToolTip("Keep window open (p)")
	a.clearButton.SetToolTip("Clear input (Esc)")
	a.copyButton.SetToolTip("Copy translation (c)")
	a.suggestButton.SetToolTip("Look up word in dictionary")
	a.helpButton.SetToolTip("Show hotkeys (h)")
}

// bindOrchestrator pushes every orchestrator value into its widget
func (a *Application) bindOrchestrator() {
	o := a.orch

	bind(a, o.SourceLanguagesQueue(), func(q languageQueue) { a.sourceBar.SetLanguages(q.Items()) })
	bind(a, o.TargetLanguagesQueue(), func(q languageQueue) { a.targetBar.SetLanguages(q.Items()) })
	bind(a, o.SourceLanguageIndex(), a.sourceBar.SetSelected)
	bind(a, o.TargetLanguageIndex(), a.targetBar.SetSelected)
	bind(a, o.IsSourceLanguagePickerActive(), a.sourceBar.SetPickerOpen)
	bind(a, o.IsTargetLanguagePickerActive(), a.targetBar.SetPickerOpen)
	bind(a, o.IsLanguagePickerNeeded(), a.showPicker)
	bind(a, o.AllLanguages(), a.picker.SetLanguages)

	// Typing emits too. Reading the latest value keeps a queued older
	// emission from rolling the entry back.
	bind(a, o.RawInput(), func(reactive.Optional[string]) {
		a.inputEntry.setTextQuietly(o.RawInput().Value().OrElse(""))
	})
	bind(a, o.RawOutput(), func(reactive.Optional[string]) {
		a.outputEntry.setTextQuietly(o.RawOutput().Value().OrElse(""))
	})
	bind(a, o.LimitationText(), a.limitationLabel.SetText)
	bind(a, o.ClearButtonHidden(), func(hidden bool) { setVisible(a.clearButton, !hidden) })
	bind(a, o.IsSuggestHidden(), func(hidden bool) { setVisible(a.suggestButton, !hidden) })
	bind(a, o.IsPopoverPinned(), a.showPinned)

	bind(a, o.SourceLanguage(), func(language.Language) { a.updateDirection() })
	bind(a, o.TargetLanguage(), func(language.Language) { a.updateDirection() })
}

// bind subscribes apply to obs. Emissions come from the orchestrator's
// loop and reach the widgets through fyne.Do. The value current at bind time
// is applied directly since setup runs on the UI goroutine.
func bind[T any](a *Application, obs reactive.Observable[T], apply func(T)) {
	var ready atomic.Bool
	a.bag.Add(obs.Subscribe(func(v T) {
		if !ready.Load() {
			return
		}
		fyne.Do(func() { apply(v) })
	}))
	ready.Store(true)
	apply(obs.Value())
}

func (a *Application) setupLifecycle() {
	if desk, ok := a.app.(desktop.App); ok {
		a.hasTray = true
		desk.SetSystemTrayIcon(GetAppIcon())
		desk.SetSystemTrayMenu(fyne.NewMenu("translatebar",
			fyne.NewMenuItem("Show", a.showWindow),
		))
		a.window.SetCloseIntercept(a.window.Hide)
	}

	lifecycle := a.app.Lifecycle()
	lifecycle.SetOnEnteredForeground(a.orch.TranslateFromClipboard)
	lifecycle.SetOnExitedForeground(func() {
		if a.hasTray && !a.orch.IsPopoverPinned().Value() {
			a.window.Hide()
		}
	})
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 's':
			a.orch.Swap()
		case 'p':
			a.onTogglePin()
		case 'c':
			a.onCopyTranslation()
		case 'i':
			a.window.Canvas().Focus(a.inputEntry)
		case 'h':
			a.onShowHotkeys()
		}
	})
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.onEscape()
		}
	})
}

// Run shows the window and blocks until the application quits
func (a *Application) Run() {
	a.window.ShowAndRun()
	a.shutdown()
}

func (a *Application) shutdown() {
	a.shutdownOnce.Do(func() {
		a.bag.Dispose()
		a.orch.Close()
	})
}

func (a *Application) showWindow() {
	a.window.Show()
	a.window.RequestFocus()
	a.orch.TranslateFromClipboard()
}

func (a *Application) onInputChanged(text string) {
	a.orch.SetRawInput(text)
	a.orch.SetInputWords(strings.Fields(text))
}

func (a *Application) onClear() {
	a.orch.ClearRawInput()
	a.orch.SetInputWords(nil)
	a.window.Canvas().Focus(a.inputEntry)
}

// onEscape closes an open picker first, then clears the input, then hides
// the window
func (a *Application) onEscape() {
	switch {
	case a.orch.IsLanguagePickerNeeded().Value():
		a.onClosePickers()
	case a.inputEntry.Text != "":
		a.onClear()
	case a.hasTray && !a.orch.IsPopoverPinned().Value():
		a.window.Hide()
	}
}

func (a *Application) onSelectSource(index int) {
	if err := a.orch.SetSourceLanguageIndex(index); err != nil {
		a.logViewer.AddMessage(fmt.Sprintf("select source language: %v", err))
	}
}

func (a *Application) onSelectTarget(index int) {
	if err := a.orch.SetTargetLanguageIndex(index); err != nil {
		a.logViewer.AddMessage(fmt.Sprintf("select target language: %v", err))
	}
}

func (a *Application) onToggleSourcePicker() {
	a.orch.SetSourcePickerActive(!a.orch.IsSourceLanguagePickerActive().Value())
}

func (a *Application) onToggleTargetPicker() {
	a.orch.SetTargetPickerActive(!a.orch.IsTargetLanguagePickerActive().Value())
}

func (a *Application) onClosePickers() {
	a.orch.SetSourcePickerActive(false)
	a.orch.SetTargetPickerActive(false)
}

func (a *Application) onTogglePin() {
	a.orch.SetPopoverPinned(!a.orch.IsPopoverPinned().Value())
}

func (a *Application) onCopyTranslation() {
	text := a.orch.RawOutput().Value().OrElse("")
	if text == "" {
		return
	}
	a.app.Clipboard().SetContent(text)
	a.statusLabel.SetText("Copied")
}

// onLookUpWord opens the dictionary page of the single input word
func (a *Application) onLookUpWord() {
	word := strings.TrimSpace(a.inputEntry.Text)
	if word == "" {
		return
	}
	u, err := url.Parse(dictionaryURLBase + url.PathEscape(word))
	if err != nil {
		a.logViewer.AddMessage(fmt.Sprintf("dictionary link: %v", err))
		return
	}
	if err := a.app.OpenURL(u); err != nil {
		a.logViewer.AddMessage(fmt.Sprintf("open dictionary: %v", err))
	}
}

func (a *Application) onShowHotkeys() {
	hotkeys := strings.Join([]string{
		"s    Swap languages and texts",
		"p    Keep window open",
		"c    Copy translation",
		"i    Focus input",
		"h    Show this help",
		"Esc  Close picker, clear input or hide window",
	}, "\n")
	dialog.ShowInformation("Hotkeys", hotkeys, a.window)
}

func (a *Application) showPicker(needed bool) {
	if needed {
		a.editors.Hide()
		a.picker.Show()
		a.picker.FocusSearch(a.window.Canvas())
		return
	}
	a.picker.Hide()
	a.picker.Reset()
	a.editors.Show()
}

func (a *Application) showPinned(pinned bool) {
	if pinned {
		a.pinButton.SetIcon(theme.VisibilityIcon())
		a.pinButton.Importance = widget.HighImportance
	} else {
		a.pinButton.SetIcon(theme.VisibilityOffIcon())
		a.pinButton.Importance = widget.MediumImportance
	}
	a.pinButton.Refresh()
}

func (a *Application) updateDirection() {
	source := a.orch.SourceLanguage().Value()
	target := a.orch.TargetLanguage().Value()
	if source.IsZero() || target.IsZero() {
		a.statusLabel.SetText("")
		return
	}
	a.statusLabel.SetText(fmt.Sprintf("%s → %s", source, target))
}

func setVisible(obj fyne.CanvasObject, visible bool) {
	if visible {
		obj.Show()
	} else {
		obj.Hide()
	}
}
