package gui

import (
	"io"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/translatebar/internal/language"
	"codeberg.org/snonux/translatebar/internal/orchestrator"
	"codeberg.org/snonux/translatebar/internal/reactive"
	"codeberg.org/snonux/translatebar/internal/testutil"
)

const waitTimeout = 2 * time.Second

func newTestApplication(t *testing.T, provider *testutil.MockProvider, settings orchestrator.PreferenceStore) *Application {
	t.Helper()

	a, err := newApplication(test.NewTempApp(t), &Config{
		Provider: provider,
		Orchestrator: orchestrator.Config{
			SourceSeed: []language.Language{testutil.English, testutil.Russian, testutil.German},
			TargetSeed: []language.Language{testutil.Russian, testutil.English, testutil.German},
			Debounce:   20 * time.Millisecond,
			Logger:     log.New(io.Discard, "", 0),
		},
		Settings: settings,
	})
	if err != nil {
		t.Fatalf("newApplication failed: %v", err)
	}
	t.Cleanup(a.shutdown)
	return a
}

func TestNewApplication_RequiresProvider(t *testing.T) {
	if _, err := newApplication(test.NewTempApp(t), &Config{}); err == nil {
		t.Error("Expected error without provider")
	}
	if _, err := newApplication(test.NewTempApp(t), nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestApplication_TypingTranslates(t *testing.T) {
	provider := testutil.NewMockProvider()
	a := newTestApplication(t, provider, nil)

	test.Type(a.inputEntry, "hello")

	testutil.WaitFor(t, waitTimeout, "translation", func() bool {
		return a.orch.RawOutput().Value() == reactive.Some("hello [en->ru]")
	})
	if got := a.orch.RawInput().Value(); got != reactive.Some("hello") {
		t.Errorf("RawInput = %+v, want hello", got)
	}
	if calls := provider.Calls(); len(calls) != 1 {
		t.Errorf("Expected one debounced request, got %v", calls)
	}
}

func TestApplication_LanguageBarSelects(t *testing.T) {
	a := newTestApplication(t, testutil.NewMockProvider(), nil)

	test.Tap(a.targetBar.buttons[2])

	testutil.WaitFor(t, waitTimeout, "target index", func() bool {
		return a.orch.TargetLanguageIndex().Value() == 2
	})
	if got := a.orch.TargetLanguage().Value(); got != testutil.German {
		t.Errorf("TargetLanguage = %v, want German", got)
	}
}

func TestApplication_PickerToggle(t *testing.T) {
	a := newTestApplication(t, testutil.NewMockProvider(), nil)

	a.onToggleSourcePicker()
	if !a.orch.IsLanguagePickerNeeded().Value() {
		t.Fatal("Expected picker to be needed after toggle")
	}

	a.onToggleTargetPicker()
	if a.orch.IsSourceLanguagePickerActive().Value() {
		t.Error("Opening the target picker must close the source picker")
	}

	a.onEscape()
	if a.orch.IsLanguagePickerNeeded().Value() {
		t.Error("Escape should close the picker")
	}
}

func TestApplication_ClipboardOnForeground(t *testing.T) {
	settings := &testutil.MockPreferenceStore{AutoTranslate: true}
	a := newTestApplication(t, testutil.NewMockProvider(), settings)

	a.app.Clipboard().SetContent("cat")
	a.orch.TranslateFromClipboard()

	if got := a.orch.RawInput().Value(); got != reactive.Some("cat") {
		t.Errorf("RawInput = %+v, want cat", got)
	}
}

func TestClipboardReader(t *testing.T) {
	app := test.NewTempApp(t)
	reader := clipboardReader{clipboard: app.Clipboard()}

	tests := []struct {
		content string
		want    string
		wantOK  bool
	}{
		{"hello", "hello", true},
		{"  \n", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		app.Clipboard().SetContent(tt.content)
		got, ok := reader.CurrentText()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CurrentText() with %q = (%q, %v), want (%q, %v)", tt.content, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, ok := (clipboardReader{}).CurrentText(); ok {
		t.Error("Expected no text without a clipboard")
	}
}

func TestLanguageBar(t *testing.T) {
	test.NewTempApp(t)

	var selected []int
	pickerOpened := 0
	bar := NewLanguageBar(3, func(i int) { selected = append(selected, i) }, func() { pickerOpened++ })

	bar.SetLanguages([]language.Language{testutil.English, testutil.Russian})
	bar.SetSelected(1)

	if bar.buttons[0].Text != "EN" || bar.buttons[1].Text != "RU" {
		t.Errorf("Unexpected button labels %q %q", bar.buttons[0].Text, bar.buttons[1].Text)
	}
	if bar.buttons[2].Visible() {
		t.Error("Unused slot should be hidden")
	}

	test.Tap(bar.buttons[0])
	test.Tap(bar.pickerButton)

	if !reflect.DeepEqual(selected, []int{0}) {
		t.Errorf("selected = %v, want [0]", selected)
	}
	if pickerOpened != 1 {
		t.Errorf("picker opened %d times, want 1", pickerOpened)
	}
}

func TestLogViewer(t *testing.T) {
	test.NewTempApp(t)

	v := NewLogViewer()
	v.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	v.maxMessages = 2

	io.WriteString(v, "first\n\nsecond\n")
	v.AddMessage("third")

	got := v.Messages()
	want := []string{"[03:04:05] third", "[03:04:05] second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Messages() = %v, want %v", got, want)
	}

	v.Clear()
	if len(v.Messages()) != 0 {
		t.Error("Expected no messages after Clear")
	}
}

func TestEscapeEntry(t *testing.T) {
	test.NewTempApp(t)

	escaped := 0
	entry := NewEscapeEntry()
	entry.SetOnEscape(func() { escaped++ })

	changed := 0
	entry.OnChanged = func(string) { changed++ }
	entry.setTextQuietly("quiet")
	if entry.Text != "quiet" || changed != 0 {
		t.Errorf("setTextQuietly: text %q, OnChanged called %d times", entry.Text, changed)
	}

	test.Type(entry, "x")
	if changed == 0 {
		t.Error("Typing should still report changes")
	}
	if !strings.Contains(entry.Text, "x") {
		t.Errorf("Typed text missing from %q", entry.Text)
	}

	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if escaped != 1 {
		t.Errorf("onEscape called %d times, want 1", escaped)
	}
}
