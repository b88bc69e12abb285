package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/translatebar/internal/language"
)

// LanguageBar shows the pinned languages of one side as buttons, with the
// selected one highlighted, followed by a button that opens the picker.
type LanguageBar struct {
	widget.BaseWidget

	container    *fyne.Container
	buttons      []*ttwidget.Button
	pickerButton *ttwidget.Button

	languages []language.Language
	selected  int

	onSelect func(index int)
	onPicker func()
}

// NewLanguageBar creates a bar with one button per pinned slot
func NewLanguageBar(slots int, onSelect func(index int), onPicker func()) *LanguageBar {
	b := &LanguageBar{
		onSelect: onSelect,
		onPicker: onPicker,
	}

	b.container = container.NewHBox()
	for i := 0; i < slots; i++ {
		index := i
		button := ttwidget.NewButton("", func() {
			if b.onSelect != nil {
				b.onSelect(index)
			}
		})
		b.buttons = append(b.buttons, button)
		b.container.Add(button)
	}

	b.pickerButton = ttwidget.NewButtonWithIcon("", theme.MenuDropDownIcon(), func() {
		if b.onPicker != nil {
			b.onPicker()
		}
	})
	b.pickerButton.SetToolTip("More languages")
	b.container.Add(b.pickerButton)

	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *LanguageBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.container)
}

// SetLanguages replaces the pinned languages shown on the buttons
func (b *LanguageBar) SetLanguages(languages []language.Language) {
	b.languages = append(b.languages[:0], languages...)
	b.refreshButtons()
}

// SetSelected highlights the button at index
func (b *LanguageBar) SetSelected(index int) {
	b.selected = index
	b.refreshButtons()
}

// SetPickerOpen highlights the picker button while the picker is shown
func (b *LanguageBar) SetPickerOpen(open bool) {
	if open {
		b.pickerButton.Importance = widget.HighImportance
	} else {
		b.pickerButton.Importance = widget.MediumImportance
	}
	b.pickerButton.Refresh()
}

func (b *LanguageBar) refreshButtons() {
	for i, button := range b.buttons {
		if i >= len(b.languages) {
			button.Hide()
			continue
		}
		lang := b.languages[i]
		button.SetText(strings.ToUpper(lang.ShortName))
		button.SetToolTip(lang.String())
		if i == b.selected {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Show()
		button.Refresh()
	}
}

// LanguagePicker is the searchable list of every language the service
// offers
type LanguagePicker struct {
	widget.BaseWidget

	container *fyne.Container
	search    *EscapeEntry
	list      *widget.List

	languages []language.Language

	onPick  func(lang language.Language)
	onQuery func(query string)
}

// NewLanguagePicker creates a picker. onQuery receives every search edit,
// onPick the chosen language and onClose is called on Escape.
func NewLanguagePicker(onPick func(language.Language), onQuery func(string), onClose func()) *LanguagePicker {
	p := &LanguagePicker{
		onPick:  onPick,
		onQuery: onQuery,
	}

	p.search = NewEscapeEntry()
	p.search.SetPlaceHolder("Search languages")
	p.search.OnChanged = func(text string) {
		if p.onQuery != nil {
			p.onQuery(text)
		}
	}
	p.search.SetOnEscape(onClose)

	p.list = widget.NewList(
		func() int { return len(p.languages) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(p.languages) {
				obj.(*widget.Label).SetText(p.languages[id].String())
			}
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		p.list.UnselectAll()
		if id < len(p.languages) && p.onPick != nil {
			p.onPick(p.languages[id])
		}
	}

	searchRow := container.NewBorder(nil, nil, widget.NewIcon(theme.SearchIcon()), nil, p.search)
	p.container = container.NewBorder(searchRow, nil, nil, nil, p.list)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *LanguagePicker) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// SetLanguages replaces the listed languages
func (p *LanguagePicker) SetLanguages(languages []language.Language) {
	p.languages = append(p.languages[:0], languages...)
	p.list.Refresh()
	p.list.ScrollToTop()
}

// Reset empties the search field
func (p *LanguagePicker) Reset() {
	p.search.SetText("")
}

// FocusSearch moves keyboard focus to the search field
func (p *LanguagePicker) FocusSearch(canvas fyne.Canvas) {
	canvas.Focus(p.search)
}
