package cli

import (
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/translatebar/internal/settings"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	From          string
	To            string
	BatchFile     string
	ListLanguages bool
	ListModels    bool
	History       int
	ClearHistory  bool
	ArchiveHist   bool
	ExportAnki    string
	NoHistory     bool
	NoClipboard   bool
	Debounce      time.Duration

	// Provider flags
	Provider    string
	OpenAIModel string
	GeminiModel string
}

// NewFlags creates a new Flags instance with default values. Defaults for
// values that can also come from the config file live in the settings
// package so a config file is not shadowed by a flag default.
func NewFlags() *Flags {
	return &Flags{}
}

// Apply writes the switches that invert a config value into v
func (f *Flags) Apply(v *viper.Viper) {
	if f.NoHistory {
		v.Set(settings.KeyHistoryEnabled, false)
	}
	if f.NoClipboard {
		v.Set(settings.KeyClipboardAuto, false)
	}
}
