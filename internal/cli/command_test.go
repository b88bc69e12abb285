package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/translatebar/internal/settings"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "translatebar [text]" {
		t.Errorf("Expected Use to be 'translatebar [text]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "translation bar") {
		t.Errorf("Expected Short description to mention the translation bar")
	}

	flagNames := []string{
		"config", "from", "to", "batch", "list-languages", "list-models",
		"history", "clear-history", "archive-history", "export-anki",
		"no-history", "no-clipboard", "debounce",
		"provider", "openai-model", "gemini-model",
	}

	for _, name := range flagNames {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestCreateRootCommand_AcceptsOneText(t *testing.T) {
	cmd := CreateRootCommand(NewFlags())

	if err := cmd.Args(cmd, []string{"hello"}); err != nil {
		t.Errorf("Expected one argument to be accepted, got %v", err)
	}
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("Expected two arguments to be rejected")
	}
}

func TestSetupFlags_Shorthands(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	if err := cmd.ParseFlags([]string{"-f", "en", "-t", "de", "--history", "5", "--debounce", "300ms"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if flags.From != "en" || flags.To != "de" {
		t.Errorf("Expected en->de, got %s->%s", flags.From, flags.To)
	}
	if flags.History != 5 {
		t.Errorf("Expected history 5, got %d", flags.History)
	}
	if flags.Debounce != 300*time.Millisecond {
		t.Errorf("Expected 300ms debounce, got %v", flags.Debounce)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		check     func(t *testing.T)
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `provider: gemini
languages:
  source: [fr, en]
translate:
  debounce: 500ms`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			check: func(t *testing.T) {
				if got := viper.GetString(settings.KeyProvider); got != "gemini" {
					t.Errorf("Expected provider gemini, got %q", got)
				}
				if got := viper.GetStringSlice(settings.KeySourceLanguages); len(got) != 2 || got[0] != "fr" {
					t.Errorf("Unexpected source languages %v", got)
				}
				if got := viper.GetDuration(settings.KeyDebounce); got != 500*time.Millisecond {
					t.Errorf("Expected 500ms, got %v", got)
				}
			},
		},
		{
			name:      "without config file",
			setupFunc: func(t *testing.T) string { return "" },
			check:     func(t *testing.T) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			InitConfig(tt.setupFunc(t))
			tt.check(t)

			// Nested keys map to underscored environment variables
			t.Setenv("TRANSLATEBAR_HISTORY_PATH", "/tmp/h.db")
			if viper.GetString(settings.KeyHistoryPath) != "/tmp/h.db" {
				t.Error("Environment variable not properly loaded")
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	// Reset viper
	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	cmd.Flags().Set("provider", "gemini")
	cmd.Flags().Set("openai-model", "gpt-4o")
	cmd.Flags().Set("debounce", "2s")

	if viper.GetString(settings.KeyProvider) != "gemini" {
		t.Errorf("Expected provider to be gemini, got %s", viper.GetString(settings.KeyProvider))
	}
	if viper.GetString(settings.KeyOpenAIModel) != "gpt-4o" {
		t.Errorf("Expected openai.model to be gpt-4o, got %s", viper.GetString(settings.KeyOpenAIModel))
	}
	if viper.GetDuration(settings.KeyDebounce) != 2*time.Second {
		t.Errorf("Expected translate.debounce to be 2s, got %v", viper.GetDuration(settings.KeyDebounce))
	}
}

func TestBindFlagsToViper_UnsetFlagKeepsDefault(t *testing.T) {
	v := viper.New()
	cmd := &cobra.Command{}
	setupFlags(cmd, NewFlags())
	v.BindPFlag(settings.KeyProvider, cmd.Flags().Lookup("provider"))

	s := settings.Load(v)
	if s.Provider != "openai" {
		t.Errorf("Expected default provider openai, got %q", s.Provider)
	}
}
