package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/translatebar/internal"
	"codeberg.org/snonux/translatebar/internal/settings"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "translatebar [text]",
		Short: "Live translation bar",
		Long: `translatebar translates text as you type between a few pinned languages.

It uses OpenAI or Google Gemini models for translation and remembers the
languages you picked most recently.

Examples:
  translatebar                              # Launch the translation window (default)
  translatebar "good morning"               # Translate with the first pinned languages
  translatebar --from en --to de "cat"      # Translate between the given languages
  translatebar --batch phrases.txt          # Translate every line of a file
  translatebar --history 20                 # Show the last 20 translations
  translatebar --export-anki cards.csv      # Turn the history into flashcards`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.translatebar.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.From, "from", "f", "", "Source language code (default: first pinned source language)")
	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Target language code (default: first pinned target language)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate text from file (one entry per line)")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List the languages of the catalog")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().IntVar(&flags.History, "history", 0, "Print the last N translations")
	cmd.Flags().BoolVar(&flags.ClearHistory, "clear-history", false, "Delete the translation history")
	cmd.Flags().BoolVar(&flags.ArchiveHist, "archive-history", false, "Move the translation history to the archive directory and start a new one")
	cmd.Flags().StringVar(&flags.ExportAnki, "export-anki", "", "Export the translation history as an Anki import CSV file")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record translations")
	cmd.Flags().BoolVar(&flags.NoClipboard, "no-clipboard", false, "Do not translate the clipboard when the window opens")
	cmd.Flags().DurationVar(&flags.Debounce, "debounce", 0, "Pause after typing before translating (default 1s)")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", "", "Translation provider: openai or gemini (default openai)")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", "", "OpenAI chat model (default gpt-4o-mini)")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", "", "Gemini model (default gemini-2.0-flash)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag(settings.KeyProvider, cmd.Flags().Lookup("provider"))
	viper.BindPFlag(settings.KeyOpenAIModel, cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag(settings.KeyGeminiModel, cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag(settings.KeyDebounce, cmd.Flags().Lookup("debounce"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".translatebar" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".translatebar")
	}

	// Environment variables, e.g. TRANSLATEBAR_TRANSLATE_DEBOUNCE
	viper.SetEnvPrefix("TRANSLATEBAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
