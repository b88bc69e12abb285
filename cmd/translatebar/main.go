package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/translatebar/internal/cli"
	"codeberg.org/snonux/translatebar/internal/processor"
	"codeberg.org/snonux/translatebar/internal/settings"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	flags.Apply(viper.GetViper())
	s := settings.Load(viper.GetViper())

	proc, err := processor.NewProcessor(flags, s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case flags.ListModels:
		return proc.ListModels(ctx)
	case flags.ListLanguages:
		return proc.ListLanguages(ctx)
	case flags.ClearHistory:
		return proc.ClearHistory(ctx)
	case flags.ArchiveHist:
		return proc.ArchiveHistory(ctx)
	case flags.ExportAnki != "":
		return proc.ExportAnki(ctx)
	case flags.History > 0:
		return proc.PrintHistory(ctx, flags.History)
	case flags.BatchFile != "":
		return proc.ProcessBatch(ctx)
	case len(args) > 0:
		return proc.ProcessText(ctx, args[0])
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode(ctx)
	}
}
