package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/webapi"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "council",
		Short: "Council - multi-model press release pipeline",
		Long: `Council drafts, evaluates, and synthesizes press releases.

Several writer models draft independently, journalist personas rank the
anonymized drafts, and an editor model folds the drafts and rankings into
one final release.`,
		Version:      webapi.Version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCatalogCommand())
	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newArchiveCommand())
	cmd.AddCommand(newLogCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
