package main

import (
	"log/slog"

	"github.com/brain-score/scoreboard/internal/webapi"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scoreboard",
		Short: "Scoreboard - build and serve the Brain-Score model leaderboard",
		Long: `Scoreboard builds the model leaderboard from benchmark scores.

It reads scores from a Postgres database or a snapshot file, ranks models by
their average score and renders the result as a color-coded table, either
served over HTTP, written as a static page, printed to the terminal or
exported as csv, json or xlsx.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}
	webapi.Version = version

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newTableCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newPublishCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
