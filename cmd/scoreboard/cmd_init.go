package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brain-score/scoreboard/internal/projectconfig"
	"github.com/brain-score/scoreboard/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var (
		force       bool
		interactive bool
		answers     wizard.Answers
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a " + projectconfig.FileName + " config",
		Long: `Write a ` + projectconfig.FileName + ` config.

With --interactive the values are collected with a form. Otherwise they come
from flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			target := filepath.Join(dir, projectconfig.FileName)

			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", target, err)
			}

			cfg := projectconfig.New()
			a := answers
			if interactive {
				initial := wizard.AnswersFrom(cfg)
				mergeAnswers(&initial, answers)
				got, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout(), initial)
				if err != nil {
					return err
				}
				a = *got
			}
			if err := a.Apply(cfg); err != nil {
				return err
			}

			data, err := projectconfig.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Collect values with an interactive form")
	cmd.Flags().StringVar(&answers.SnapshotPath, "snapshot", "", "Snapshot file to read scores from")
	cmd.Flags().StringVar(&answers.DatabaseURL, "dsn", "", "Postgres DSN to read scores from")
	cmd.Flags().StringVar(&answers.Port, "port", "", "Port for serve")
	cmd.Flags().StringVar(&answers.Title, "title", "", "Page title")
	cmd.Flags().StringVar(&answers.AccountURL, "account-url", "", "Storage account URL for publish")
	cmd.Flags().StringVar(&answers.Container, "container", "", "Blob container for publish")

	return cmd
}

// mergeAnswers overlays non-empty flag values onto the form defaults.
func mergeAnswers(dst *wizard.Answers, src wizard.Answers) {
	for _, f := range []struct{ dst, src *string }{
		{&dst.SnapshotPath, &src.SnapshotPath},
		{&dst.DatabaseURL, &src.DatabaseURL},
		{&dst.Port, &src.Port},
		{&dst.Title, &src.Title},
		{&dst.AccountURL, &src.AccountURL},
		{&dst.Container, &src.Container},
	} {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}
}
