package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brain-score/scoreboard/internal/leaderboard"
	"github.com/brain-score/scoreboard/internal/store"
	"github.com/brain-score/scoreboard/internal/taxonomy"
	"github.com/brain-score/scoreboard/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newValidateCommand() *cobra.Command {
	var src sourceOptions

	cmd := &cobra.Command{
		Use:   "validate [snapshot]",
		Short: "Check a snapshot file against the schema and build it",
		Long: `Check a snapshot file against the schema and build it.

The snapshot is first validated against the embedded JSON Schema. A valid
snapshot is then built into a leaderboard, which catches unknown benchmark
categories and models without an average score.

Exits with code 1 when the snapshot is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := src.loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Snapshot.Path
			}
			if path == "" {
				return errors.New("no snapshot given: pass a path or set snapshot.path")
			}
			return validateSnapshot(cmd.Context(), cmd.OutOrStdout(), path)
		},
	}

	addSourceFlags(cmd, &src)
	return cmd
}

func validateSnapshot(ctx context.Context, w io.Writer, path string) error {
	p := message.NewPrinter(language.English)

	problems, err := validation.ValidateSnapshotFile(path)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		p.Fprintf(w, "%s: %d schema error(s)\n", path, len(problems))
		for _, msg := range problems {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
		return &ValidationError{Message: fmt.Sprintf("%s does not match the snapshot schema", path)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot file: %w", err)
	}
	snap, err := store.DecodeSnapshot(data)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	page, err := leaderboard.Build(ctx, store.NewSnapshotStoreFrom(snap))
	if err != nil {
		if errors.Is(err, taxonomy.ErrUnknownCategory) || errors.Is(err, leaderboard.ErrMissingAverage) {
			return &ValidationError{Message: fmt.Sprintf("%s: %v", path, err)}
		}
		return err
	}

	p.Fprintf(w, "%s: ok (%d benchmarks, %d scores, %d models, %d ranked columns)\n",
		path, len(snap.Benchmarks), len(snap.Scores), len(page.Models), len(page.Benchmarks))
	return nil
}
