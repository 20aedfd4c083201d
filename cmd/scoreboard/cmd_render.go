package main

import (
	"fmt"
	"os"

	"github.com/brain-score/scoreboard/internal/render"
	"github.com/spf13/cobra"
)

func newRenderCommand() *cobra.Command {
	var (
		src    sourceOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the leaderboard as a static HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, cfg, err := src.buildPage(cmd.Context())
			if err != nil {
				return err
			}
			r, err := render.New(render.Options{Title: cfg.Page.Title, Intro: cfg.Page.Intro})
			if err != nil {
				return err
			}
			body, err := r.RenderBytes(page)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d models, %d benchmarks)\n", output, len(page.Models), len(page.Benchmarks))
			return nil
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
