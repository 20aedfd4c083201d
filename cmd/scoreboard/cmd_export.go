package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brain-score/scoreboard/internal/export"
	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	var (
		src    sourceOptions
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the leaderboard as csv, json or xlsx",
		Long: `Export the leaderboard as csv, json or xlsx.

When --format is not given it is taken from the --output file extension,
falling back to csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveExportFormat(format, output)
			if err != nil {
				return err
			}

			page, _, err := src.buildPage(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, page, f); err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d models to %s\n", len(page.Models), output)
			return nil
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv, json or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func resolveExportFormat(format, output string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return export.ParseFormat(ext)
	}
	return export.FormatCSV, nil
}
