package main

import (
	"fmt"

	"github.com/brain-score/scoreboard/internal/publish"
	"github.com/brain-score/scoreboard/internal/render"
	"github.com/brain-score/scoreboard/internal/spinner"
	"github.com/spf13/cobra"
)

func newPublishCommand() *cobra.Command {
	var (
		src        sourceOptions
		accountURL string
		container  string
		blobName   string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the leaderboard and upload it to Azure Blob Storage",
		Long: `Render the leaderboard and upload it to Azure Blob Storage.

Credentials are resolved with DefaultAzureCredential (environment, workload
identity, managed identity or the Azure CLI login).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, cfg, err := src.buildPage(cmd.Context())
			if err != nil {
				return err
			}

			target := publish.Config{
				AccountURL: cfg.Publish.AccountURL,
				Container:  cfg.Publish.Container,
				Blob:       cfg.Publish.Blob,
			}
			if accountURL != "" {
				target.AccountURL = accountURL
			}
			if container != "" {
				target.Container = container
			}
			if blobName != "" {
				target.Blob = blobName
			}
			if err := target.Validate(); err != nil {
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

			p, err := publish.New(target, nil)
			if err != nil {
				return err
			}
			stop := spinner.Start(cmd.ErrOrStderr(), "Uploading "+p.Target())
			err = p.Publish(cmd.Context(), body, "text/html; charset=utf-8")
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", p.Target())
			return nil
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVar(&accountURL, "account-url", "", "Storage account URL (default from config)")
	cmd.Flags().StringVar(&container, "container", "", "Blob container (default from config)")
	cmd.Flags().StringVar(&blobName, "blob", "", "Blob name (default from config: index.html)")

	return cmd
}
