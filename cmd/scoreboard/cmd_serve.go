package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brain-score/scoreboard/internal/render"
	"github.com/brain-score/scoreboard/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		src  sourceOptions
		host string
		port int
		open bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the leaderboard over HTTP",
		Long: `Serve the leaderboard over HTTP.

Every request rebuilds the leaderboard from the configured store.

Routes:
  GET /                            HTML leaderboard
  GET /api/health                  Health check
  GET /api/leaderboard             Leaderboard as JSON
  GET /api/leaderboard/chart.png   Bar chart of average scores
  GET /metrics                     Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := src.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore() //nolint:errcheck

			srv, err := webserver.New(webserver.Config{
				Host:           cfg.Server.Host,
				Port:           cfg.Server.Port,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Store:          s,
				Page:           render.Options{Title: cfg.Page.Title, Intro: cfg.Page.Intro},
				OpenBrowser:    open,
				Logger:         slog.Default(),
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.ListenAndServe(ctx)
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().StringVar(&host, "host", "", "Interface to listen on (default from config: 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config: 3000)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the leaderboard in a browser")

	return cmd
}
