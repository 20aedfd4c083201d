package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brain-score/scoreboard/internal/leaderboard"
	"github.com/brain-score/scoreboard/internal/models"
	"github.com/brain-score/scoreboard/internal/projectconfig"
	"github.com/brain-score/scoreboard/internal/store"
	"github.com/spf13/cobra"
)

// sourceOptions selects the configuration and the score store.
type sourceOptions struct {
	configPath string
	snapshot   string
	dsn        string
}

func addSourceFlags(cmd *cobra.Command, o *sourceOptions) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "Path to a config file (default: search for "+projectconfig.FileName+")")
	cmd.Flags().StringVar(&o.snapshot, "snapshot", "", "Read scores from this YAML or JSON snapshot")
	cmd.Flags().StringVar(&o.dsn, "dsn", "", "Read scores from this Postgres database")
}

// loadConfig loads the project config and applies flag overrides.
func (o *sourceOptions) loadConfig() (*projectconfig.ProjectConfig, error) {
	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if o.configPath != "" {
		cfg, err = projectconfig.LoadFile(o.configPath)
	} else {
		cfg, err = projectconfig.Load(".")
	}
	if err != nil {
		return nil, err
	}

	// A flag picks the source outright.
	if o.snapshot != "" {
		cfg.Snapshot.Path = o.snapshot
		cfg.Database.DSN = ""
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	return cfg, nil
}

// openStore returns the database store when a DSN is configured and the
// snapshot store otherwise. The returned close func is never nil.
func openStore(ctx context.Context, cfg *projectconfig.ProjectConfig) (store.Store, func() error, error) {
	noop := func() error { return nil }

	if cfg.Database.DSN != "" {
		s, err := store.OpenBunStore(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}
	if cfg.Snapshot.Path != "" {
		slog.Debug("reading scores from snapshot", "path", cfg.Snapshot.Path)
		return store.NewSnapshotStore(cfg.Snapshot.Path), noop, nil
	}
	return nil, noop, errors.New("no score source configured: set --snapshot, --dsn, " +
		projectconfig.EnvSnapshot + " or " + projectconfig.EnvDatabaseURL)
}

// buildPage loads config, opens the store and builds the leaderboard once.
func (o *sourceOptions) buildPage(ctx context.Context) (*models.Page, *projectconfig.ProjectConfig, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer closeStore() //nolint:errcheck

	page, err := leaderboard.Build(ctx, s)
	if err != nil {
		return nil, nil, fmt.Errorf("building leaderboard: %w", err)
	}
	return page, cfg, nil
}
