package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brain-score/scoreboard/internal/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// BunStore reads leaderboard tables from Postgres.
type BunStore struct {
	DB *bun.DB
}

// OpenBunStore connects to the Postgres database at dsn and verifies the
// connection.
func OpenBunStore(ctx context.Context, dsn string) (*BunStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*models.Benchmark)(nil),
		(*models.Score)(nil),
		(*models.ModelReference)(nil),
		(*models.ModelMeta)(nil),
	)
	slog.Debug("connected to leaderboard database")
	return &BunStore{DB: db}, nil
}

// Close releases the connection pool.
func (s *BunStore) Close() error {
	return s.DB.Close()
}

// ListBenchmarks returns every benchmark ordered by name.
func (s *BunStore) ListBenchmarks(ctx context.Context) ([]models.Benchmark, error) {
	var benchmarks []models.Benchmark
	err := s.DB.NewSelect().
		Model(&benchmarks).
		Order("name").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmarks: %w", err)
	}
	return benchmarks, nil
}

// ScoredBenchmarkNames returns the distinct benchmark names present in the
// score table.
func (s *BunStore) ScoredBenchmarkNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.DB.NewSelect().
		Model((*models.Score)(nil)).
		ColumnExpr("DISTINCT benchmark").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("failed to list scored benchmarks: %w", err)
	}
	return names, nil
}

// ListScores returns all scores ordered by id.
func (s *BunStore) ListScores(ctx context.Context) ([]models.Score, error) {
	var scores []models.Score
	err := s.DB.NewSelect().
		Model(&scores).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

// Reference returns the first reference for model, or nil when there is
// none.
func (s *BunStore) Reference(ctx context.Context, model string) (*models.ModelReference, error) {
	ref := new(models.ModelReference)
	err := s.DB.NewSelect().
		Model(ref).
		Where("model = ?", model).
		Order("id").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reference for %q: %w", model, err)
	}
	return ref, nil
}

// Meta returns the annotations for model ordered by id.
func (s *BunStore) Meta(ctx context.Context, model string) ([]models.ModelMeta, error) {
	var meta []models.ModelMeta
	err := s.DB.NewSelect().
		Model(&meta).
		Where("model = ?", model).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get meta for %q: %w", model, err)
	}
	return meta, nil
}

// Ensure BunStore satisfies Store.
var _ Store = (*BunStore)(nil)
