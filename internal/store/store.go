// Package store provides read access to benchmark and score records.
package store

import (
	"context"

	"github.com/brain-score/scoreboard/internal/models"
)

//go:generate go tool mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store exposes the read-only queries the leaderboard is built from.
type Store interface {
	// ListBenchmarks returns every benchmark definition.
	ListBenchmarks(ctx context.Context) ([]models.Benchmark, error)
	// ScoredBenchmarkNames returns the distinct benchmark names that have at
	// least one score.
	ScoredBenchmarkNames(ctx context.Context) ([]string, error)
	// ListScores returns all scores in a stable order.
	ListScores(ctx context.Context) ([]models.Score, error)
	// Reference returns the reference for a model family, or nil if there is
	// none.
	Reference(ctx context.Context, model string) (*models.ModelReference, error)
	// Meta returns the annotations for a model family.
	Meta(ctx context.Context, model string) ([]models.ModelMeta, error)
}
