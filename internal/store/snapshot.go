package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/brain-score/scoreboard/internal/models"
	"github.com/brain-score/scoreboard/internal/validation"
	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalidSnapshot is returned when a snapshot file fails schema
// validation.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the decoded content of a snapshot file.
type Snapshot struct {
	Benchmarks []models.Benchmark      `mapstructure:"benchmarks"`
	Scores     []models.Score          `mapstructure:"scores"`
	References []models.ModelReference `mapstructure:"references"`
	Meta       []models.ModelMeta      `mapstructure:"meta"`
}

// DecodeSnapshot validates raw YAML or JSON and decodes it into a Snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	doc, err := validation.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if errs := validation.ValidateSnapshotDocument(doc); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(errs, "; "))
	}

	var snap Snapshot
	if err := mapstructure.Decode(doc, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	for i := range snap.Scores {
		if snap.Scores[i].ID == 0 {
			snap.Scores[i].ID = int64(i + 1)
		}
	}
	return &snap, nil
}

// SnapshotStore serves a snapshot file. The file is read on first use and
// again whenever its modification time or size changes, so every build sees
// the current content.
type SnapshotStore struct {
	path string

	mu      sync.RWMutex
	snap    *Snapshot
	loaded  bool
	modTime time.Time
	size    int64
}

// NewSnapshotStore creates a SnapshotStore that reads the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// NewSnapshotStoreFrom serves an in-memory snapshot.
func NewSnapshotStoreFrom(snap *Snapshot) *SnapshotStore {
	return &SnapshotStore{snap: snap, loaded: true}
}

// load reads and decodes the snapshot file described by fi.
func (s *SnapshotStore) load(fi os.FileInfo) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading snapshot %q: %w", s.path, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("loading snapshot %q: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.loaded = true
	s.modTime = fi.ModTime()
	s.size = fi.Size()
	return nil
}

// stale reports whether fi differs from the file last loaded.
func (s *SnapshotStore) stale(fi os.FileInfo) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded || !fi.ModTime().Equal(s.modTime) || fi.Size() != s.size
}

// Reload forces a fresh read of the snapshot file.
func (s *SnapshotStore) Reload() error {
	if s.path == "" {
		return nil
	}
	fi, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("reading snapshot %q: %w", s.path, err)
	}
	return s.load(fi)
}

func (s *SnapshotStore) snapshot() (*Snapshot, error) {
	if s.path == "" {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.snap == nil {
			return &Snapshot{}, nil
		}
		return s.snap, nil
	}

	fi, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", s.path, err)
	}
	if s.stale(fi) {
		if err := s.load(fi); err != nil {
			return nil, err
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, nil
}

// ListBenchmarks returns every benchmark in file order.
func (s *SnapshotStore) ListBenchmarks(_ context.Context) ([]models.Benchmark, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]models.Benchmark, len(snap.Benchmarks))
	copy(out, snap.Benchmarks)
	return out, nil
}

// ScoredBenchmarkNames returns distinct score benchmark names in order of
// first appearance.
func (s *SnapshotStore) ScoredBenchmarkNames(_ context.Context) ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, sc := range snap.Scores {
		if !seen[sc.Benchmark] {
			seen[sc.Benchmark] = true
			names = append(names, sc.Benchmark)
		}
	}
	return names, nil
}

// ListScores returns all scores in file order.
func (s *SnapshotStore) ListScores(_ context.Context) ([]models.Score, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]models.Score, len(snap.Scores))
	copy(out, snap.Scores)
	return out, nil
}

// Reference returns the first reference recorded for model.
func (s *SnapshotStore) Reference(_ context.Context, model string) (*models.ModelReference, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	for _, ref := range snap.References {
		if ref.Model == model {
			r := ref
			return &r, nil
		}
	}
	return nil, nil
}

// Meta returns the annotations recorded for model in file order.
func (s *SnapshotStore) Meta(_ context.Context, model string) ([]models.ModelMeta, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []models.ModelMeta
	for _, m := range snap.Meta {
		if m.Model == model {
			out = append(out, m)
		}
	}
	return out, nil
}

// Ensure SnapshotStore satisfies Store.
var _ Store = (*SnapshotStore)(nil)
