// Package leaderboard builds the model-by-benchmark score table from the
// records in a store.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/brain-score/scoreboard/internal/display"
	"github.com/brain-score/scoreboard/internal/models"
	"github.com/brain-score/scoreboard/internal/store"
	"github.com/brain-score/scoreboard/internal/taxonomy"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// AverageBenchmark is the pseudo-benchmark whose ceiled score ranks models.
const AverageBenchmark = "average"

// LayerNotRun labels the placeholder cell of a benchmark a model was never
// scored on.
const LayerNotRun = "not yet run"

// ErrMissingAverage is returned when a model has no valued average score.
var ErrMissingAverage = errors.New("model has no average score")

var tracer trace.Tracer = otel.Tracer("github.com/brain-score/scoreboard/internal/leaderboard")

// labPrefix matches "<lab>.<rest>" benchmark identifiers.
var labPrefix = regexp.MustCompile(`^[^.]+\.(.+)`)

// Bounds is the observed range of ceiled scores on one benchmark.
type Bounds struct {
	Min float64
	Max float64
}

// records is the raw data one page is built from.
type records struct {
	benchmarks  []models.Benchmark
	scoredNames []string
	scores      []models.Score
}

func fetch(ctx context.Context, s store.Store) (*records, error) {
	ctx, span := tracer.Start(ctx, "leaderboard.fetch")
	defer span.End()

	var r records
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r.benchmarks, err = s.ListBenchmarks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		r.scoredNames, err = s.ScoredBenchmarkNames(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		r.scores, err = s.ListScores(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("benchmarks", len(r.benchmarks)),
		attribute.Int("scores", len(r.scores)),
	)
	return &r, nil
}

// Build loads all records from s and assembles the leaderboard page.
func Build(ctx context.Context, s store.Store) (*models.Page, error) {
	ctx, span := tracer.Start(ctx, "leaderboard.Build")
	defer span.End()

	page, err := build(ctx, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("models", len(page.Models)))
	return page, nil
}

func build(ctx context.Context, s store.Store) (*models.Page, error) {
	recs, err := fetch(ctx, s)
	if err != nil {
		return nil, err
	}

	benchmarks, err := SelectBenchmarks(recs.benchmarks, recs.scoredNames)
	if err != nil {
		return nil, err
	}

	rows, err := CollectModels(ctx, s, benchmarks, recs.scores)
	if err != nil {
		return nil, err
	}

	slog.Debug("built leaderboard", "benchmarks", len(benchmarks), "models", len(rows), "scores", len(recs.scores))
	return &models.Page{
		Models:     rows,
		Benchmarks: Columns(benchmarks),
	}, nil
}

// CollectBenchmarks returns the benchmarks that have scores, in taxonomy
// order.
func CollectBenchmarks(ctx context.Context, s store.Store) ([]models.Benchmark, error) {
	all, err := s.ListBenchmarks(ctx)
	if err != nil {
		return nil, err
	}
	scored, err := s.ScoredBenchmarkNames(ctx)
	if err != nil {
		return nil, err
	}
	return SelectBenchmarks(all, scored)
}

// SelectBenchmarks keeps the benchmarks named in scored and orders them by
// their parent category.
func SelectBenchmarks(all []models.Benchmark, scored []string) ([]models.Benchmark, error) {
	have := make(map[string]bool, len(scored))
	for _, name := range scored {
		have[name] = true
	}

	selected := make([]models.Benchmark, 0, len(all))
	for _, b := range all {
		if have[b.Name] {
			selected = append(selected, b)
		}
	}

	ordered, err := taxonomy.Order(selected, func(b models.Benchmark) (int, error) {
		return taxonomy.CategoryIndex(b.Parent)
	})
	if err != nil {
		return nil, fmt.Errorf("ordering benchmarks: %w", err)
	}
	return ordered, nil
}

// ComputeBounds returns the min and max ceiled score per benchmark. Scores
// without a ceiled value count as zero.
func ComputeBounds(benchmarks []models.Benchmark, scores []models.Score) map[string]Bounds {
	bounds := make(map[string]Bounds, len(benchmarks))
	seen := make(map[string]bool, len(benchmarks))
	for _, b := range benchmarks {
		bounds[b.Name] = Bounds{}
	}
	for _, sc := range scores {
		if _, ok := bounds[sc.Benchmark]; !ok {
			continue
		}
		v := 0.0
		if sc.ScoreCeiled != nil {
			v = *sc.ScoreCeiled
		}
		b := bounds[sc.Benchmark]
		if !seen[sc.Benchmark] {
			b = Bounds{Min: v, Max: v}
			seen[sc.Benchmark] = true
		} else {
			if v < b.Min {
				b.Min = v
			}
			if v > b.Max {
				b.Max = v
			}
		}
		bounds[sc.Benchmark] = b
	}
	return bounds
}

// BaseIdentifier strips the "--<variant>" suffix from a model name. References
// and annotations are stored per base identifier.
func BaseIdentifier(model string) string {
	if i := strings.Index(model, "--"); i >= 0 {
		return model[:i]
	}
	return model
}

// FormatMeta orders annotations by category prefix and renders them one
// "key: value" per line.
func FormatMeta(meta []models.ModelMeta) (string, error) {
	ordered, err := taxonomy.Order(meta, func(m models.ModelMeta) (int, error) {
		return taxonomy.MetaPrefixIndex(m.Key)
	})
	if err != nil {
		return "", fmt.Errorf("ordering meta: %w", err)
	}
	lines := make([]string, len(ordered))
	for i, m := range ordered {
		lines[i] = m.Key + ": " + m.Value
	}
	return strings.Join(lines, "\n"), nil
}

// ScoreCell renders one recorded score. A score with neither a raw nor a
// ceiled value is an errored run.
func ScoreCell(sc models.Score, b Bounds) models.ScoreDisplay {
	if sc.ScoreRaw == nil && sc.ScoreCeiled == nil {
		return ErrorCell(sc.Benchmark, b)
	}
	layer := ""
	if sc.Layer != nil {
		layer = *sc.Layer
	}
	return models.ScoreDisplay{
		Benchmark:   sc.Benchmark,
		ScoreRaw:    display.Represent(sc.ScoreRaw),
		ScoreCeiled: display.Represent(sc.ScoreCeiled),
		Color:       display.RepresentativeColor(sc.ScoreCeiled, b.Min, b.Max),
		Layer:       layer,
	}
}

// NotRunCell is the placeholder for a benchmark a model was never scored on.
func NotRunCell(benchmark string, b Bounds) models.ScoreDisplay {
	return models.ScoreDisplay{
		Benchmark: benchmark,
		Color:     display.RepresentativeColor(nil, b.Min, b.Max),
		Layer:     LayerNotRun,
	}
}

// ErrorCell is the placeholder for a score whose run failed.
func ErrorCell(benchmark string, b Bounds) models.ScoreDisplay {
	return models.ScoreDisplay{
		Benchmark:   benchmark,
		ScoreRaw:    "X",
		ScoreCeiled: "X",
		Color:       display.RepresentativeColor(nil, b.Min, b.Max),
	}
}

// CollectModels groups scores into one row per model. Rows appear in order of
// each model's first score; every row has one cell per benchmark.
func CollectModels(ctx context.Context, s store.Store, benchmarks []models.Benchmark, scores []models.Score) ([]models.ModelRow, error) {
	bounds := ComputeBounds(benchmarks, scores)

	var (
		order    []string
		rows     = make(map[string]models.ModelRow)
		cells    = make(map[string]map[string]models.ScoreDisplay)
		averages = make(map[string]float64)
	)

	for _, sc := range scores {
		b, ok := bounds[sc.Benchmark]
		if !ok {
			continue
		}

		if _, ok := rows[sc.Model]; !ok {
			row, err := newRow(ctx, s, sc.Model)
			if err != nil {
				return nil, err
			}
			rows[sc.Model] = row
			cells[sc.Model] = make(map[string]models.ScoreDisplay)
			order = append(order, sc.Model)
		}

		cells[sc.Model][sc.Benchmark] = ScoreCell(sc, b)
		if sc.Benchmark == AverageBenchmark {
			if sc.ScoreCeiled != nil {
				averages[sc.Model] = *sc.ScoreCeiled
			} else {
				delete(averages, sc.Model)
			}
		}
	}

	out := make([]models.ModelRow, 0, len(order))
	for _, name := range order {
		modelCells := cells[name]
		aligned := make([]models.ScoreDisplay, len(benchmarks))
		for i, b := range benchmarks {
			if cell, ok := modelCells[b.Name]; ok {
				aligned[i] = cell
			} else {
				aligned[i] = NotRunCell(b.Name, bounds[b.Name])
			}
		}
		out = append(out, rows[name].WithScores(aligned))
	}

	return AssignRanks(out, averages)
}

func newRow(ctx context.Context, s store.Store, model string) (models.ModelRow, error) {
	base := BaseIdentifier(model)

	ref, err := s.Reference(ctx, base)
	if err != nil {
		return models.ModelRow{}, fmt.Errorf("loading reference for %q: %w", model, err)
	}
	meta, err := s.Meta(ctx, base)
	if err != nil {
		return models.ModelRow{}, fmt.Errorf("loading meta for %q: %w", model, err)
	}
	metaText, err := FormatMeta(meta)
	if err != nil {
		return models.ModelRow{}, fmt.Errorf("model %q: %w", model, err)
	}

	row := models.ModelRow{Name: model, Meta: metaText}
	if ref != nil {
		row.ReferenceIdentifier = ref.ShortReference
		row.ReferenceLink = ref.Link
	}
	return row, nil
}

// AssignRanks ranks rows by their aggregate score, highest first. Equal
// aggregates get consecutive, distinct ranks in row order. Each ranked row
// also carries its aggregate as Average.
func AssignRanks(rows []models.ModelRow, aggregates map[string]float64) ([]models.ModelRow, error) {
	idx := make([]int, len(rows))
	for i, row := range rows {
		if _, ok := aggregates[row.Name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingAverage, row.Name)
		}
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return aggregates[rows[idx[a]].Name] > aggregates[rows[idx[b]].Name]
	})

	ranked := make([]models.ModelRow, len(rows))
	copy(ranked, rows)
	for pos, i := range idx {
		ranked[i] = rows[i].WithRank(pos + 1)
		ranked[i].Average = aggregates[rows[i].Name]
	}
	return ranked, nil
}

// SortByRank returns a copy of rows ordered by rank.
func SortByRank(rows []models.ModelRow) []models.ModelRow {
	sorted := make([]models.ModelRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

// DisplayName strips the lab prefix from a benchmark identifier.
func DisplayName(name string) string {
	if m := labPrefix.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// Columns converts ordered benchmarks into table header columns.
func Columns(benchmarks []models.Benchmark) []models.BenchmarkColumn {
	cols := make([]models.BenchmarkColumn, len(benchmarks))
	for i, b := range benchmarks {
		cols[i] = models.BenchmarkColumn{
			Name:        b.Name,
			DisplayName: DisplayName(b.Name),
			Parent:      b.Parent,
			Ceiling:     display.Represent(b.Ceiling),
		}
	}
	return cols
}
