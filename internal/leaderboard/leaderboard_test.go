package leaderboard

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/brain-score/scoreboard/internal/display"
	"github.com/brain-score/scoreboard/internal/models"
	"github.com/brain-score/scoreboard/internal/store"
	"github.com/brain-score/scoreboard/internal/store/mocks"
	"github.com/brain-score/scoreboard/internal/taxonomy"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

var alphaPattern = regexp.MustCompile(`rgba\([^,]+, [^,]+, [^,]+, ([^)]+)\)`)

func alphaOf(t *testing.T, color string) float64 {
	t.Helper()
	m := alphaPattern.FindStringSubmatch(color)
	require.NotNil(t, m, "no rgba component in %q", color)
	v, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	return v
}

func TestSelectBenchmarks(t *testing.T) {
	all := []models.Benchmark{
		{Name: "fei-fei.Deng2009-top1", Parent: ptr("ImageNet")},
		{Name: "dicarlo.Majaj2015.IT-pls", Parent: ptr("IT")},
		{Name: "average"},
		{Name: "movshon.FreemanZiemba2013.V1-pls", Parent: ptr("V1")},
		{Name: "dicarlo.Majaj2015.V4-pls", Parent: ptr("V4")},
	}
	scored := []string{"dicarlo.Majaj2015.IT-pls", "average", "fei-fei.Deng2009-top1", "dicarlo.Majaj2015.V4-pls"}

	got, err := SelectBenchmarks(all, scored)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, b := range got {
		names[i] = b.Name
	}
	assert.Equal(t, []string{
		"average",
		"dicarlo.Majaj2015.V4-pls",
		"dicarlo.Majaj2015.IT-pls",
		"fei-fei.Deng2009-top1",
	}, names)
}

func TestSelectBenchmarks_UnknownParent(t *testing.T) {
	_, err := SelectBenchmarks([]models.Benchmark{{Name: "x", Parent: ptr("V3")}}, []string{"x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, taxonomy.ErrUnknownCategory)
}

func TestSelectBenchmarks_UnscoredUnknownParentIgnored(t *testing.T) {
	got, err := SelectBenchmarks([]models.Benchmark{
		{Name: "average"},
		{Name: "x", Parent: ptr("V3")},
	}, []string{"average"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestComputeBounds(t *testing.T) {
	benchmarks := []models.Benchmark{{Name: "average"}, {Name: "b"}, {Name: "unscored"}}
	scores := []models.Score{
		{Model: "m1", Benchmark: "average", ScoreCeiled: ptr(0.4)},
		{Model: "m2", Benchmark: "average", ScoreCeiled: ptr(0.7)},
		{Model: "m1", Benchmark: "b", ScoreCeiled: ptr(0.3)},
		{Model: "m2", Benchmark: "b"},
		{Model: "m3", Benchmark: "ignored", ScoreCeiled: ptr(5.0)},
	}

	got := ComputeBounds(benchmarks, scores)
	want := map[string]Bounds{
		"average":  {Min: 0.4, Max: 0.7},
		"b":        {Min: 0, Max: 0.3},
		"unscored": {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeBounds mismatch (-want +got):\n%s", diff)
	}
}

func TestBaseIdentifier(t *testing.T) {
	tests := map[string]string{
		"alexnet":                 "alexnet",
		"resnet-50--imagenet":     "resnet-50",
		"cornet-s--v2--finetuned": "cornet-s",
		"--weird":                 "",
		"single-dash-name":        "single-dash-name",
	}
	for in, want := range tests {
		assert.Equal(t, want, BaseIdentifier(in), in)
	}
}

func TestFormatMeta(t *testing.T) {
	meta := []models.ModelMeta{
		{Key: "IT-layer", Value: "features.12"},
		{Key: "V1-layer", Value: "features.2"},
		{Key: "behavior-layer", Value: "classifier.6"},
		{Key: "V4-layer", Value: "features.8"},
	}
	got, err := FormatMeta(meta)
	require.NoError(t, err)
	assert.Equal(t, "V1-layer: features.2\nV4-layer: features.8\nIT-layer: features.12\nbehavior-layer: classifier.6", got)

	got, err = FormatMeta(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = FormatMeta([]models.ModelMeta{{Key: "params", Value: "61M"}})
	assert.ErrorIs(t, err, taxonomy.ErrUnknownCategory)
}

func TestScoreCell(t *testing.T) {
	b := Bounds{Min: 0.2, Max: 0.8}

	cell := ScoreCell(models.Score{Benchmark: "b", ScoreRaw: ptr(0.45), ScoreCeiled: ptr(0.5), Layer: ptr("conv3")}, b)
	assert.Equal(t, "b", cell.Benchmark)
	assert.Equal(t, ".450", cell.ScoreRaw)
	assert.Equal(t, ".500", cell.ScoreCeiled)
	assert.Equal(t, "conv3", cell.Layer)
	assert.Equal(t, display.RepresentativeColor(ptr(0.5), 0.2, 0.8), cell.Color)

	cell = ScoreCell(models.Score{Benchmark: "b", ScoreCeiled: ptr(0.5)}, b)
	assert.Equal(t, "X", cell.ScoreRaw)
	assert.Empty(t, cell.Layer)

	cell = ScoreCell(models.Score{Benchmark: "b"}, b)
	assert.Equal(t, ErrorCell("b", b), cell)
	assert.Equal(t, "X", cell.ScoreCeiled)
	assert.Equal(t, "background-color: "+display.NeutralColor, cell.Color)
}

func TestNotRunCell(t *testing.T) {
	cell := NotRunCell("b", Bounds{})
	assert.Equal(t, models.ScoreDisplay{
		Benchmark: "b",
		Color:     "background-color: " + display.NeutralColor,
		Layer:     LayerNotRun,
	}, cell)
}

func TestAssignRanks(t *testing.T) {
	rows := []models.ModelRow{{Name: "low"}, {Name: "high"}, {Name: "mid"}}
	ranked, err := AssignRanks(rows, map[string]float64{"low": 0.1, "high": 0.9, "mid": 0.5})
	require.NoError(t, err)

	ranks := map[string]int{}
	for _, r := range ranked {
		ranks[r.Name] = r.Rank
	}
	assert.Equal(t, map[string]int{"high": 1, "mid": 2, "low": 3}, ranks)
	assert.Equal(t, 0.1, ranked[0].Average)
	// Row order is kept; only ranks change.
	assert.Equal(t, "low", ranked[0].Name)
	assert.Zero(t, rows[0].Rank, "input rows are not mutated")
}

func TestAssignRanks_TiesGetDistinctRanks(t *testing.T) {
	rows := []models.ModelRow{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	ranked, err := AssignRanks(rows, map[string]float64{"A": 0.5, "B": 0.5, "C": 0.5, "D": 0.5})
	require.NoError(t, err)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank, r.Name)
	}
}

func TestAssignRanks_TieBetweenDistinctScores(t *testing.T) {
	rows := []models.ModelRow{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	ranked, err := AssignRanks(rows, map[string]float64{"A": 0.9, "B": 0.8, "C": 0.8, "D": 0.5})
	require.NoError(t, err)

	ranks := map[string]int{}
	for _, r := range ranked {
		ranks[r.Name] = r.Rank
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3, "D": 4}, ranks)
}

func TestAssignRanks_MissingAverage(t *testing.T) {
	_, err := AssignRanks([]models.ModelRow{{Name: "A"}, {Name: "B"}}, map[string]float64{"A": 0.5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAverage)
	assert.Contains(t, err.Error(), `"B"`)
}

func TestSortByRank(t *testing.T) {
	rows := []models.ModelRow{{Name: "c", Rank: 3}, {Name: "a", Rank: 1}, {Name: "b", Rank: 2}}
	sorted := SortByRank(rows)
	assert.Equal(t, "a", sorted[0].Name)
	assert.Equal(t, "b", sorted[1].Name)
	assert.Equal(t, "c", sorted[2].Name)
	assert.Equal(t, "c", rows[0].Name)
}

func TestDisplayNameAndColumns(t *testing.T) {
	assert.Equal(t, "Majaj2015.IT-pls", DisplayName("dicarlo.Majaj2015.IT-pls"))
	assert.Equal(t, "average", DisplayName("average"))
	assert.Equal(t, "trailing.", DisplayName("trailing."))

	cols := Columns([]models.Benchmark{
		{Name: "average"},
		{Name: "dicarlo.Majaj2015.IT-pls", Parent: ptr("IT"), Ceiling: ptr(0.817)},
	})
	want := []models.BenchmarkColumn{
		{Name: "average", DisplayName: "average", Ceiling: "X"},
		{Name: "dicarlo.Majaj2015.IT-pls", DisplayName: "Majaj2015.IT-pls", Parent: ptr("IT"), Ceiling: ".817"},
	}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
}

func sampleStore() *store.SnapshotStore {
	return store.NewSnapshotStoreFrom(&store.Snapshot{
		Benchmarks: []models.Benchmark{
			{Name: "average"},
			{Name: "dicarlo.Majaj2015.IT-pls", Parent: ptr("IT"), Ceiling: ptr(0.82)},
			{Name: "movshon.FreemanZiemba2013.V1-pls", Parent: ptr("V1")},
			{Name: "never.scored", Parent: ptr("V4")},
		},
		Scores: []models.Score{
			{ID: 1, Model: "m2", Benchmark: "average", ScoreCeiled: ptr(0.1)},
			{ID: 2, Model: "m1--variant", Benchmark: "average", ScoreCeiled: ptr(0.9)},
			{ID: 3, Model: "m1--variant", Benchmark: "dicarlo.Majaj2015.IT-pls", ScoreRaw: ptr(0.4), ScoreCeiled: ptr(0.5), Layer: ptr("layer3")},
			{ID: 4, Model: "m2", Benchmark: "movshon.FreemanZiemba2013.V1-pls"},
			{ID: 5, Model: "m2", Benchmark: "dicarlo.Majaj2015.IT-pls", ScoreCeiled: ptr(0.2)},
		},
		References: []models.ModelReference{
			{Model: "m1", ShortReference: "Doe et al. 2020", Link: "https://example.org/m1"},
		},
		Meta: []models.ModelMeta{
			{Model: "m1", Key: "IT-layer", Value: "layer3"},
			{Model: "m1", Key: "V1-layer", Value: "layer1"},
		},
	})
}

func TestBuild(t *testing.T) {
	page, err := Build(context.Background(), sampleStore())
	require.NoError(t, err)

	colNames := make([]string, len(page.Benchmarks))
	for i, c := range page.Benchmarks {
		colNames[i] = c.Name
	}
	assert.Equal(t, []string{"average", "movshon.FreemanZiemba2013.V1-pls", "dicarlo.Majaj2015.IT-pls"}, colNames)
	assert.Equal(t, ".820", page.Benchmarks[2].Ceiling)
	assert.Equal(t, "Majaj2015.IT-pls", page.Benchmarks[2].DisplayName)

	require.Len(t, page.Models, 2)
	m2, m1 := page.Models[0], page.Models[1]

	assert.Equal(t, "m2", m2.Name)
	assert.Equal(t, 2, m2.Rank)
	assert.Empty(t, m2.ReferenceIdentifier)
	assert.Empty(t, m2.Meta)

	assert.Equal(t, "m1--variant", m1.Name)
	assert.Equal(t, 1, m1.Rank)
	assert.Equal(t, "Doe et al. 2020", m1.ReferenceIdentifier)
	assert.Equal(t, "https://example.org/m1", m1.ReferenceLink)
	assert.Equal(t, "V1-layer: layer1\nIT-layer: layer3", m1.Meta)

	for _, row := range page.Models {
		require.Len(t, row.Scores, len(page.Benchmarks), row.Name)
		for i, cell := range row.Scores {
			assert.Equal(t, page.Benchmarks[i].Name, cell.Benchmark)
		}
	}

	// Average column: m1=0.9 is the benchmark max, m2=0.1 the min.
	assert.Equal(t, ".900", m1.Scores[0].ScoreCeiled)
	assert.InDelta(t, 1.0, alphaOf(t, m1.Scores[0].Color), 1e-9)
	assert.InDelta(t, 0.1, alphaOf(t, m2.Scores[0].Color), 1e-9)

	// m1 never ran V1; m2's V1 run errored.
	assert.Equal(t, LayerNotRun, m1.Scores[1].Layer)
	assert.Equal(t, "X", m2.Scores[1].ScoreRaw)
	assert.Empty(t, m2.Scores[1].Layer)

	assert.Equal(t, "layer3", m1.Scores[2].Layer)
	assert.Equal(t, ".400", m1.Scores[2].ScoreRaw)
}

func TestBuild_MissingAverage(t *testing.T) {
	s := store.NewSnapshotStoreFrom(&store.Snapshot{
		Benchmarks: []models.Benchmark{{Name: "average"}, {Name: "b", Parent: ptr("V1")}},
		Scores: []models.Score{
			{ID: 1, Model: "m1", Benchmark: "average", ScoreCeiled: ptr(0.5)},
			{ID: 2, Model: "m2", Benchmark: "b", ScoreCeiled: ptr(0.5)},
		},
	})
	_, err := Build(context.Background(), s)
	assert.ErrorIs(t, err, ErrMissingAverage)
}

func TestBuild_Empty(t *testing.T) {
	page, err := Build(context.Background(), store.NewSnapshotStoreFrom(&store.Snapshot{}))
	require.NoError(t, err)
	assert.Empty(t, page.Models)
	assert.Empty(t, page.Benchmarks)
}

func TestBuild_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockStore(ctrl)

	boom := errors.New("connection refused")
	s.EXPECT().ListBenchmarks(gomock.Any()).Return(nil, boom)
	s.EXPECT().ScoredBenchmarkNames(gomock.Any()).Return([]string{}, nil).AnyTimes()
	s.EXPECT().ListScores(gomock.Any()).Return([]models.Score{}, nil).AnyTimes()

	_, err := Build(context.Background(), s)
	assert.ErrorIs(t, err, boom)
}

func TestBuild_LooksUpReferenceByBaseIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockStore(ctrl)

	s.EXPECT().ListBenchmarks(gomock.Any()).Return([]models.Benchmark{{Name: "average"}, {Name: "b", Parent: ptr("IT")}}, nil)
	s.EXPECT().ScoredBenchmarkNames(gomock.Any()).Return([]string{"average", "b"}, nil)
	s.EXPECT().ListScores(gomock.Any()).Return([]models.Score{
		{ID: 1, Model: "net--a", Benchmark: "average", ScoreCeiled: ptr(0.3)},
		{ID: 2, Model: "net--a", Benchmark: "b", ScoreCeiled: ptr(0.3)},
		{ID: 3, Model: "net--b", Benchmark: "average", ScoreCeiled: ptr(0.2)},
		{ID: 4, Model: "net--b", Benchmark: "b", ScoreCeiled: ptr(0.3)},
	}, nil)
	// One lookup per model, keyed by the shared base identifier.
	s.EXPECT().Reference(gomock.Any(), "net").Return(&models.ModelReference{Model: "net", ShortReference: "Net 2020"}, nil).Times(2)
	s.EXPECT().Meta(gomock.Any(), "net").Return(nil, nil).Times(2)

	page, err := Build(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, page.Models, 2)
	for _, row := range page.Models {
		assert.Equal(t, "Net 2020", row.ReferenceIdentifier, row.Name)
	}
	assert.Equal(t, 1, page.Models[0].Rank)
	assert.Equal(t, 2, page.Models[1].Rank)
	// Both models score 0.3 on b: min == max, so the cell is opaque.
	assert.InDelta(t, 1.0, alphaOf(t, page.Models[0].Scores[1].Color), 1e-9)
}

func TestCollectBenchmarks(t *testing.T) {
	got, err := CollectBenchmarks(context.Background(), sampleStore())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "average", got[0].Name)
}
