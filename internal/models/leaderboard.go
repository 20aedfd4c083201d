package models

// ScoreDisplay is a single rendered cell of the leaderboard.
type ScoreDisplay struct {
	Benchmark   string `json:"benchmark"`
	ScoreRaw    string `json:"score_raw"`
	ScoreCeiled string `json:"score_ceiled"`
	Color       string `json:"color"`
	Layer       string `json:"layer,omitempty"`
}

// ModelRow is one model's line in the leaderboard. Scores holds exactly one
// cell per benchmark column, in column order.
type ModelRow struct {
	Name                string         `json:"name"`
	ReferenceIdentifier string         `json:"reference_identifier,omitempty"`
	ReferenceLink       string         `json:"reference_link,omitempty"`
	Meta                string         `json:"meta,omitempty"`
	Rank                int            `json:"rank"`
	Average             float64        `json:"average"`
	Scores              []ScoreDisplay `json:"scores"`
}

// WithRank returns a copy of the row with the given rank.
func (r ModelRow) WithRank(rank int) ModelRow {
	r.Rank = rank
	return r
}

// WithScores returns a copy of the row holding the given cells.
func (r ModelRow) WithScores(scores []ScoreDisplay) ModelRow {
	r.Scores = scores
	return r
}

// BenchmarkColumn is a benchmark as shown in the table header.
type BenchmarkColumn struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Parent      *string `json:"parent,omitempty"`
	Ceiling     string  `json:"ceiling"`
}

// Page is the full template context for the leaderboard.
type Page struct {
	Models     []ModelRow        `json:"models"`
	Benchmarks []BenchmarkColumn `json:"benchmarks"`
}
