package models

import "github.com/uptrace/bun"

// Benchmark is a stored benchmark definition.
type Benchmark struct {
	bun.BaseModel `bun:"table:benchmarks_benchmark,alias:b"`

	Name    string   `bun:"name,pk" json:"name" mapstructure:"name"`
	Parent  *string  `bun:"parent" json:"parent,omitempty" mapstructure:"parent"`
	Ceiling *float64 `bun:"ceiling" json:"ceiling,omitempty" mapstructure:"ceiling"`
}

// Score is one model's result on one benchmark.
type Score struct {
	bun.BaseModel `bun:"table:benchmarks_score,alias:s"`

	ID          int64    `bun:"id,pk,autoincrement" json:"id,omitempty" mapstructure:"id"`
	Model       string   `bun:"model,notnull" json:"model" mapstructure:"model"`
	Benchmark   string   `bun:"benchmark,notnull" json:"benchmark" mapstructure:"benchmark"`
	ScoreRaw    *float64 `bun:"score_raw" json:"score_raw,omitempty" mapstructure:"score_raw"`
	ScoreCeiled *float64 `bun:"score_ceiled" json:"score_ceiled,omitempty" mapstructure:"score_ceiled"`
	Layer       *string  `bun:"layer" json:"layer,omitempty" mapstructure:"layer"`
}

// ModelReference links a model family to its publication.
type ModelReference struct {
	bun.BaseModel `bun:"table:benchmarks_modelreference,alias:mr"`

	ID             int64  `bun:"id,pk,autoincrement" json:"-" mapstructure:"-"`
	Model          string `bun:"model,notnull" json:"model" mapstructure:"model"`
	ShortReference string `bun:"short_reference" json:"short_reference" mapstructure:"short_reference"`
	Link           string `bun:"link" json:"link" mapstructure:"link"`
}

// ModelMeta is a free-form annotation on a model family.
type ModelMeta struct {
	bun.BaseModel `bun:"table:benchmarks_modelmeta,alias:mm"`

	ID    int64  `bun:"id,pk,autoincrement" json:"-" mapstructure:"-"`
	Model string `bun:"model,notnull" json:"model" mapstructure:"model"`
	Key   string `bun:"key,notnull" json:"key" mapstructure:"key"`
	Value string `bun:"value" json:"value" mapstructure:"value"`
}
