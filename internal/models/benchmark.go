package models

// Benchmark is one timing submission for a participant's solution to one
// day and input variant. All timings are in seconds.
type Benchmark struct {
	ID          int     `db:"id" json:"id"`
	Year        int     `db:"year" json:"year"`
	Day         int     `db:"day" json:"day"`
	Input       string  `db:"input" json:"input"`
	Participant string  `db:"participant" json:"participant"`
	Language    string  `db:"language" json:"language"`
	Mean        float64 `db:"mean" json:"mean"`
	Stddev      float64 `db:"stddev" json:"stddev"`
	Median      float64 `db:"median" json:"median"`
	User        float64 `db:"tuser" json:"user"`
	System      float64 `db:"tsystem" json:"system"`
	Min         float64 `db:"tmin" json:"min"`
	Max         float64 `db:"tmax" json:"max"`
}

// BenchmarkCreate is the payload for creating or updating a benchmark. The
// id is assigned by the database.
type BenchmarkCreate struct {
	Year        int     `json:"year" validate:"required,gt=0"`
	Day         int     `json:"day" validate:"required,min=1,max=25"`
	Input       string  `json:"input" validate:"required"`
	Participant string  `json:"participant" validate:"required"`
	Language    string  `json:"language" validate:"required"`
	Mean        float64 `json:"mean" validate:"gte=0"`
	Stddev      float64 `json:"stddev" validate:"gte=0"`
	Median      float64 `json:"median" validate:"gte=0"`
	User        float64 `json:"user" validate:"gte=0"`
	System      float64 `json:"system" validate:"gte=0"`
	Min         float64 `json:"min" validate:"gte=0"`
	Max         float64 `json:"max" validate:"gte=0"`
}

// BenchmarkFilter selects benchmarks by exact match on every non-nil field.
type BenchmarkFilter struct {
	Year        *int    `json:"year,omitempty"`
	Day         *int    `json:"day,omitempty"`
	Input       *string `json:"input,omitempty"`
	Participant *string `json:"participant,omitempty"`
	Language    *string `json:"language,omitempty"`
}
