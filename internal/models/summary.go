package models

import (
	"encoding/json"
	"fmt"
)

// NumDays is the number of puzzle days in one contest year.
const NumDays = 25

// Summary is one leaderboard row: the per-day and total average timings of a
// participant in a year. Days[i] holds day i+1 and is nil when no benchmark
// exists for that day. Total is nil only when every day is nil.
//
// Summaries are derived from benchmarks with SummariesFromBenchmarks and are
// never written by hand.
type Summary struct {
	Year        int
	Participant string
	Language    string
	Days        [NumDays]*float64
	Total       *float64
}

// Day returns the average for day (1-based), or nil when absent or out of range.
func (s *Summary) Day(day int) *float64 {
	if day < 1 || day > NumDays {
		return nil
	}
	return s.Days[day-1]
}

// Key returns the natural key of the summary.
func (s *Summary) Key() SummaryKey {
	return SummaryKey{Year: s.Year, Participant: s.Participant}
}

// DayField returns the column and JSON name for a 1-based day.
func DayField(day int) string {
	return fmt.Sprintf("day_%d", day)
}

type summaryHeader struct {
	Year        int      `json:"year"`
	Participant string   `json:"participant"`
	Language    string   `json:"language"`
	Total       *float64 `json:"total"`
}

// MarshalJSON flattens Days into day_1..day_25 fields.
func (s Summary) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"year":        s.Year,
		"participant": s.Participant,
		"language":    s.Language,
		"total":       s.Total,
	}
	for i, v := range s.Days {
		out[DayField(i+1)] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var header summaryHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Summary{
		Year:        header.Year,
		Participant: header.Participant,
		Language:    header.Language,
		Total:       header.Total,
	}
	for i := range s.Days {
		v, ok := raw[DayField(i+1)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, &s.Days[i]); err != nil {
			return fmt.Errorf("invalid %s: %w", DayField(i+1), err)
		}
	}
	return nil
}

// SummaryKey is the (year, participant) natural key.
type SummaryKey struct {
	Year        int    `json:"year"`
	Participant string `json:"participant"`
}

func (k SummaryKey) String() string {
	return fmt.Sprintf("%d/%s", k.Year, k.Participant)
}

// SummaryFilter selects summaries by exact match on every non-nil field.
type SummaryFilter struct {
	Year        *int    `json:"year,omitempty"`
	Participant *string `json:"participant,omitempty"`
	Language    *string `json:"language,omitempty"`
}

// SummariesFromBenchmarks folds benchmarks into one summary per (year,
// participant). Each day is the mean of that day's benchmark means across
// inputs, and the total is the sum of the days present.
//
// The input must be the complete benchmark set for every year it touches:
// upserting summaries built from a partial set replaces previously stored
// days with nil.
//
// The order of the returned summaries is unspecified.
func SummariesFromBenchmarks(benchmarks []*Benchmark) ([]*Summary, error) {
	for _, b := range benchmarks {
		if b.Day < 1 || b.Day > NumDays {
			return nil, &DayOutOfRangeError{Day: b.Day}
		}
	}

	years := make(map[int]map[string]*summaryAccumulator)
	for _, b := range benchmarks {
		participants, ok := years[b.Year]
		if !ok {
			participants = make(map[string]*summaryAccumulator)
			years[b.Year] = participants
		}

		acc, ok := participants[b.Participant]
		if !ok {
			// first language seen wins; later ones are not reconciled
			acc = &summaryAccumulator{
				year:        b.Year,
				participant: b.Participant,
				language:    b.Language,
			}
			participants[b.Participant] = acc
		}

		acc.add(b)
	}

	out := make([]*Summary, 0)
	for _, participants := range years {
		for _, acc := range participants {
			out = append(out, acc.summary())
		}
	}

	return out, nil
}

type summaryAccumulator struct {
	year        int
	participant string
	language    string
	days        [NumDays][]float64
}

// add assumes the day was already range checked.
func (a *summaryAccumulator) add(b *Benchmark) {
	a.days[b.Day-1] = append(a.days[b.Day-1], b.Mean)
}

func (a *summaryAccumulator) average(idx int) *float64 {
	values := a.days[idx]
	if len(values) == 0 {
		return nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

func (a *summaryAccumulator) summary() *Summary {
	s := &Summary{
		Year:        a.year,
		Participant: a.participant,
		Language:    a.language,
	}

	var total float64
	present := false
	for i := range s.Days {
		avg := a.average(i)
		if avg == nil {
			continue
		}
		s.Days[i] = avg
		total += *avg
		present = true
	}

	if present {
		s.Total = &total
	}

	return s
}
