package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/aoc-web/internal/models"
)

// PostgresSummaryRepository implements SummaryRepository for PostgreSQL
type PostgresSummaryRepository struct {
	store store[*models.Summary, models.SummaryKey]
}

// NewPostgresSummaryRepository creates a new summary repository
func NewPostgresSummaryRepository(db DBTX) SummaryRepository {
	return &PostgresSummaryRepository{
		store: store[*models.Summary, models.SummaryKey]{
			db:      db,
			table:   SummariesTable,
			scan:    scanSummary,
			scanKey: scanSummaryKey,
		},
	}
}

func scanSummary(row pgx.Row) (*models.Summary, error) {
	s := &models.Summary{}
	dest := make([]any, 0, len(SummariesTable.columns))
	dest = append(dest, &s.Year, &s.Participant, &s.Language)
	for i := range s.Days {
		dest = append(dest, &s.Days[i])
	}
	dest = append(dest, &s.Total)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return s, nil
}

func scanSummaryKey(row pgx.Row) (models.SummaryKey, error) {
	var k models.SummaryKey
	err := row.Scan(&k.Year, &k.Participant)
	return k, err
}

func summaryValues(s *models.Summary) []any {
	values := make([]any, 0, len(SummariesTable.columns))
	values = append(values, s.Year, s.Participant, s.Language)
	for _, d := range s.Days {
		values = append(values, d)
	}
	return append(values, s.Total)
}

func summaryCond(f models.SummaryFilter) *Cond {
	cond := &Cond{}
	eq(cond, SummariesTable, "year", f.Year)
	eq(cond, SummariesTable, "participant", f.Participant)
	eq(cond, SummariesTable, "language", f.Language)
	return cond
}

// List returns every summary matching filter
func (r *PostgresSummaryRepository) List(ctx context.Context, filter models.SummaryFilter) ([]*models.Summary, error) {
	return r.store.list(ctx, summaryCond(filter))
}

// Get retrieves the summary of a participant for a year
func (r *PostgresSummaryRepository) Get(ctx context.Context, year int, participant string) (*models.Summary, error) {
	key := models.SummaryKey{Year: year, Participant: participant}
	cond := &Cond{}
	cond.Eq(SummariesTable.columnName("year"), year).
		Eq(SummariesTable.columnName("participant"), participant)
	return r.store.get(ctx, cond, key.String())
}

// BatchCreateOrUpdate replaces language, every day and the total of existing
// summaries, creating the missing ones. Summaries must come from
// models.SummariesFromBenchmarks over the complete benchmark set of a year.
func (r *PostgresSummaryRepository) BatchCreateOrUpdate(ctx context.Context, summaries []*models.Summary) ([]models.SummaryKey, error) {
	rows := make([][]any, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, summaryValues(s))
	}
	return r.store.upsert(ctx, rows)
}
