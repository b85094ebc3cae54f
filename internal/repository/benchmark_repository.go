package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/aoc-web/internal/models"
)

// PostgresBenchmarkRepository implements BenchmarkRepository for PostgreSQL
type PostgresBenchmarkRepository struct {
	store store[*models.Benchmark, int]
}

// NewPostgresBenchmarkRepository creates a new benchmark repository
func NewPostgresBenchmarkRepository(db DBTX) BenchmarkRepository {
	return &PostgresBenchmarkRepository{
		store: store[*models.Benchmark, int]{
			db:      db,
			table:   BenchmarksTable,
			scan:    scanBenchmark,
			scanKey: scanID,
		},
	}
}

// scanBenchmark reads a row in BenchmarksTable column order.
func scanBenchmark(row pgx.Row) (*models.Benchmark, error) {
	b := &models.Benchmark{}
	err := row.Scan(
		&b.ID, &b.Year, &b.Day, &b.Input, &b.Participant, &b.Language,
		&b.Mean, &b.Stddev, &b.Median, &b.User, &b.System, &b.Min, &b.Max,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scanID(row pgx.Row) (int, error) {
	var id int
	err := row.Scan(&id)
	return id, err
}

// benchmarkValues lists b in BenchmarksTable insert column order.
func benchmarkValues(b models.BenchmarkCreate) []any {
	return []any{
		b.Year, b.Day, b.Input, b.Participant, b.Language,
		b.Mean, b.Stddev, b.Median, b.User, b.System, b.Min, b.Max,
	}
}

func benchmarkCond(f models.BenchmarkFilter) *Cond {
	cond := &Cond{}
	eq(cond, BenchmarksTable, "year", f.Year)
	eq(cond, BenchmarksTable, "day", f.Day)
	eq(cond, BenchmarksTable, "input", f.Input)
	eq(cond, BenchmarksTable, "participant", f.Participant)
	eq(cond, BenchmarksTable, "language", f.Language)
	return cond
}

// List returns every benchmark matching filter
func (r *PostgresBenchmarkRepository) List(ctx context.Context, filter models.BenchmarkFilter) ([]*models.Benchmark, error) {
	return r.store.list(ctx, benchmarkCond(filter))
}

// GetByID retrieves a benchmark by ID
func (r *PostgresBenchmarkRepository) GetByID(ctx context.Context, id int) (*models.Benchmark, error) {
	cond := (&Cond{}).Eq(BenchmarksTable.columnName("id"), id)
	return r.store.get(ctx, cond, strconv.Itoa(id))
}

// CreateOrUpdate creates a benchmark, or updates the existing one for the
// same year, day, input and participant.
func (r *PostgresBenchmarkRepository) CreateOrUpdate(ctx context.Context, benchmark models.BenchmarkCreate) (int, error) {
	ids, err := r.BatchCreateOrUpdate(ctx, []models.BenchmarkCreate{benchmark})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// BatchCreateOrUpdate creates or updates benchmarks in one statement and
// returns their ids in input order. Ids are not guaranteed to be contiguous.
func (r *PostgresBenchmarkRepository) BatchCreateOrUpdate(ctx context.Context, benchmarks []models.BenchmarkCreate) ([]int, error) {
	rows := make([][]any, 0, len(benchmarks))
	for _, b := range benchmarks {
		rows = append(rows, benchmarkValues(b))
	}
	return r.store.upsert(ctx, rows)
}
