package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/aoc-web/internal/metrics"
	"github.com/yourusername/aoc-web/internal/models"
)

// DBTX is the subset of the pgx API the repositories need. *pgxpool.Pool,
// *pgx.Conn, pgx.Tx and *database.DB all satisfy it.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql renders $n placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// selectSQL builds SELECT <all columns> FROM <table> [WHERE <cond>].
func selectSQL(t *Table, cond *Cond) (string, []any, error) {
	b := psql.Select(quoteAll(t.ColumnNames())...).From(quote(t.Name()))
	return cond.apply(b).ToSql()
}

// upsertSQL builds one multi-row INSERT with an ON CONFLICT DO UPDATE clause
// over the table's mutable columns. Each row must hold one value per insert
// column, in descriptor order.
func upsertSQL(t *Table, rows [][]any) (string, []any, error) {
	b := psql.Insert(quote(t.Name())).Columns(quoteAll(t.InsertColumns())...)
	for _, row := range rows {
		b = b.Values(row...)
	}

	mutable := t.MutableColumns()
	sets := make([]string, len(mutable))
	for i, c := range mutable {
		sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", quote(c), quote(c))
	}

	return b.Suffix(fmt.Sprintf("ON CONFLICT %s DO UPDATE SET %s RETURNING %s",
		t.conflictTarget(), strings.Join(sets, ", "), quoteList(t.returningColumns()))).
		ToSql()
}

// store implements list, get and batch upsert once for every entity. T is
// the entity type and K the key type an upsert returns.
type store[T any, K any] struct {
	db      DBTX
	table   *Table
	scan    func(pgx.Row) (T, error)
	scanKey func(pgx.Row) (K, error)
}

func (s *store[T, K]) list(ctx context.Context, cond *Cond) (_ []T, err error) {
	defer metrics.ObserveStoreQuery(s.table.Name(), "list", time.Now(), &err)

	sql, args, err := selectSQL(s.table, cond)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", s.table.Name(), err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table.Name(), err)
	}

	entities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return s.scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.table.Name(), err)
	}

	return entities, nil
}

func (s *store[T, K]) get(ctx context.Context, cond *Cond, key string) (_ T, err error) {
	defer metrics.ObserveStoreQuery(s.table.Name(), "get", time.Now(), &err)

	sql, args, err := selectSQL(s.table, cond)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to build %s query: %w", s.table.Name(), err)
	}

	entity, err := s.scan(s.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, &models.EntityNotFoundError{Table: s.table.Name(), Key: key}
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s %s: %w", s.table.Name(), key, err)
	}

	return entity, nil
}

// upsert writes every row in a single statement and returns the keys in
// statement order. For tables with a generated id the sequence advances for
// rows that end up as updates too, so returned ids can have gaps.
func (s *store[T, K]) upsert(ctx context.Context, rows [][]any) (_ []K, err error) {
	if len(rows) == 0 {
		return nil, &models.EmptyBatchError{Table: s.table.Name()}
	}

	defer metrics.ObserveStoreQuery(s.table.Name(), "upsert", time.Now(), &err)
	metrics.ObserveUpsertBatch(s.table.Name(), len(rows))

	sql, args, err := upsertSQL(s.table, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s upsert: %w", s.table.Name(), err)
	}

	result, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert %s: %w", s.table.Name(), err)
	}

	keys, err := pgx.CollectRows(result, func(row pgx.CollectableRow) (K, error) {
		return s.scanKey(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert %s: %w", s.table.Name(), err)
	}

	return keys, nil
}
