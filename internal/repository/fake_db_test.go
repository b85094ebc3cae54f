package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB records every statement and answers with queued results.
type fakeDB struct {
	queries []recordedQuery
	results []fakeResult
}

type recordedQuery struct {
	sql  string
	args []any
}

type fakeResult struct {
	rows [][]any
	err  error
}

func (f *fakeDB) push(rows [][]any, err error) *fakeDB {
	f.results = append(f.results, fakeResult{rows: rows, err: err})
	return f
}

func (f *fakeDB) next(sql string, args []any) fakeResult {
	f.queries = append(f.queries, recordedQuery{sql: sql, args: args})
	if len(f.results) == 0 {
		return fakeResult{}
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r
}

func (f *fakeDB) last() recordedQuery {
	return f.queries[len(f.queries)-1]
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := f.next(sql, args)
	if r.err != nil {
		return nil, r.err
	}
	return &fakeRows{rows: r.rows, pos: -1}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r := f.next(sql, args)
	return &fakeRow{rows: r.rows, err: r.err}
}

type fakeRow struct {
	rows [][]any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(r.rows) == 0 {
		return pgx.ErrNoRows
	}
	return scanInto(r.rows[0], dest)
}

type fakeRows struct {
	rows   [][]any
	pos    int
	closed bool
	err    error
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(r.rows[r.pos], dest)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos], nil
}

// scanInto assigns values positionally, turning nil into the zero value and
// wrapping plain values when the destination is a pointer field.
func scanInto(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		dv := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		sv := reflect.ValueOf(v)
		switch {
		case sv.Type().AssignableTo(dv.Type()):
			dv.Set(sv)
		case dv.Kind() == reflect.Pointer && sv.Type().AssignableTo(dv.Type().Elem()):
			p := reflect.New(dv.Type().Elem())
			p.Elem().Set(sv)
			dv.Set(p)
		default:
			return fmt.Errorf("scan: cannot assign %T to %s", v, dv.Type())
		}
	}
	return nil
}
