package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/aoc-web/internal/models"
)

// Column maps a logical field name, as used by filters and payloads, to the
// physical column it is stored in.
type Column struct {
	Field string
	Name  string
}

func col(field string) Column {
	return Column{Field: field, Name: field}
}

func renamed(field, name string) Column {
	return Column{Field: field, Name: name}
}

// Table describes one entity's storage: its name and the ordered, exhaustive
// list of its columns. The column order is the SELECT projection order and
// the INSERT column order; scan functions depend on it.
type Table struct {
	name    string
	columns []Column
	// key holds the conflict target fields.
	key []string
	// generated fields are assigned by the database and never inserted.
	generated []string
	// constraint, when set, names the unique constraint used as the
	// conflict target instead of the key column list.
	constraint string
}

// Tables
var (
	BenchmarksTable = &Table{
		name: "benchmarks",
		columns: []Column{
			col("id"),
			col("year"),
			col("day"),
			col("input"),
			col("participant"),
			col("language"),
			col("mean"),
			col("stddev"),
			col("median"),
			renamed("user", "tuser"),
			renamed("system", "tsystem"),
			renamed("min", "tmin"),
			renamed("max", "tmax"),
		},
		key:        []string{"year", "day", "input", "participant"},
		generated:  []string{"id"},
		constraint: "single_entry",
	}

	ParticipantsTable = &Table{
		name: "participants",
		columns: []Column{
			col("year"),
			col("name"),
			col("language"),
			col("repo"),
		},
		key: []string{"year", "name"},
	}

	SummariesTable = newSummariesTable()
)

func newSummariesTable() *Table {
	columns := []Column{col("year"), col("participant"), col("language")}
	for day := 1; day <= models.NumDays; day++ {
		columns = append(columns, col(models.DayField(day)))
	}
	columns = append(columns, col("total"))

	return &Table{
		name:    "summaries",
		columns: columns,
		key:     []string{"year", "participant"},
	}
}

// Name returns the storage name of the table.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the ordered column list.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the physical column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks up a column by its logical field name.
func (t *Table) Column(field string) (Column, bool) {
	for _, c := range t.columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// columnName resolves a field to its physical name. Unknown fields are a
// programming error.
func (t *Table) columnName(field string) string {
	c, ok := t.Column(field)
	if !ok {
		panic(fmt.Sprintf("repository: %s has no field %q", t.name, field))
	}
	return c.Name
}

// InsertColumns returns the physical names of every non-generated column.
func (t *Table) InsertColumns() []string {
	var names []string
	for _, c := range t.columns {
		if !contains(t.generated, c.Field) {
			names = append(names, c.Name)
		}
	}
	return names
}

// MutableColumns returns the physical names of the columns an upsert
// overwrites on conflict: everything except key and generated columns.
func (t *Table) MutableColumns() []string {
	var names []string
	for _, c := range t.columns {
		if !contains(t.generated, c.Field) && !contains(t.key, c.Field) {
			names = append(names, c.Name)
		}
	}
	return names
}

// KeyColumns returns the physical names of the conflict target columns.
func (t *Table) KeyColumns() []string {
	names := make([]string, 0, len(t.key))
	for _, field := range t.key {
		names = append(names, t.columnName(field))
	}
	return names
}

// returningColumns is what an upsert hands back: the generated id when the
// table has one, the natural key otherwise.
func (t *Table) returningColumns() []string {
	if len(t.generated) == 0 {
		return t.KeyColumns()
	}
	names := make([]string, 0, len(t.generated))
	for _, field := range t.generated {
		names = append(names, t.columnName(field))
	}
	return names
}

func (t *Table) conflictTarget() string {
	if t.constraint != "" {
		return "ON CONSTRAINT " + quote(t.constraint)
	}
	return "(" + quoteList(t.KeyColumns()) + ")"
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return quoted
}

func quoteList(names []string) string {
	return strings.Join(quoteAll(names), ", ")
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
