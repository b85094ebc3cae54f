package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/aoc-web/internal/models"
)

func TestBenchmarksTableDescriptor(t *testing.T) {
	assert.Equal(t, "benchmarks", BenchmarksTable.Name())
	assert.Equal(t, []string{
		"id", "year", "day", "input", "participant", "language",
		"mean", "stddev", "median", "tuser", "tsystem", "tmin", "tmax",
	}, BenchmarksTable.ColumnNames())

	user, ok := BenchmarksTable.Column("user")
	require.True(t, ok)
	assert.Equal(t, "tuser", user.Name)

	_, ok = BenchmarksTable.Column("tuser")
	assert.False(t, ok, "lookup is by logical field name")

	assert.NotContains(t, BenchmarksTable.InsertColumns(), "id")
	assert.Len(t, BenchmarksTable.InsertColumns(), 12)
	assert.Equal(t, []string{
		"language", "mean", "stddev", "median", "tuser", "tsystem", "tmin", "tmax",
	}, BenchmarksTable.MutableColumns())
	assert.Equal(t, []string{"id"}, BenchmarksTable.returningColumns())
}

func TestParticipantsTableDescriptor(t *testing.T) {
	assert.Equal(t, "participants", ParticipantsTable.Name())
	assert.Equal(t, []string{"year", "name", "language", "repo"}, ParticipantsTable.InsertColumns())
	assert.Equal(t, []string{"language", "repo"}, ParticipantsTable.MutableColumns())
	assert.Equal(t, []string{"year", "name"}, ParticipantsTable.KeyColumns())
	assert.Equal(t, []string{"year", "name"}, ParticipantsTable.returningColumns())
}

func TestSummariesTableDescriptor(t *testing.T) {
	names := SummariesTable.ColumnNames()
	require.Len(t, names, 3+models.NumDays+1)
	assert.Equal(t, []string{"year", "participant", "language", "day_1"}, names[:4])
	assert.Equal(t, "day_25", names[len(names)-2])
	assert.Equal(t, "total", names[len(names)-1])

	mutable := SummariesTable.MutableColumns()
	assert.Len(t, mutable, models.NumDays+2)
	assert.NotContains(t, mutable, "year")
	assert.NotContains(t, mutable, "participant")
	assert.Contains(t, mutable, "total")
}

func TestColumnsReturnsCopy(t *testing.T) {
	cols := ParticipantsTable.Columns()
	cols[0].Name = "changed"
	assert.Equal(t, "year", ParticipantsTable.ColumnNames()[0])
}

func TestColumnNameUnknownFieldPanics(t *testing.T) {
	assert.Panics(t, func() { ParticipantsTable.columnName("nope") })
}

func TestCondWhere(t *testing.T) {
	sql, args, err := selectSQL(ParticipantsTable, nil)
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)

	cond := &Cond{}
	cond.Eq("year", 2023).Eq("name", "foo")
	assert.Equal(t, 2, cond.len())

	sql, args, err = selectSQL(ParticipantsTable, cond)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, ` FROM "participants" WHERE "year" = $1 AND "name" = $2`), sql)
	assert.Equal(t, []any{2023, "foo"}, args)
}

func TestBenchmarkCondSkipsAbsentFields(t *testing.T) {
	assert.Equal(t, 0, benchmarkCond(models.BenchmarkFilter{}).len())

	input := "input-bar"
	day := 4
	sql, args, err := selectSQL(BenchmarksTable, benchmarkCond(models.BenchmarkFilter{Day: &day, Input: &input}))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, ` WHERE "day" = $1 AND "input" = $2`), sql)
	assert.Equal(t, []any{4, "input-bar"}, args)
}

func TestSelectSQL(t *testing.T) {
	sql, args, err := selectSQL(ParticipantsTable, &Cond{})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "year", "name", "language", "repo" FROM "participants"`, sql)
	assert.Empty(t, args)

	year := 2022
	sql, args, err = selectSQL(SummariesTable, summaryCond(models.SummaryFilter{Year: &year}))
	require.NoError(t, err)
	assert.Contains(t, sql, `"day_13"`)
	assert.Contains(t, sql, ` FROM "summaries" WHERE "year" = $1`)
	assert.Equal(t, []any{2022}, args)
}

func TestUpsertSQLParticipants(t *testing.T) {
	sql, args, err := upsertSQL(ParticipantsTable, [][]any{
		{2023, "foo", "ruby", "https://foobar/foo"},
		{2022, "bar", "php", "https://foobar/bar"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`INSERT INTO "participants" ("year","name","language","repo") `+
			`VALUES ($1,$2,$3,$4),($5,$6,$7,$8) `+
			`ON CONFLICT ("year", "name") DO UPDATE SET "language" = EXCLUDED."language", "repo" = EXCLUDED."repo" `+
			`RETURNING "year", "name"`,
		sql)
	assert.Equal(t, []any{2023, "foo", "ruby", "https://foobar/foo", 2022, "bar", "php", "https://foobar/bar"}, args)
}

func TestUpsertSQLBenchmarks(t *testing.T) {
	sql, args, err := upsertSQL(BenchmarksTable, [][]any{
		benchmarkValues(models.BenchmarkCreate{Year: 2023, Day: 1, Input: "a", Participant: "foo", Language: "go"}),
	})
	require.NoError(t, err)

	assert.Contains(t, sql, `INSERT INTO "benchmarks" ("year","day","input","participant","language","mean","stddev","median","tuser","tsystem","tmin","tmax") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`)
	assert.Contains(t, sql, `ON CONFLICT ON CONSTRAINT "single_entry" DO UPDATE SET "language" = EXCLUDED."language"`)
	assert.Contains(t, sql, `"tmax" = EXCLUDED."tmax" RETURNING "id"`)
	assert.NotContains(t, sql, `"year" = EXCLUDED`)
	assert.NotContains(t, sql, `"input" = EXCLUDED`)
	assert.Len(t, args, 12)
}
