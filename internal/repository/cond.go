package repository

import (
	sq "github.com/Masterminds/squirrel"
)

// Cond is a conjunction of equality predicates. The zero value matches
// every row.
type Cond struct {
	preds []sq.Eq
}

// Eq adds "column = value" to the conjunction.
func (c *Cond) Eq(column string, value any) *Cond {
	c.preds = append(c.preds, sq.Eq{quote(column): value})
	return c
}

func (c *Cond) len() int {
	if c == nil {
		return 0
	}
	return len(c.preds)
}

// apply adds each predicate as its own WHERE part, so they render ANDed in
// the order they were added. An empty Cond leaves b without a WHERE clause.
func (c *Cond) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if c == nil {
		return b
	}
	for _, p := range c.preds {
		b = b.Where(p)
	}
	return b
}

// eq adds a predicate on field only when v is set.
func eq[T any](c *Cond, t *Table, field string, v *T) {
	if v == nil {
		return
	}
	c.Eq(t.columnName(field), *v)
}
