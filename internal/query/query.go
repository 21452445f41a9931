// Package query composes SELECT statements from optional equality and relation predicates.
//
// A [Query] starts as "all rows of a table" and is narrowed by AND-composed predicates.
// Relation predicates render as EXISTS subqueries so a parent row is returned once no
// matter how many of its children match. Rendering is delegated to a [dialect.Dialect].
package query

import (
	"strings"

	"github.com/desertthunder/panelstore/internal/dialect"
	"github.com/desertthunder/panelstore/internal/schema"
)

// Cond is an equality condition on a single column.
type Cond struct {
	Column string
	Value  any
	absent bool
}

// Eq returns a condition requiring column = value.
func Eq(column string, value any) Cond {
	return Cond{Column: column, Value: value}
}

// Opt returns a condition on column when value is set, and an ignored condition when it is nil.
func Opt[T any](column string, value *T) Cond {
	if value == nil {
		return Cond{Column: column, absent: true}
	}
	return Cond{Column: column, Value: *value}
}

// Present reports whether the condition constrains anything.
func (c Cond) Present() bool {
	return !c.absent
}

type predicate interface {
	render(d dialect.Dialect, table string, args *[]any) string
}

type eqPredicate struct {
	cond Cond
}

func (p eqPredicate) render(d dialect.Dialect, table string, args *[]any) string {
	*args = append(*args, p.cond.Value)
	return column(d, table, p.cond.Column) + " = " + d.Placeholder(len(*args))
}

type existsPredicate struct {
	rel   schema.Relation
	conds []Cond
}

func (p existsPredicate) render(d dialect.Dialect, table string, args *[]any) string {
	var b strings.Builder
	b.WriteString("EXISTS (SELECT 1 FROM ")
	b.WriteString(d.Quote(p.rel.Child))
	b.WriteString(" WHERE ")
	b.WriteString(column(d, p.rel.Child, p.rel.ForeignKey))
	b.WriteString(" = ")
	b.WriteString(column(d, table, p.rel.References))
	for _, c := range p.conds {
		b.WriteString(" AND ")
		b.WriteString(eqPredicate{cond: c}.render(d, p.rel.Child, args))
	}
	b.WriteString(")")
	return b.String()
}

// Query is a composable SELECT over one table.
//
// Builder methods modify the receiver and return it for chaining.
type Query struct {
	table   string
	columns []string
	preds   []predicate
	limit   *int64
	offset  *int64
}

// From starts a query selecting columns from every row of table.
func From(table string, columns ...string) *Query {
	return &Query{table: table, columns: columns}
}

// Table returns the table the query reads.
func (q *Query) Table() string {
	return q.table
}

// Where adds an equality predicate per present condition.
func (q *Query) Where(conds ...Cond) *Query {
	for _, c := range conds {
		if c.Present() {
			q.preds = append(q.preds, eqPredicate{cond: c})
		}
	}
	return q
}

// WhereHas requires at least one related child row matching every present condition.
//
// The relation's parent must be the query's table. When no condition is present the
// query is left unchanged.
func (q *Query) WhereHas(rel schema.Relation, conds ...Cond) *Query {
	var present []Cond
	for _, c := range conds {
		if c.Present() {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return q
	}
	q.preds = append(q.preds, existsPredicate{rel: rel, conds: present})
	return q
}

// Limit caps the number of rows returned by [Run].
func (q *Query) Limit(n int64) *Query {
	q.limit = &n
	return q
}

// Offset skips the first n rows returned by [Run].
func (q *Query) Offset(n int64) *Query {
	q.offset = &n
	return q
}

// Page applies limit and offset when they are set.
func (q *Query) Page(limit, offset *int64) *Query {
	if limit != nil {
		q.Limit(*limit)
	}
	if offset != nil {
		q.Offset(*offset)
	}
	return q
}

// SQL renders the SELECT statement and its arguments.
func (q *Query) SQL(d dialect.Dialect) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, c := range q.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(column(d, q.table, c))
	}
	if len(q.columns) == 0 {
		b.WriteString("*")
	}
	b.WriteString(" FROM ")
	b.WriteString(d.Quote(q.table))

	args := q.where(d, &b)
	b.WriteString(d.Paginate(q.limit, q.offset))
	return b.String(), args
}

// CountSQL renders a COUNT(*) over the same predicates, ignoring limit and offset.
func (q *Query) CountSQL(d dialect.Dialect) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(d.Quote(q.table))
	args := q.where(d, &b)
	return b.String(), args
}

func (q *Query) where(d dialect.Dialect, b *strings.Builder) []any {
	args := []any{}
	for i, p := range q.preds {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(p.render(d, q.table, &args))
	}
	return args
}

func column(d dialect.Dialect, table, name string) string {
	return d.Quote(table) + "." + d.Quote(name)
}
