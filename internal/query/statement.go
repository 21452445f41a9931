package query

import (
	"strings"

	"github.com/desertthunder/panelstore/internal/dialect"
)

// Insert renders an INSERT of columns into table. A non-empty returning column
// appends RETURNING so storage assigned keys can be read back.
func Insert(d dialect.Dialect, table string, columns []string, returning string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.Quote(table))
	b.WriteString(" (")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Quote(c))
	}
	b.WriteString(") VALUES (")
	for i := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Placeholder(i + 1))
	}
	b.WriteString(")")
	if returning != "" {
		b.WriteString(" RETURNING ")
		b.WriteString(d.Quote(returning))
	}
	return b.String()
}

// Update renders an UPDATE of columns keyed on key. Arguments are the column values
// in order followed by the key value.
func Update(d dialect.Dialect, table string, columns []string, key string) string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(d.Quote(table))
	b.WriteString(" SET ")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Quote(c))
		b.WriteString(" = ")
		b.WriteString(d.Placeholder(i + 1))
	}
	b.WriteString(" WHERE ")
	b.WriteString(d.Quote(key))
	b.WriteString(" = ")
	b.WriteString(d.Placeholder(len(columns) + 1))
	return b.String()
}

// Delete renders a DELETE keyed on key.
func Delete(d dialect.Dialect, table, key string) string {
	return "DELETE FROM " + d.Quote(table) + " WHERE " + d.Quote(key) + " = " + d.Placeholder(1)
}
