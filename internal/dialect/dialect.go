// Package dialect isolates every engine specific piece of SQL behind the [Dialect] interface.
//
// Backends register themselves by name in init(); callers select one from configuration
// with [Get] and never inspect driver types at runtime.
package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/desertthunder/panelstore/internal/schema"
	"github.com/pressly/goose/v3"
)

// Querier is the subset of [sql.DB] / [sql.Tx] used for introspection.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Dialect exposes the primitives the query builder, migrations and validator need.
type Dialect interface {
	Name() string                         // Name is the config name ("sqlite", "postgres")
	DriverName() string                   // DriverName is the database/sql driver to open
	Goose() goose.Dialect                 // Goose is the dialect used for the migration version table
	Placeholder(n int) string             // Placeholder renders the n-th (1-based) bind parameter
	Quote(ident string) string            // Quote quotes an identifier
	Paginate(limit, offset *int64) string // Paginate renders LIMIT/OFFSET, empty when both are nil

	CreateTable(t *schema.Table) string
	DropTable(name string) string
	AddColumn(table string, c schema.Column) string
	CreateIndex(name, table, column string) string
	DropIndex(name string) string

	// Columns returns the live columns of table, or none when the table does not exist.
	Columns(ctx context.Context, q Querier, table string) ([]schema.LiveColumn, error)
	// SameType reports whether a live column type satisfies the declared type.
	SameType(want schema.Type, got string) bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Dialect)
)

// Register adds a dialect factory to the registry.
// Called by dialect implementations in their init() functions.
func Register(name string, factory func() Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get returns a new instance of the named dialect.
func Get(name string) (Dialect, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, &UnknownDialectError{Name: name, Available: available()}
	}
	return factory(), nil
}

// List returns all registered dialect names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return available()
}

func available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownDialectError is returned when an unregistered dialect is requested.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// quoteDouble quotes an identifier with ANSI double quotes.
func quoteDouble(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// createTable renders CREATE TABLE with a dialect specific column renderer.
func createTable(d Dialect, t *schema.Table, column func(schema.Column) string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(d.Quote(t.Name))
	b.WriteString(" (\n")
	for i, c := range t.Columns {
		b.WriteString("\t")
		b.WriteString(column(c))
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

func notNull(c schema.Column) string {
	if c.Nullable {
		return ""
	}
	return " NOT NULL"
}

// scanColumns collects name/type/nullability triples produced by an introspection query.
func scanColumns(rows *sql.Rows, scan func(*sql.Rows) (schema.LiveColumn, error)) ([]schema.LiveColumn, error) {
	defer rows.Close()

	var columns []schema.LiveColumn
	for rows.Next() {
		col, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return columns, nil
}
