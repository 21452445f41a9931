package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/panelstore/internal/schema"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

func init() {
	Register("sqlite", func() Dialect { return SQLite{} })
}

// SQLite implements [Dialect] for SQLite through mattn/go-sqlite3.
//
// JSON blobs are stored as TEXT; SQLite keeps declared type names verbatim,
// so type checks match on declared names and their affinity aliases.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }
func (SQLite) DriverName() string { return "sqlite3" }
func (SQLite) Goose() goose.Dialect { return goose.DialectSQLite3 }
func (SQLite) Placeholder(int) string { return "?" }
func (SQLite) Quote(ident string) string { return quoteDouble(ident) }
func (d SQLite) DropTable(name string) string { return "DROP TABLE IF EXISTS " + d.Quote(name) }
func (d SQLite) DropIndex(name string) string { return "DROP INDEX IF EXISTS " + d.Quote(name) }

// Paginate renders LIMIT/OFFSET. SQLite has no bare OFFSET, so a negative limit stands in for "all rows".
func (SQLite) Paginate(limit, offset *int64) string {
	switch {
	case limit != nil && offset != nil:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", *limit, *offset)
	case limit != nil:
		return fmt.Sprintf(" LIMIT %d", *limit)
	case offset != nil:
		return fmt.Sprintf(" LIMIT -1 OFFSET %d", *offset)
	default:
		return ""
	}
}

func (d SQLite) CreateTable(t *schema.Table) string {
	return createTable(d, t, d.column)
}

func (d SQLite) AddColumn(table string, c schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", d.Quote(table), d.column(c))
}

func (d SQLite) CreateIndex(name, table, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", d.Quote(name), d.Quote(table), d.Quote(column))
}

func (d SQLite) column(c schema.Column) string {
	if c.AutoIncrement {
		return d.Quote(c.Name) + " INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	def := d.Quote(c.Name) + " " + sqliteType(c.Type)
	if c.PrimaryKey {
		return def + " PRIMARY KEY NOT NULL"
	}
	return def + notNull(c)
}

func sqliteType(t schema.Type) string {
	switch t {
	case schema.Integer:
		return "INTEGER"
	case schema.BigInt:
		return "BIGINT"
	case schema.Boolean:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// Columns reads pragma_table_info. Primary key columns are reported nullable by
// SQLite unless declared NOT NULL, but a rowid alias can never hold NULL.
func (SQLite) Columns(ctx context.Context, q Querier, table string) ([]schema.LiveColumn, error) {
	rows, err := q.QueryContext(ctx, `SELECT name, type, "notnull", pk FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata for %s: %w", table, err)
	}

	return scanColumns(rows, func(rows *sql.Rows) (schema.LiveColumn, error) {
		var (
			col     schema.LiveColumn
			notnull int
			pk      int
		)
		if err := rows.Scan(&col.Name, &col.Type, &notnull, &pk); err != nil {
			return col, err
		}
		col.Nullable = notnull == 0 && pk == 0
		return col, nil
	})
}

func (SQLite) SameType(want schema.Type, got string) bool {
	got = strings.ToUpper(strings.TrimSpace(got))
	if i := strings.IndexByte(got, '('); i >= 0 {
		got = strings.TrimSpace(got[:i])
	}

	switch want {
	case schema.Text:
		return got == "TEXT" || got == "VARCHAR" || got == "CHAR" || got == "CLOB"
	case schema.Integer:
		return got == "INTEGER" || got == "INT"
	case schema.BigInt:
		return got == "BIGINT" || got == "INTEGER" || got == "INT8"
	case schema.Boolean:
		return got == "BOOLEAN" || got == "BOOL"
	case schema.JSON:
		return got == "TEXT" || got == "JSON" || got == "JSONB"
	default:
		return false
	}
}
