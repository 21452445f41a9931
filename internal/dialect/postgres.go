package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/panelstore/internal/schema"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func init() {
	Register("postgres", func() Dialect { return Postgres{} })
}

// Postgres implements [Dialect] for PostgreSQL through the pgx stdlib driver.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }
func (Postgres) DriverName() string { return "pgx" }
func (Postgres) Goose() goose.Dialect { return goose.DialectPostgres }
func (Postgres) Placeholder(n int) string { return "$" + strconv.Itoa(n) }
func (Postgres) Quote(ident string) string { return quoteDouble(ident) }
func (d Postgres) DropTable(name string) string { return "DROP TABLE IF EXISTS " + d.Quote(name) }
func (d Postgres) DropIndex(name string) string { return "DROP INDEX IF EXISTS " + d.Quote(name) }

func (Postgres) Paginate(limit, offset *int64) string {
	var b strings.Builder
	if limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *limit)
	}
	if offset != nil {
		fmt.Fprintf(&b, " OFFSET %d", *offset)
	}
	return b.String()
}

func (d Postgres) CreateTable(t *schema.Table) string {
	return createTable(d, t, d.column)
}

func (d Postgres) AddColumn(table string, c schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s", d.Quote(table), d.column(c))
}

func (d Postgres) CreateIndex(name, table, column string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", d.Quote(name), d.Quote(table), d.Quote(column))
}

func (d Postgres) column(c schema.Column) string {
	if c.AutoIncrement {
		return d.Quote(c.Name) + " INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	def := d.Quote(c.Name) + " " + postgresType(c.Type)
	if c.PrimaryKey {
		return def + " PRIMARY KEY"
	}
	return def + notNull(c)
}

func postgresType(t schema.Type) string {
	switch t {
	case schema.Integer:
		return "INTEGER"
	case schema.BigInt:
		return "BIGINT"
	case schema.Boolean:
		return "BOOLEAN"
	case schema.JSON:
		return "JSONB"
	default:
		return "TEXT"
	}
}

// Columns reads information_schema for the connection's current schema.
func (Postgres) Columns(ctx context.Context, q Querier, table string) ([]schema.LiveColumn, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position
	`

	rows, err := q.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata for %s: %w", table, err)
	}

	return scanColumns(rows, func(rows *sql.Rows) (schema.LiveColumn, error) {
		var (
			col      schema.LiveColumn
			nullable string
		)
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return col, err
		}
		col.Nullable = nullable == "YES"
		return col, nil
	})
}

func (Postgres) SameType(want schema.Type, got string) bool {
	got = strings.ToLower(strings.TrimSpace(got))

	switch want {
	case schema.Text:
		return got == "text" || got == "character varying" || got == "character"
	case schema.Integer:
		return got == "integer"
	case schema.BigInt:
		return got == "bigint"
	case schema.Boolean:
		return got == "boolean"
	case schema.JSON:
		return got == "jsonb" || got == "json"
	default:
		return false
	}
}
