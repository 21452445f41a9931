package dialect

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/panelstore/internal/schema"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(n int64) *int64 { return &n }

var testTable = schema.NewTable("d_members",
	schema.SerialPK("id"),
	schema.Col("project_id", schema.Text),
	schema.NullCol("meta", schema.JSON),
)

func TestRegistry(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		for _, name := range []string{"sqlite", "postgres"} {
			d, err := Get(name)
			require.NoError(t, err)
			assert.Equal(t, name, d.Name())
		}
	})

	t.Run("List", func(t *testing.T) {
		assert.Subset(t, List(), []string{"postgres", "sqlite"})
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Get("oracle")

		var unknown *UnknownDialectError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "oracle", unknown.Name)
		assert.Contains(t, err.Error(), "sqlite")
	})
}

func TestSQLite(t *testing.T) {
	d := SQLite{}

	t.Run("basics", func(t *testing.T) {
		assert.Equal(t, "sqlite3", d.DriverName())
		assert.Equal(t, goose.DialectSQLite3, d.Goose())
		assert.Equal(t, "?", d.Placeholder(3))
		assert.Equal(t, `"a""b"`, d.Quote(`a"b`))
	})

	t.Run("Paginate", func(t *testing.T) {
		assert.Equal(t, "", d.Paginate(nil, nil))
		assert.Equal(t, " LIMIT 5", d.Paginate(ptr(5), nil))
		assert.Equal(t, " LIMIT 5 OFFSET 2", d.Paginate(ptr(5), ptr(2)))
		assert.Equal(t, " LIMIT -1 OFFSET 2", d.Paginate(nil, ptr(2)))
	})

	t.Run("CreateTable", func(t *testing.T) {
		want := "CREATE TABLE IF NOT EXISTS \"d_members\" (\n" +
			"\t\"id\" INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
			"\t\"project_id\" TEXT NOT NULL,\n" +
			"\t\"meta\" TEXT\n" +
			")"
		assert.Equal(t, want, d.CreateTable(testTable))
	})

	t.Run("DDL", func(t *testing.T) {
		assert.Equal(t, `CREATE INDEX IF NOT EXISTS "idx" ON "d_members" ("project_id")`, d.CreateIndex("idx", "d_members", "project_id"))
		assert.Equal(t, `DROP INDEX IF EXISTS "idx"`, d.DropIndex("idx"))
		assert.Equal(t, `DROP TABLE IF EXISTS "d_members"`, d.DropTable("d_members"))
		assert.Equal(t, `ALTER TABLE "d_members" ADD COLUMN "n" BIGINT NOT NULL`, d.AddColumn("d_members", schema.Col("n", schema.BigInt)))
	})

	t.Run("SameType", func(t *testing.T) {
		assert.True(t, d.SameType(schema.Text, "varchar(255)"))
		assert.True(t, d.SameType(schema.JSON, "TEXT"))
		assert.True(t, d.SameType(schema.BigInt, "INTEGER"))
		assert.False(t, d.SameType(schema.Integer, "TEXT"))
		assert.False(t, d.SameType(schema.Boolean, "INTEGER"))
	})

	t.Run("Columns", func(t *testing.T) {
		db, err := sql.Open(d.DriverName(), filepath.Join(t.TempDir(), "dialect.db"))
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		missing, err := d.Columns(ctx, db, "d_members")
		require.NoError(t, err)
		assert.Empty(t, missing)

		_, err = db.Exec(d.CreateTable(testTable))
		require.NoError(t, err)

		live, err := d.Columns(ctx, db, "d_members")
		require.NoError(t, err)
		assert.Equal(t, []schema.LiveColumn{
			{Name: "id", Type: "INTEGER", Nullable: false},
			{Name: "project_id", Type: "TEXT", Nullable: false},
			{Name: "meta", Type: "TEXT", Nullable: true},
		}, live)

		assert.Empty(t, schema.Compare(testTable, live, d.SameType))
	})
}

func TestPostgres(t *testing.T) {
	d := Postgres{}

	t.Run("basics", func(t *testing.T) {
		assert.Equal(t, "pgx", d.DriverName())
		assert.Equal(t, goose.DialectPostgres, d.Goose())
		assert.Equal(t, "$3", d.Placeholder(3))
	})

	t.Run("Paginate", func(t *testing.T) {
		assert.Equal(t, "", d.Paginate(nil, nil))
		assert.Equal(t, " LIMIT 5 OFFSET 2", d.Paginate(ptr(5), ptr(2)))
		assert.Equal(t, " OFFSET 2", d.Paginate(nil, ptr(2)))
	})

	t.Run("CreateTable", func(t *testing.T) {
		want := "CREATE TABLE IF NOT EXISTS \"d_members\" (\n" +
			"\t\"id\" INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,\n" +
			"\t\"project_id\" TEXT NOT NULL,\n" +
			"\t\"meta\" JSONB\n" +
			")"
		assert.Equal(t, want, d.CreateTable(testTable))
	})

	t.Run("AddColumn", func(t *testing.T) {
		assert.Equal(t, `ALTER TABLE "t" ADD COLUMN IF NOT EXISTS "c" TEXT`, d.AddColumn("t", schema.NullCol("c", schema.Text)))
	})

	t.Run("SameType", func(t *testing.T) {
		assert.True(t, d.SameType(schema.Text, "character varying"))
		assert.True(t, d.SameType(schema.JSON, "jsonb"))
		assert.True(t, d.SameType(schema.Integer, "integer"))
		assert.False(t, d.SameType(schema.BigInt, "integer"))
		assert.False(t, d.SameType(schema.JSON, "text"))
	})
}
