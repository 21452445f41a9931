// Package schema describes tables in a dialect-neutral form.
//
// The same declarations drive three things: the DDL rendered by migrations,
// the column lists used by repositories, and the expected structure the
// startup validator compares against the live database.
package schema

import "fmt"

// Type is an engine independent column type. Dialects map it to concrete DDL.
type Type string

const (
	Text    Type = "text"
	Integer Type = "integer"
	BigInt  Type = "bigint"
	Boolean Type = "boolean"
	JSON    Type = "json"
)

// Column is a single declared column.
type Column struct {
	Name          string
	Type          Type
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
}

// Table is a declared table with its columns in storage order.
type Table struct {
	Name    string
	Columns []Column
}

// NewTable declares a table.
func NewTable(name string, columns ...Column) *Table {
	return &Table{Name: name, Columns: columns}
}

// Key returns the primary key column and its position.
//
// Panics when no primary key is declared; every mapped entity has one.
func (t *Table) Key() (Column, int) {
	for i, c := range t.Columns {
		if c.PrimaryKey {
			return c, i
		}
	}
	panic(fmt.Sprintf("schema: table %s declares no primary key", t.Name))
}

// ColumnNames returns column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a declared column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Relation is a belongs-to edge: rows of Child reference Parent through ForeignKey.
//
// Relations are only used for read-side filtering. Nothing cascades through them.
type Relation struct {
	Parent     string
	References string
	Child      string
	ForeignKey string
}

// BelongsTo declares that child.foreignKey references parent.references.
func BelongsTo(child *Table, foreignKey string, parent *Table, references string) Relation {
	return Relation{Parent: parent.Name, References: references, Child: child.Name, ForeignKey: foreignKey}
}

// PK declares a text primary key.
func PK(name string) Column {
	return Column{Name: name, Type: Text, PrimaryKey: true}
}

// SerialPK declares an integer primary key assigned by storage.
func SerialPK(name string) Column {
	return Column{Name: name, Type: Integer, PrimaryKey: true, AutoIncrement: true}
}

// Col declares a NOT NULL column.
func Col(name string, t Type) Column {
	return Column{Name: name, Type: t}
}

// NullCol declares a nullable column.
func NullCol(name string, t Type) Column {
	return Column{Name: name, Type: t, Nullable: true}
}
