package schema

import "fmt"

// MismatchKind classifies a [Mismatch].
type MismatchKind string

const (
	MissingTable        MismatchKind = "missing table"
	MissingColumn       MismatchKind = "missing column"
	TypeMismatch        MismatchKind = "type mismatch"
	NullabilityMismatch MismatchKind = "nullability mismatch"
	UnexpectedColumn    MismatchKind = "unexpected column"
)

// LiveColumn is a column as reported by the database.
type LiveColumn struct {
	Name     string
	Type     string
	Nullable bool
}

// Mismatch is one discrepancy between a declared table and the live database.
type Mismatch struct {
	Table  string       `json:"table"`
	Column string       `json:"column,omitempty"`
	Kind   MismatchKind `json:"kind"`
	Want   string       `json:"want,omitempty"`
	Got    string       `json:"got,omitempty"`
}

func (m Mismatch) String() string {
	switch m.Kind {
	case MissingTable:
		return fmt.Sprintf("%s: %s", m.Table, m.Kind)
	case MissingColumn, UnexpectedColumn:
		return fmt.Sprintf("%s.%s: %s", m.Table, m.Column, m.Kind)
	default:
		return fmt.Sprintf("%s.%s: %s (want %s, got %s)", m.Table, m.Column, m.Kind, m.Want, m.Got)
	}
}

// TypeMatcher reports whether a live column type satisfies a declared type.
type TypeMatcher func(want Type, got string) bool

// Compare diffs a declared table against its live columns.
//
// An empty live column list means the table does not exist.
func Compare(want *Table, live []LiveColumn, same TypeMatcher) []Mismatch {
	if len(live) == 0 {
		return []Mismatch{{Table: want.Name, Kind: MissingTable}}
	}

	byName := make(map[string]LiveColumn, len(live))
	for _, c := range live {
		byName[c.Name] = c
	}

	var mismatches []Mismatch
	for _, c := range want.Columns {
		got, ok := byName[c.Name]
		if !ok {
			mismatches = append(mismatches, Mismatch{Table: want.Name, Column: c.Name, Kind: MissingColumn, Want: string(c.Type)})
			continue
		}
		delete(byName, c.Name)

		if !same(c.Type, got.Type) {
			mismatches = append(mismatches, Mismatch{
				Table: want.Name, Column: c.Name, Kind: TypeMismatch, Want: string(c.Type), Got: got.Type,
			})
		}

		if c.Nullable != got.Nullable {
			mismatches = append(mismatches, Mismatch{
				Table: want.Name, Column: c.Name, Kind: NullabilityMismatch,
				Want: nullability(c.Nullable), Got: nullability(got.Nullable),
			})
		}
	}

	// Preserve live order for the leftovers so reports are stable.
	for _, c := range live {
		if _, ok := byName[c.Name]; ok {
			mismatches = append(mismatches, Mismatch{Table: want.Name, Column: c.Name, Kind: UnexpectedColumn, Got: c.Type})
		}
	}

	return mismatches
}

func nullability(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}
