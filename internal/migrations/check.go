package migrations

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/schema"
	"github.com/desertthunder/panelstore/internal/shared"
)

// Validate compares each table with the live database and returns every difference found.
// With no tables given it checks [models.Tables].
func Validate(ctx context.Context, client *shared.Client, tables ...*schema.Table) ([]schema.Mismatch, error) {
	if len(tables) == 0 {
		tables = models.Tables()
	}

	var mismatches []schema.Mismatch
	for _, t := range tables {
		live, err := client.Dialect.Columns(ctx, client.DB, t.Name)
		if err != nil {
			return nil, err
		}
		mismatches = append(mismatches, schema.Compare(t, live, client.Dialect.SameType)...)
	}
	return mismatches, nil
}

// CheckTables fails with [shared.ErrSchemaMismatch] when any table differs from its declaration.
//
// All tables are checked before failing and every issue is logged in a single entry.
func CheckTables(ctx context.Context, client *shared.Client, logger *log.Logger, tables ...*schema.Table) error {
	mismatches, err := Validate(ctx, client, tables...)
	if err != nil {
		return err
	}
	if len(mismatches) == 0 {
		return nil
	}

	if logger != nil {
		issues := make([]string, len(mismatches))
		for i, m := range mismatches {
			issues[i] = m.String()
		}
		logger.Error("schema mismatch", "count", len(mismatches), "issues", issues)
	}

	return fmt.Errorf("%w: found %d issues", shared.ErrSchemaMismatch, len(mismatches))
}
