// Package migrations brings a database to the schema the repositories expect and
// verifies that it got there.
//
// Steps are written as dialect neutral [Change] values and rendered by the
// client's [dialect.Dialect], so one set of steps serves every backend. Versions are
// tracked by goose in its goose_db_version table; each step runs in its own transaction.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/panelstore/internal/dialect"
	"github.com/desertthunder/panelstore/internal/schema"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/pressly/goose/v3"
)

// Change is a single schema operation.
type Change interface {
	SQL(d dialect.Dialect) string
}

// CreateTable creates a table with every declared column.
type CreateTable struct{ Table *schema.Table }

// DropTable drops a table if it exists.
type DropTable struct{ Name string }

// CreateIndex creates a single column index.
type CreateIndex struct{ Name, Table, Column string }

// DropIndex drops an index if it exists.
type DropIndex struct{ Name string }

// AddColumn adds a column to an existing table.
type AddColumn struct {
	Table  string
	Column schema.Column
}

func (c CreateTable) SQL(d dialect.Dialect) string { return d.CreateTable(c.Table) }
func (c DropTable) SQL(d dialect.Dialect) string { return d.DropTable(c.Name) }
func (c CreateIndex) SQL(d dialect.Dialect) string { return d.CreateIndex(c.Name, c.Table, c.Column) }
func (c DropIndex) SQL(d dialect.Dialect) string { return d.DropIndex(c.Name) }
func (c AddColumn) SQL(d dialect.Dialect) string { return d.AddColumn(c.Table, c.Column) }

// Step is one versioned migration.
type Step struct {
	Version int64
	Name    string
	Up      []Change
	Down    []Change
}

// Status describes whether a step has been applied.
type Status struct {
	Version   int64     `json:"version"`
	Name      string    `json:"name"`
	Applied   bool      `json:"applied"`
	AppliedAt time.Time `json:"applied_at,omitzero"`
}

func run(d dialect.Dialect, changes []Change) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, c := range changes {
			stmt := c.SQL(d)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
			}
		}
		return nil
	}
}

func provider(client *shared.Client, steps []Step) (*goose.Provider, error) {
	gomigrations := make([]*goose.Migration, 0, len(steps))
	for _, s := range steps {
		gomigrations = append(gomigrations, goose.NewGoMigration(s.Version,
			&goose.GoFunc{RunTx: run(client.Dialect, s.Up)},
			&goose.GoFunc{RunTx: run(client.Dialect, s.Down)},
		))
	}

	p, err := goose.NewProvider(client.Dialect.Goose(), client.DB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(gomigrations...),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrMigrationFailed, err)
	}
	return p, nil
}

// Up applies every pending step in ascending version order and returns the versions applied.
//
// A failing step is rolled back and stops the run; steps applied before it stay applied.
func Up(ctx context.Context, client *shared.Client, logger *log.Logger) ([]int64, error) {
	return UpSteps(ctx, client, logger, Steps())
}

// UpSteps is [Up] over an explicit list of steps.
func UpSteps(ctx context.Context, client *shared.Client, logger *log.Logger, steps []Step) ([]int64, error) {
	p, err := provider(client, steps)
	if err != nil {
		return nil, err
	}

	results, err := p.Up(ctx)
	var partial *goose.PartialError
	if errors.As(err, &partial) {
		results = partial.Applied
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		applied = append(applied, r.Source.Version)
		if logger != nil {
			logger.Info("applied migration", "version", r.Source.Version, "name", nameOf(steps, r.Source.Version), "duration", r.Duration)
		}
	}

	if err != nil {
		return applied, fmt.Errorf("%w: %w", shared.ErrMigrationFailed, err)
	}
	return applied, nil
}

// Down rolls back the most recently applied step and returns its version.
func Down(ctx context.Context, client *shared.Client, logger *log.Logger) (int64, error) {
	p, err := provider(client, Steps())
	if err != nil {
		return 0, err
	}

	result, err := p.Down(ctx)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			return 0, fmt.Errorf("%w: no migrations to roll back", shared.ErrMigrationFailed)
		}
		return 0, fmt.Errorf("%w: %w", shared.ErrMigrationFailed, err)
	}

	if logger != nil {
		logger.Info("rolled back migration", "version", result.Source.Version, "name", nameOf(Steps(), result.Source.Version))
	}
	return result.Source.Version, nil
}

// Version returns the latest applied step version, or 0 for a fresh database.
func Version(ctx context.Context, client *shared.Client) (int64, error) {
	p, err := provider(client, Steps())
	if err != nil {
		return 0, err
	}

	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return v, nil
}

// StatusOf lists every known step with its applied state, in version order.
func StatusOf(ctx context.Context, client *shared.Client) ([]Status, error) {
	p, err := provider(client, Steps())
	if err != nil {
		return nil, err
	}

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}

	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version:   s.Source.Version,
			Name:      nameOf(Steps(), s.Source.Version),
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// Prepare migrates the database and then validates it against every mapped table.
func Prepare(ctx context.Context, client *shared.Client, logger *log.Logger) error {
	if _, err := Up(ctx, client, logger); err != nil {
		return err
	}
	return CheckTables(ctx, client, logger)
}

func nameOf(steps []Step, version int64) string {
	for _, s := range steps {
		if s.Version == version {
			return s.Name
		}
	}
	return ""
}
