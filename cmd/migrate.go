package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/panelstore/internal/migrations"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/desertthunder/panelstore/internal/ui"
	"github.com/urfave/cli/v3"
)

// MigrateUp applies pending migrations.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}

	applied, err := migrations.Up(ctx, client, r.logger)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		return r.writePlain("%s\n", ui.OK("already up to date"))
	}
	return r.writePlain("%s\n", ui.OK(fmt.Sprintf("applied %d migration(s)", len(applied))))
}

// MigrateDown rolls back the latest migration.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}

	version, err := migrations.Down(ctx, client, r.logger)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.OK(fmt.Sprintf("rolled back %d", version)))
}

// MigrateStatus lists every migration and whether it is applied.
func (r *Runner) MigrateStatus(ctx context.Context, cmd *cli.Command) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}

	statuses, err := migrations.StatusOf(ctx, client)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, cmd.Bool("pretty"))
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := ui.Warn("pending")
		applied := ""
		if s.Applied {
			state = ui.OK("applied")
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{strconv.FormatInt(s.Version, 10), s.Name, state, applied})
	}
	return r.writePlain("%s\n", ui.Table([]string{"Version", "Name", "State", "Applied At"}, rows))
}

// Check compares the live schema against every mapped table and reports each difference.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}

	mismatches, err := migrations.Validate(ctx, client)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(mismatches, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else if len(mismatches) == 0 {
		return r.writePlain("%s\n", ui.OK("schema matches"))
	} else {
		r.writePlain("%s\n", ui.Title("Schema mismatch"))
		for _, m := range mismatches {
			r.writePlain("%s\n", ui.Err(m.String()))
		}
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: found %d issues", shared.ErrSchemaMismatch, len(mismatches))
	}
	return nil
}
