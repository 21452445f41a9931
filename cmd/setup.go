package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/panelstore/internal/migrations"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/desertthunder/panelstore/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup writes a config file when none exists, then migrates and validates the database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(r.configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
		} else {
			r.config = config
		}
	}

	r.logger.Info("initializing database", "driver", r.config.Database.Driver)

	client, err := r.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := migrations.Prepare(ctx, client, r.logger); err != nil {
		return err
	}

	version, err := migrations.Version(ctx, client)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", ui.OK(fmt.Sprintf("database ready at version %d", version)))
}
