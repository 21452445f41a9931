package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/panelstore/internal/migrations"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database is opened on first use so commands that never touch storage
// (and tests) do not need one.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	client     *shared.Client

	projects   *repositories.ProjectRepository
	members    *repositories.ProjectMemberRepository
	invites    *repositories.ProjectInviteRepository
	workspaces *repositories.WorkspaceRepository
	wsMembers  *repositories.WorkspaceMemberRepository
	wsInvites  *repositories.WorkspaceInviteRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Client     *shared.Client
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if opts.Client != nil {
		r.attach(opts.Client)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, migrateCommand, checkCommand, projectCommand, memberCommand, inviteCommand, workspaceCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's config with the file at configPath when it exists.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Log.Level))
	return ctx, nil
}

// open connects to the configured database once and runs the startup gate
// (migrate, then check) as configured. Repository commands call it first.
func (r *Runner) open(ctx context.Context) error {
	if r.client != nil {
		return nil
	}

	client, err := shared.NewDatabase(ctx, r.config.Database)
	if err != nil {
		return err
	}

	if r.config.Startup.Migrate {
		if _, err := migrations.Up(ctx, client, r.logger); err != nil {
			client.Close()
			return err
		}
	} else {
		r.logger.Warn("startup migrations disabled by config", "config", r.configPath)
	}
	if r.config.Startup.Check {
		if err := migrations.CheckTables(ctx, client, r.logger); err != nil {
			client.Close()
			return err
		}
	} else {
		r.logger.Warn("schema check skipped by config; table mismatches will surface as query errors", "config", r.configPath)
	}

	r.attach(client)
	return nil
}

// connect opens the database without the startup gate, for commands that manage the schema itself.
func (r *Runner) connect(ctx context.Context) (*shared.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	client, err := shared.NewDatabase(ctx, r.config.Database)
	if err != nil {
		return nil, err
	}

	r.attach(client)
	return client, nil
}

func (r *Runner) attach(client *shared.Client) {
	r.client = client
	r.projects = repositories.NewProjectRepository(client)
	r.members = repositories.NewProjectMemberRepository(client)
	r.invites = repositories.NewProjectInviteRepository(client)
	r.workspaces = repositories.NewWorkspaceRepository(client)
	r.wsMembers = repositories.NewWorkspaceMemberRepository(client)
	r.wsInvites = repositories.NewWorkspaceInviteRepository(client)
}

// Close releases the database connection, if one was opened.
func (r *Runner) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
