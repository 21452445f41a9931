package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/panelstore/internal/formatter"
	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/desertthunder/panelstore/internal/tasks"
	"github.com/desertthunder/panelstore/internal/ui"
	"github.com/urfave/cli/v3"
)

func projectFilter(cmd *cli.Command) (repositories.ProjectFilter, error) {
	role, err := optRole(cmd, "role")
	if err != nil {
		return repositories.ProjectFilter{}, err
	}
	return repositories.ProjectFilter{
		Name:         optString(cmd, "name"),
		Owner:        optString(cmd, "owner"),
		MemberUserID: optString(cmd, "member"),
		MemberRole:   role,
		InviteEmail:  optString(cmd, "invite"),
	}, nil
}

func (r *Runner) writeProjects(cmd *cli.Command, projects ...*models.Project) error {
	if cmd.Bool("json") {
		if len(projects) == 1 {
			return r.writeJSON(projects[0], cmd.Bool("pretty"))
		}
		return r.writeJSON(projects, cmd.Bool("pretty"))
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, p.Owner})
	}
	return r.writePlain("%s\n", ui.Table([]string{"ID", "Name", "Owner"}, rows))
}

// ProjectCreate creates a project; unset option and codec flags keep their defaults.
func (r *Runner) ProjectCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	project, err := r.projects.Create(ctx, repositories.CreateProjectDto{
		Name:    cmd.String("name"),
		Owner:   cmd.String("owner"),
		Secret:  cmd.String("secret"),
		Options: projectOptions(cmd),
		Codecs:  projectCodecs(cmd),
	})
	if err != nil {
		return err
	}

	r.logger.Info("project created", "id", project.ID)
	return r.writeProjects(cmd, project)
}

func (r *Runner) ProjectList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	filter, err := projectFilter(cmd)
	if err != nil {
		return err
	}

	projects, err := r.projects.GetMany(ctx, filter, page(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if projects == nil {
			projects = []*models.Project{}
		}
		return r.writeJSON(projects, cmd.Bool("pretty"))
	}
	return r.writeProjects(cmd, projects...)
}

func (r *Runner) ProjectCount(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	filter, err := projectFilter(cmd)
	if err != nil {
		return err
	}

	n, err := r.projects.Count(ctx, filter)
	if err != nil {
		return err
	}
	return r.writePlain("%d\n", n)
}

func (r *Runner) ProjectShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	project, err := r.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(project, cmd.Bool("pretty"))
	}

	text, err := formatter.ExportToText(&formatter.ProjectExport{Project: *project})
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

func (r *Runner) ProjectUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	project, err := r.projects.Update(ctx, id, repositories.UpdateProjectDto{
		Name:    optString(cmd, "name"),
		Owner:   optString(cmd, "owner"),
		Secret:  optString(cmd, "secret"),
		Options: projectOptions(cmd),
		Codecs:  projectCodecs(cmd),
	})
	if err != nil {
		return err
	}
	return r.writeProjects(cmd, project)
}

func (r *Runner) ProjectDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	deleted, err := r.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: project %s", shared.ErrNotFound, id)
	}
	return r.writePlain("%s\n", ui.OK("deleted project "+id))
}

// ProjectExport writes a project roster to disk in the requested format.
func (r *Runner) ProjectExport(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	project, err := r.projects.Get(ctx, id)
	if err != nil {
		return err
	}
	members, err := r.members.GetMany(ctx, repositories.ProjectMemberFilter{ProjectID: &id}, repositories.Page{})
	if err != nil {
		return err
	}
	invites, err := r.invites.GetMany(ctx, repositories.ProjectInviteFilter{ProjectID: &id}, repositories.Page{})
	if err != nil {
		return err
	}

	export := &formatter.ProjectExport{Project: *project, Members: members, Invites: invites}
	output := cmd.String("output")

	var files []string
	switch strings.ToLower(cmd.String("format")) {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		files = append(files, result.RosterFile, result.MetadataFile)
	case "md", "markdown":
		path, err := formatter.WriteMarkdownExport(export, output, time.Now())
		if err != nil {
			return err
		}
		files = append(files, path)
	case "txt", "text":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		files = append(files, path)
	case "json":
		path, err := formatter.WriteJSONExport(export, output)
		if err != nil {
			return err
		}
		files = append(files, path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, cmd.String("format"))
	}

	for _, f := range files {
		r.writePlain("%s\n", ui.OK("wrote "+f))
	}
	return nil
}

// ProjectExportAll bulk exports every matching project and reports the manifest location.
func (r *Runner) ProjectExportAll(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	filter, err := projectFilter(cmd)
	if err != nil {
		return err
	}

	projects, err := r.projects.GetMany(ctx, filter, repositories.Page{})
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	prog := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	exporter := tasks.NewExporter(r.client, r.logger)
	result, err := exporter.BulkExport(ctx, prog, ids, tasks.BulkExportOpts{
		Format:     strings.ToLower(cmd.String("format")),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("exported %d/%d projects to %s", result.SuccessfulExports, result.TotalProjects, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("%s\n", ui.Warn(summary))
	} else {
		r.writePlain("%s\n", ui.OK(summary))
	}
	return r.writePlain("manifest: %s\n", result.ManifestPath)
}
