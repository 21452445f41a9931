package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/desertthunder/panelstore/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) writeWorkspaces(cmd *cli.Command, workspaces ...*models.Workspace) error {
	if cmd.Bool("json") {
		if len(workspaces) == 1 {
			return r.writeJSON(workspaces[0], cmd.Bool("pretty"))
		}
		if workspaces == nil {
			workspaces = []*models.Workspace{}
		}
		return r.writeJSON(workspaces, cmd.Bool("pretty"))
	}

	rows := make([][]string, 0, len(workspaces))
	for _, w := range workspaces {
		rows = append(rows, []string{
			w.ID, w.Name, w.Owner,
			strconv.FormatBool(*w.Settings.Public),
			strconv.FormatBool(*w.Settings.AllowInvites),
		})
	}
	return r.writePlain("%s\n", ui.Table([]string{"ID", "Name", "Owner", "Public", "Invites"}, rows))
}

func (r *Runner) WorkspaceCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	workspace, err := r.workspaces.Create(ctx, repositories.CreateWorkspaceDto{
		Name:     cmd.String("name"),
		Owner:    cmd.String("owner"),
		Settings: workspaceSettings(cmd),
	})
	if err != nil {
		return err
	}
	return r.writeWorkspaces(cmd, workspace)
}

func (r *Runner) WorkspaceList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	workspaces, err := r.workspaces.GetMany(ctx, repositories.WorkspaceFilter{
		Name:         optString(cmd, "name"),
		Owner:        optString(cmd, "owner"),
		MemberUserID: optString(cmd, "member"),
		InviteEmail:  optString(cmd, "invite"),
	}, page(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if workspaces == nil {
			workspaces = []*models.Workspace{}
		}
		return r.writeJSON(workspaces, cmd.Bool("pretty"))
	}
	return r.writeWorkspaces(cmd, workspaces...)
}

func (r *Runner) WorkspaceShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	workspace, err := r.workspaces.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.writeWorkspaces(cmd, workspace)
}

func (r *Runner) WorkspaceUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	workspace, err := r.workspaces.Update(ctx, id, repositories.UpdateWorkspaceDto{
		Name:     optString(cmd, "name"),
		Owner:    optString(cmd, "owner"),
		Settings: workspaceSettings(cmd),
	})
	if err != nil {
		return err
	}
	return r.writeWorkspaces(cmd, workspace)
}

func (r *Runner) WorkspaceDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	deleted, err := r.workspaces.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: workspace %s", shared.ErrNotFound, id)
	}
	return r.writePlain("%s\n", ui.OK("deleted workspace "+id))
}
