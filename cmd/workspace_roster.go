package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/desertthunder/panelstore/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) writeWorkspaceMembers(cmd *cli.Command, members ...*models.WorkspaceMember) error {
	if cmd.Bool("json") {
		if members == nil {
			members = []*models.WorkspaceMember{}
		}
		return r.writeJSON(members, cmd.Bool("pretty"))
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{strconv.Itoa(int(m.ID)), m.WorkspaceID, m.UserID, m.Role.String()})
	}
	return r.writePlain("%s\n", ui.Table([]string{"ID", "Workspace", "User", "Role"}, rows))
}

func (r *Runner) WorkspaceMemberAdd(ctx context.Context, cmd *cli.Command) error {
	role, err := models.ParseMemberRole(cmd.String("role"))
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	member, err := r.wsMembers.Create(ctx, repositories.CreateWorkspaceMemberDto{
		WorkspaceID: cmd.String("workspace"),
		UserID:      cmd.String("user"),
		Role:        role,
	})
	if err != nil {
		return err
	}
	return r.writeWorkspaceMembers(cmd, member)
}

func (r *Runner) WorkspaceMemberList(ctx context.Context, cmd *cli.Command) error {
	role, err := optRole(cmd, "role")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	members, err := r.wsMembers.GetMany(ctx, repositories.WorkspaceMemberFilter{
		WorkspaceID: optString(cmd, "workspace"),
		UserID:      optString(cmd, "user"),
		Role:        role,
	}, page(cmd))
	if err != nil {
		return err
	}
	return r.writeWorkspaceMembers(cmd, members...)
}

func (r *Runner) WorkspaceMemberUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := memberID(cmd)
	if err != nil {
		return err
	}
	role, err := optRole(cmd, "role")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	member, err := r.wsMembers.Update(ctx, id, repositories.UpdateWorkspaceMemberDto{
		UserID: optString(cmd, "user"),
		Role:   role,
	})
	if err != nil {
		return err
	}
	return r.writeWorkspaceMembers(cmd, member)
}

func (r *Runner) WorkspaceMemberRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := memberID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	deleted, err := r.wsMembers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: workspace member %d", shared.ErrNotFound, id)
	}
	return r.writePlain("%s\n", ui.OK(fmt.Sprintf("removed workspace member %d", id)))
}

func (r *Runner) writeWorkspaceInvites(cmd *cli.Command, invites ...*models.WorkspaceInvite) error {
	if cmd.Bool("json") {
		if invites == nil {
			invites = []*models.WorkspaceInvite{}
		}
		return r.writeJSON(invites, cmd.Bool("pretty"))
	}

	now := time.Now()
	rows := make([][]string, 0, len(invites))
	for _, i := range invites {
		expires := time.Unix(i.ExpireAt, 0).Format(time.RFC3339)
		if i.Expired(now) {
			expires = ui.Warn("expired")
		}
		rows = append(rows, []string{i.ID, i.WorkspaceID, i.Email, i.Role.String(), expires})
	}
	return r.writePlain("%s\n", ui.Table([]string{"ID", "Workspace", "Email", "Role", "Expires"}, rows))
}

// WorkspaceInviteCreate invites an email to a workspace. Without --expires-in the invite lives for a week.
func (r *Runner) WorkspaceInviteCreate(ctx context.Context, cmd *cli.Command) error {
	role, err := models.ParseMemberRole(cmd.String("role"))
	if err != nil {
		return err
	}
	expireAt, err := inviteExpiry(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	invite, err := r.wsInvites.Create(ctx, repositories.CreateWorkspaceInviteDto{
		WorkspaceID: cmd.String("workspace"),
		Email:       cmd.String("email"),
		Role:        role,
		ExpireAt:    expireAt,
	})
	if err != nil {
		return err
	}
	return r.writeWorkspaceInvites(cmd, invite)
}

func (r *Runner) WorkspaceInviteList(ctx context.Context, cmd *cli.Command) error {
	role, err := optRole(cmd, "role")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	invites, err := r.wsInvites.GetMany(ctx, repositories.WorkspaceInviteFilter{
		WorkspaceID: optString(cmd, "workspace"),
		Email:       optString(cmd, "email"),
		Role:        role,
	}, page(cmd))
	if err != nil {
		return err
	}
	return r.writeWorkspaceInvites(cmd, invites...)
}

func (r *Runner) WorkspaceInviteRevoke(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	deleted, err := r.wsInvites.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: workspace invite %s", shared.ErrNotFound, id)
	}
	return r.writePlain("%s\n", ui.OK("revoked workspace invite "+id))
}
