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

func memberID(cmd *cli.Command) (int32, error) {
	raw, err := requireID(cmd)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: member id %q is not a number", shared.ErrInvalidArgument, raw)
	}
	return int32(id), nil
}

func (r *Runner) writeMembers(cmd *cli.Command, members ...*models.ProjectMember) error {
	if cmd.Bool("json") {
		if members == nil {
			members = []*models.ProjectMember{}
		}
		return r.writeJSON(members, cmd.Bool("pretty"))
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{strconv.Itoa(int(m.ID)), m.ProjectID, m.UserID, m.Role.String()})
	}
	return r.writePlain("%s\n", ui.Table([]string{"ID", "Project", "User", "Role"}, rows))
}

func (r *Runner) MemberAdd(ctx context.Context, cmd *cli.Command) error {
	role, err := models.ParseMemberRole(cmd.String("role"))
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	member, err := r.members.Create(ctx, repositories.CreateProjectMemberDto{
		ProjectID: cmd.String("project"),
		UserID:    cmd.String("user"),
		Role:      role,
	})
	if err != nil {
		return err
	}
	return r.writeMembers(cmd, member)
}

func (r *Runner) MemberList(ctx context.Context, cmd *cli.Command) error {
	role, err := optRole(cmd, "role")
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	members, err := r.members.GetMany(ctx, repositories.ProjectMemberFilter{
		ProjectID: optString(cmd, "project"),
		UserID:    optString(cmd, "user"),
		Role:      role,
	}, page(cmd))
	if err != nil {
		return err
	}
	return r.writeMembers(cmd, members...)
}

func (r *Runner) MemberUpdate(ctx context.Context, cmd *cli.Command) error {
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

	member, err := r.members.Update(ctx, id, repositories.UpdateProjectMemberDto{
		UserID: optString(cmd, "user"),
		Role:   role,
	})
	if err != nil {
		return err
	}
	return r.writeMembers(cmd, member)
}

func (r *Runner) MemberRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := memberID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	deleted, err := r.members.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: member %d", shared.ErrNotFound, id)
	}
	return r.writePlain("%s\n", ui.OK(fmt.Sprintf("removed member %d", id)))
}
