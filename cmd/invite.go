package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/desertthunder/panelstore/internal/ui"
	"github.com/urfave/cli/v3"
)

// inviteExpiry turns --expires-in into a unix time; zero leaves the repository default.
func inviteExpiry(cmd *cli.Command) (int64, error) {
	if !cmd.IsSet("expires-in") {
		return 0, nil
	}
	ttl := cmd.Duration("expires-in")
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: --expires-in must be positive", shared.ErrInvalidFlag)
	}
	return time.Now().Add(ttl).Unix(), nil
}

func (r *Runner) writeInvites(cmd *cli.Command, invites ...*models.ProjectInvite) error {
	if cmd.Bool("json") {
		if invites == nil {
			invites = []*models.ProjectInvite{}
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
		rows = append(rows, []string{i.ID, i.ProjectID, i.Email, i.Role.String(), expires})
	}
	return r.writePlain("%s\n", ui.Table([]string{"ID", "Project", "Email", "Role", "Expires"}, rows))
}

// InviteCreate invites an email to a project. Without --expires-in the invite lives for a week.
func (r *Runner) InviteCreate(ctx context.Context, cmd *cli.Command) error {
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

	invite, err := r.invites.Create(ctx, repositories.CreateProjectInviteDto{
		ProjectID: cmd.String("project"),
		Email:     cmd.String("email"),
		Role:      role,
		ExpireAt:  expireAt,
	})
	if err != nil {
		return err
	}
	return r.writeInvites(cmd, invite)
}

func (r *Runner) InviteList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	invites, err := r.invites.GetMany(ctx, repositories.ProjectInviteFilter{
		ProjectID: optString(cmd, "project"),
		Email:     optString(cmd, "email"),
	}, page(cmd))
	if err != nil {
		return err
	}
	return r.writeInvites(cmd, invites...)
}

func (r *Runner) InviteRevoke(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	deleted, err := r.invites.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: invite %s", shared.ErrNotFound, id)
	}
	return r.writePlain("%s\n", ui.OK("revoked invite "+id))
}
