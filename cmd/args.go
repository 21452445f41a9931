package main

import (
	"fmt"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"github.com/urfave/cli/v3"
)

// optString returns the flag value only when the user set it.
func optString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	return shared.Ptr(cmd.String(name))
}

func optBool(cmd *cli.Command, name string) *bool {
	if !cmd.IsSet(name) {
		return nil
	}
	return shared.Ptr(cmd.Bool(name))
}

func optRole(cmd *cli.Command, name string) (*models.MemberRole, error) {
	if !cmd.IsSet(name) {
		return nil, nil
	}
	role, err := models.ParseMemberRole(cmd.String(name))
	if err != nil {
		return nil, fmt.Errorf("%w: --%s: %w", shared.ErrInvalidFlag, name, err)
	}
	return &role, nil
}

func page(cmd *cli.Command) repositories.Page {
	var p repositories.Page
	if cmd.IsSet("limit") {
		p.Limit = shared.Ptr(cmd.Int64("limit"))
	}
	if cmd.IsSet("offset") {
		p.Offset = shared.Ptr(cmd.Int64("offset"))
	}
	return p
}

func requireID(cmd *cli.Command) (string, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return "", fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	return id, nil
}

func projectOptions(cmd *cli.Command) *models.ProjectOptions {
	o := models.ProjectOptions{
		CreateAutomatically: optBool(cmd, "create-automatically"),
		AdminMute:           optBool(cmd, "admin-mute"),
		Record:              optBool(cmd, "record"),
	}
	if o.CreateAutomatically == nil && o.AdminMute == nil && o.Record == nil {
		return nil
	}
	return &o
}

func projectCodecs(cmd *cli.Command) *models.ProjectCodecs {
	c := models.ProjectCodecs{
		H264: optBool(cmd, "h264"),
		VP9:  optBool(cmd, "vp9"),
		Opus: optBool(cmd, "opus"),
		AAC:  optBool(cmd, "aac"),
	}
	if c.H264 == nil && c.VP9 == nil && c.Opus == nil && c.AAC == nil {
		return nil
	}
	return &c
}

func workspaceSettings(cmd *cli.Command) *models.WorkspaceSettings {
	s := models.WorkspaceSettings{
		AllowInvites: optBool(cmd, "allow-invites"),
		Public:       optBool(cmd, "public"),
	}
	if s.AllowInvites == nil && s.Public == nil {
		return nil
	}
	return &s
}
