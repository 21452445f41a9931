// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  "limit",
			Usage: "Maximum number of rows to return",
		},
		&cli.Int64Flag{
			Name:  "offset",
			Usage: "Number of rows to skip",
		},
	}
}

func projectFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Only projects with this name"},
		&cli.StringFlag{Name: "owner", Usage: "Only projects owned by this user"},
		&cli.StringFlag{Name: "member", Usage: "Only projects this user is a member of"},
		&cli.StringFlag{Name: "role", Usage: "With --member, only memberships with this role"},
		&cli.StringFlag{Name: "invite", Usage: "Only projects with an invite for this email"},
	}
}

func projectBlobFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "create-automatically", Usage: "Create the session automatically"},
		&cli.BoolFlag{Name: "admin-mute", Usage: "Allow admins to mute participants"},
		&cli.BoolFlag{Name: "record", Usage: "Record sessions"},
		&cli.BoolFlag{Name: "h264", Usage: "Enable the H.264 codec"},
		&cli.BoolFlag{Name: "vp9", Usage: "Enable the VP9 codec"},
		&cli.BoolFlag{Name: "opus", Usage: "Enable the Opus codec"},
		&cli.BoolFlag{Name: "aac", Usage: "Enable the AAC codec"},
	}
}

func idArg() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a config file if missing, then migrate and check the database",
		Action: r.Setup,
	}
}

// migrateCommand handles schema versioning
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage database migrations",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply every pending migration",
				Action: r.MigrateUp,
			},
			{
				Name:   "down",
				Usage:  "Roll back the latest migration",
				Action: r.MigrateDown,
			},
			{
				Name:   "status",
				Usage:  "List migrations and whether they are applied",
				Flags:  outputFlags(),
				Action: r.MigrateStatus,
			},
		},
	}
}

func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Compare the live database with the expected tables",
		Flags:  outputFlags(),
		Action: r.Check,
	}
}

// projectCommand handles project CRUD and export
func projectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Project operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a project",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Project name", Required: true},
					&cli.StringFlag{Name: "owner", Usage: "Owning user ID", Required: true},
					&cli.StringFlag{Name: "secret", Usage: "Project secret"},
				}, projectBlobFlags(), outputFlags()),
				Action: r.ProjectCreate,
			},
			{
				Name:   "list",
				Usage:  "List projects matching the filters",
				Flags:  flags(projectFilterFlags(), pageFlags(), outputFlags()),
				Action: r.ProjectList,
			},
			{
				Name:   "count",
				Usage:  "Count projects matching the filters",
				Flags:  projectFilterFlags(),
				Action: r.ProjectCount,
			},
			{
				Name:      "show",
				Usage:     "Show one project",
				Arguments: idArg(),
				Flags:     outputFlags(),
				Action:    r.ProjectShow,
			},
			{
				Name:      "update",
				Usage:     "Update the given fields of a project",
				Arguments: idArg(),
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "New name"},
					&cli.StringFlag{Name: "owner", Usage: "New owner"},
					&cli.StringFlag{Name: "secret", Usage: "New secret"},
				}, projectBlobFlags(), outputFlags()),
				Action: r.ProjectUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a project",
				Arguments: idArg(),
				Action:    r.ProjectDelete,
			},
			{
				Name:      "export",
				Usage:     "Export a project with its members and invites",
				Arguments: idArg(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, json, md, txt)",
						Value:   "txt",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (defaults to the project ID)",
					},
				},
				Action: r.ProjectExport,
			},
			{
				Name:  "export-all",
				Usage: "Export every project matching the filters into a directory",
				Flags: flags(projectFilterFlags(), []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (defaults to panelstore_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Project loads per second",
						Value: 50,
					},
				}),
				Action: r.ProjectExportAll,
			},
		},
	}
}

// memberCommand handles project memberships
func memberCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "member",
		Aliases: []string{"m"},
		Usage:   "Project member operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a user to a project",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "project", Usage: "Project ID", Required: true},
					&cli.StringFlag{Name: "user", Usage: "User ID", Required: true},
					&cli.StringFlag{Name: "role", Usage: "OWNER, ADMIN or MEMBER", Value: "MEMBER"},
				}, outputFlags()),
				Action: r.MemberAdd,
			},
			{
				Name:  "list",
				Usage: "List project members",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "project", Usage: "Only members of this project"},
					&cli.StringFlag{Name: "user", Usage: "Only memberships of this user"},
					&cli.StringFlag{Name: "role", Usage: "Only members with this role"},
				}, pageFlags(), outputFlags()),
				Action: r.MemberList,
			},
			{
				Name:      "update",
				Usage:     "Change a member's role",
				Arguments: idArg(),
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "role", Usage: "New role"},
					&cli.StringFlag{Name: "user", Usage: "New user ID"},
				}, outputFlags()),
				Action: r.MemberUpdate,
			},
			{
				Name:      "remove",
				Usage:     "Remove a member",
				Arguments: idArg(),
				Action:    r.MemberRemove,
			},
		},
	}
}

// inviteCommand handles project invites
func inviteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "invite",
		Aliases: []string{"i"},
		Usage:   "Project invite operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Invite an email address to a project",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "project", Usage: "Project ID", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Invitee email", Required: true},
					&cli.StringFlag{Name: "role", Usage: "OWNER, ADMIN or MEMBER", Value: "MEMBER"},
					&cli.DurationFlag{Name: "expires-in", Usage: "Invite lifetime (default 168h)"},
				}, outputFlags()),
				Action: r.InviteCreate,
			},
			{
				Name:  "list",
				Usage: "List project invites",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "project", Usage: "Only invites to this project"},
					&cli.StringFlag{Name: "email", Usage: "Only invites for this email"},
				}, pageFlags(), outputFlags()),
				Action: r.InviteList,
			},
			{
				Name:      "revoke",
				Usage:     "Revoke an invite",
				Arguments: idArg(),
				Action:    r.InviteRevoke,
			},
		},
	}
}

// workspaceCommand handles workspace CRUD
func workspaceCommand(r *Runner) *cli.Command {
	settings := []cli.Flag{
		&cli.BoolFlag{Name: "allow-invites", Usage: "Allow members to invite others"},
		&cli.BoolFlag{Name: "public", Usage: "Make the workspace publicly listed"},
	}

	return &cli.Command{
		Name:    "workspace",
		Aliases: []string{"w"},
		Usage:   "Workspace operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a workspace",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Workspace name", Required: true},
					&cli.StringFlag{Name: "owner", Usage: "Owning user ID", Required: true},
				}, settings, outputFlags()),
				Action: r.WorkspaceCreate,
			},
			{
				Name:  "list",
				Usage: "List workspaces matching the filters",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Only workspaces with this name"},
					&cli.StringFlag{Name: "owner", Usage: "Only workspaces owned by this user"},
					&cli.StringFlag{Name: "member", Usage: "Only workspaces this user is a member of"},
					&cli.StringFlag{Name: "invite", Usage: "Only workspaces with a pending invite for this email"},
				}, pageFlags(), outputFlags()),
				Action: r.WorkspaceList,
			},
			{
				Name:      "show",
				Usage:     "Show one workspace",
				Arguments: idArg(),
				Flags:     outputFlags(),
				Action:    r.WorkspaceShow,
			},
			{
				Name:      "update",
				Usage:     "Update the given fields of a workspace",
				Arguments: idArg(),
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "New name"},
					&cli.StringFlag{Name: "owner", Usage: "New owner"},
				}, settings, outputFlags()),
				Action: r.WorkspaceUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a workspace",
				Arguments: idArg(),
				Action:    r.WorkspaceDelete,
			},
			workspaceMemberCommand(r),
			workspaceInviteCommand(r),
		},
	}
}

// workspaceMemberCommand handles workspace memberships
func workspaceMemberCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "member",
		Aliases: []string{"m"},
		Usage:   "Workspace member operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a user to a workspace",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "workspace", Usage: "Workspace ID", Required: true},
					&cli.StringFlag{Name: "user", Usage: "User ID", Required: true},
					&cli.StringFlag{Name: "role", Usage: "OWNER, ADMIN or MEMBER", Value: "MEMBER"},
				}, outputFlags()),
				Action: r.WorkspaceMemberAdd,
			},
			{
				Name:  "list",
				Usage: "List workspace members",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "workspace", Usage: "Only members of this workspace"},
					&cli.StringFlag{Name: "user", Usage: "Only memberships of this user"},
					&cli.StringFlag{Name: "role", Usage: "Only members with this role"},
				}, pageFlags(), outputFlags()),
				Action: r.WorkspaceMemberList,
			},
			{
				Name:      "update",
				Usage:     "Change a workspace member's role",
				Arguments: idArg(),
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "role", Usage: "New role"},
					&cli.StringFlag{Name: "user", Usage: "New user ID"},
				}, outputFlags()),
				Action: r.WorkspaceMemberUpdate,
			},
			{
				Name:      "remove",
				Usage:     "Remove a workspace member",
				Arguments: idArg(),
				Action:    r.WorkspaceMemberRemove,
			},
		},
	}
}

// workspaceInviteCommand handles workspace invites
func workspaceInviteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "invite",
		Aliases: []string{"i"},
		Usage:   "Workspace invite operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Invite an email address to a workspace",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "workspace", Usage: "Workspace ID", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Invitee email", Required: true},
					&cli.StringFlag{Name: "role", Usage: "OWNER, ADMIN or MEMBER", Value: "MEMBER"},
					&cli.DurationFlag{Name: "expires-in", Usage: "Invite lifetime (default 168h)"},
				}, outputFlags()),
				Action: r.WorkspaceInviteCreate,
			},
			{
				Name:  "list",
				Usage: "List workspace invites",
				Flags: flags([]cli.Flag{
					&cli.StringFlag{Name: "workspace", Usage: "Only invites to this workspace"},
					&cli.StringFlag{Name: "email", Usage: "Only invites for this email"},
					&cli.StringFlag{Name: "role", Usage: "Only invites with this role"},
				}, pageFlags(), outputFlags()),
				Action: r.WorkspaceInviteList,
			},
			{
				Name:      "revoke",
				Usage:     "Revoke a workspace invite",
				Arguments: idArg(),
				Action:    r.WorkspaceInviteRevoke,
			},
		},
	}
}
