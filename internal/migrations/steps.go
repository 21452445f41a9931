package migrations

import "github.com/desertthunder/panelstore/internal/schema"

// Table shapes are frozen here as they were at each version, so later model changes
// need a new step instead of silently rewriting an applied one.
var (
	initProjects = schema.NewTable("d_projects",
		schema.PK("id"),
		schema.Col("name", schema.Text),
		schema.Col("owner", schema.Text),
		schema.Col("secret", schema.Text),
		schema.NullCol("options", schema.JSON),
		schema.NullCol("codecs", schema.JSON),
	)
	initProjectMembers = schema.NewTable("d_project_members",
		schema.SerialPK("id"),
		schema.Col("project_id", schema.Text),
		schema.Col("user_id", schema.Text),
		schema.Col("role", schema.Text),
	)
	initProjectInvites = schema.NewTable("t_project_invites",
		schema.PK("id"),
		schema.Col("project_id", schema.Text),
		schema.Col("email", schema.Text),
		schema.Col("role", schema.Text),
		schema.Col("expire_at", schema.BigInt),
	)
	initWorkspaces = schema.NewTable("d_workspaces",
		schema.PK("id"),
		schema.Col("name", schema.Text),
		schema.Col("owner", schema.Text),
		schema.NullCol("settings", schema.JSON),
	)
	initWorkspaceMembers = schema.NewTable("d_workspace_members",
		schema.SerialPK("id"),
		schema.Col("workspace_id", schema.Text),
		schema.Col("user_id", schema.Text),
		schema.Col("role", schema.Text),
	)
	initWorkspaceInvites = schema.NewTable("t_workspace_invites",
		schema.PK("id"),
		schema.Col("workspace_id", schema.Text),
		schema.Col("email", schema.Text),
		schema.Col("role", schema.Text),
		schema.Col("expire_at", schema.BigInt),
	)
)

// Steps returns every migration step in ascending version order.
func Steps() []Step {
	return []Step{
		{
			Version: 20241102000000,
			Name:    "init",
			Up: []Change{
				CreateTable{initProjects},
				CreateTable{initProjectMembers},
				CreateTable{initProjectInvites},
				CreateTable{initWorkspaces},
				CreateTable{initWorkspaceMembers},
				CreateTable{initWorkspaceInvites},
			},
			Down: []Change{
				DropTable{"t_workspace_invites"},
				DropTable{"d_workspace_members"},
				DropTable{"d_workspaces"},
				DropTable{"t_project_invites"},
				DropTable{"d_project_members"},
				DropTable{"d_projects"},
			},
		},
		{
			Version: 20241215000000,
			Name:    "foreign_key_indexes",
			Up: []Change{
				CreateIndex{"idx_d_project_members_project_id", "d_project_members", "project_id"},
				CreateIndex{"idx_t_project_invites_project_id", "t_project_invites", "project_id"},
				CreateIndex{"idx_d_workspace_members_workspace_id", "d_workspace_members", "workspace_id"},
				CreateIndex{"idx_t_workspace_invites_workspace_id", "t_workspace_invites", "workspace_id"},
			},
			Down: []Change{
				DropIndex{"idx_t_workspace_invites_workspace_id"},
				DropIndex{"idx_d_workspace_members_workspace_id"},
				DropIndex{"idx_t_project_invites_project_id"},
				DropIndex{"idx_d_project_members_project_id"},
			},
		},
	}
}
