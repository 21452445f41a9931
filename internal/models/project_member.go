package models

import (
	"time"

	"github.com/desertthunder/panelstore/internal/schema"
)

var (
	// ProjectMemberTable declares d_project_members.
	ProjectMemberTable = schema.NewTable("d_project_members",
		schema.SerialPK("id"),
		schema.Col("project_id", schema.Text),
		schema.Col("user_id", schema.Text),
		schema.Col("role", schema.Text),
	)

	// ProjectInviteTable declares t_project_invites.
	ProjectInviteTable = schema.NewTable("t_project_invites",
		schema.PK("id"),
		schema.Col("project_id", schema.Text),
		schema.Col("email", schema.Text),
		schema.Col("role", schema.Text),
		schema.Col("expire_at", schema.BigInt),
	)

	// ProjectMembers relates members to their project.
	ProjectMembers = schema.BelongsTo(ProjectMemberTable, "project_id", ProjectTable, "id")
	// ProjectInvites relates invites to their project.
	ProjectInvites = schema.BelongsTo(ProjectInviteTable, "project_id", ProjectTable, "id")
)

// ProjectMember grants a user a role on a project.
type ProjectMember struct {
	ID        int32      `json:"id"`
	ProjectID string     `json:"project_id"`
	UserID    string     `json:"user_id"`
	Role      MemberRole `json:"role"`
}

// ProjectMemberHook validates the role on create. The update hook is a no-op so rows
// holding a role written by another tool stay updatable.
func ProjectMemberHook() Hook[ProjectMember] {
	return HookFuncs[ProjectMember]{Create: func(m *ProjectMember) error { return m.Role.Validate() }}
}

func (m *ProjectMember) Table() *schema.Table { return ProjectMemberTable }

func (m *ProjectMember) Values() ([]any, error) {
	return []any{m.ID, m.ProjectID, m.UserID, string(m.Role)}, nil
}

func (m *ProjectMember) Targets() []any {
	return []any{&m.ID, &m.ProjectID, &m.UserID, (*string)(&m.Role)}
}

func (m *ProjectMember) Decode() error { return nil }

// ProjectInvite is a pending invitation to join a project.
//
// ExpireAt is a unix timestamp in seconds.
type ProjectInvite struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Email     string     `json:"email"`
	Role      MemberRole `json:"role"`
	ExpireAt  int64      `json:"expire_at"`
}

// ProjectInviteHook validates the role and assigns a new identifier on create.
func ProjectInviteHook() Hook[ProjectInvite] {
	id := assignID(func(i *ProjectInvite) *string { return &i.ID })
	return HookFuncs[ProjectInvite]{
		Create: func(i *ProjectInvite) error {
			if err := i.Role.Validate(); err != nil {
				return err
			}
			return id(i)
		},
	}
}

// Expired reports whether the invite is no longer usable at now.
func (i *ProjectInvite) Expired(now time.Time) bool {
	return i.ExpireAt <= now.Unix()
}

func (i *ProjectInvite) Table() *schema.Table { return ProjectInviteTable }

func (i *ProjectInvite) Values() ([]any, error) {
	return []any{i.ID, i.ProjectID, i.Email, string(i.Role), i.ExpireAt}, nil
}

func (i *ProjectInvite) Targets() []any {
	return []any{&i.ID, &i.ProjectID, &i.Email, (*string)(&i.Role), &i.ExpireAt}
}

func (i *ProjectInvite) Decode() error { return nil }
