package models

import (
	"database/sql"
	"time"

	"github.com/desertthunder/panelstore/internal/schema"
)

var (
	// WorkspaceTable declares d_workspaces.
	WorkspaceTable = schema.NewTable("d_workspaces",
		schema.PK("id"),
		schema.Col("name", schema.Text),
		schema.Col("owner", schema.Text),
		schema.NullCol("settings", schema.JSON),
	)

	// WorkspaceMemberTable declares d_workspace_members.
	WorkspaceMemberTable = schema.NewTable("d_workspace_members",
		schema.SerialPK("id"),
		schema.Col("workspace_id", schema.Text),
		schema.Col("user_id", schema.Text),
		schema.Col("role", schema.Text),
	)

	// WorkspaceInviteTable declares t_workspace_invites.
	WorkspaceInviteTable = schema.NewTable("t_workspace_invites",
		schema.PK("id"),
		schema.Col("workspace_id", schema.Text),
		schema.Col("email", schema.Text),
		schema.Col("role", schema.Text),
		schema.Col("expire_at", schema.BigInt),
	)

	WorkspaceMembers = schema.BelongsTo(WorkspaceMemberTable, "workspace_id", WorkspaceTable, "id")
	WorkspaceInvites = schema.BelongsTo(WorkspaceInviteTable, "workspace_id", WorkspaceTable, "id")
)

// WorkspaceSettings holds workspace level switches. Nil fields resolve to allow_invites=true, public=false.
type WorkspaceSettings struct {
	AllowInvites *bool `json:"allow_invites"`
	Public       *bool `json:"public"`
}

// DefaultWorkspaceSettings returns the resolved defaults.
func DefaultWorkspaceSettings() WorkspaceSettings {
	return WorkspaceSettings{}.WithDefaults()
}

// WithDefaults fills every unset field with its default.
func (s WorkspaceSettings) WithDefaults() WorkspaceSettings {
	return WorkspaceSettings{
		AllowInvites: orDefault(s.AllowInvites, true),
		Public:       orDefault(s.Public, false),
	}
}

// Workspace groups users independently of projects.
type Workspace struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Owner    string            `json:"owner"`
	Settings WorkspaceSettings `json:"settings"`

	rawSettings sql.NullString
}

// WorkspaceHook assigns a new identifier on create.
func WorkspaceHook() Hook[Workspace] {
	return HookFuncs[Workspace]{
		Create: assignID(func(w *Workspace) *string { return &w.ID }),
	}
}

func (w *Workspace) Table() *schema.Table { return WorkspaceTable }

func (w *Workspace) Values() ([]any, error) {
	settings, err := encodeBlob("settings", w.Settings)
	if err != nil {
		return nil, err
	}
	return []any{w.ID, w.Name, w.Owner, settings}, nil
}

func (w *Workspace) Targets() []any {
	return []any{&w.ID, &w.Name, &w.Owner, &w.rawSettings}
}

func (w *Workspace) Decode() error {
	var settings WorkspaceSettings
	if err := decodeBlob("settings", w.rawSettings, &settings); err != nil {
		return err
	}
	w.Settings = settings.WithDefaults()
	return nil
}

// WorkspaceMember grants a user a role in a workspace.
type WorkspaceMember struct {
	ID          int32      `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	UserID      string     `json:"user_id"`
	Role        MemberRole `json:"role"`
}

// WorkspaceMemberHook validates the role on create; updates are not checked.
func WorkspaceMemberHook() Hook[WorkspaceMember] {
	return HookFuncs[WorkspaceMember]{Create: func(m *WorkspaceMember) error { return m.Role.Validate() }}
}

func (m *WorkspaceMember) Table() *schema.Table { return WorkspaceMemberTable }

func (m *WorkspaceMember) Values() ([]any, error) {
	return []any{m.ID, m.WorkspaceID, m.UserID, string(m.Role)}, nil
}

func (m *WorkspaceMember) Targets() []any {
	return []any{&m.ID, &m.WorkspaceID, &m.UserID, (*string)(&m.Role)}
}

func (m *WorkspaceMember) Decode() error { return nil }

// WorkspaceInvite is a pending invitation to join a workspace.
type WorkspaceInvite struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Email       string     `json:"email"`
	Role        MemberRole `json:"role"`
	ExpireAt    int64      `json:"expire_at"`
}

// WorkspaceInviteHook validates the role and assigns a new identifier on create.
func WorkspaceInviteHook() Hook[WorkspaceInvite] {
	id := assignID(func(i *WorkspaceInvite) *string { return &i.ID })
	return HookFuncs[WorkspaceInvite]{
		Create: func(i *WorkspaceInvite) error {
			if err := i.Role.Validate(); err != nil {
				return err
			}
			return id(i)
		},
	}
}

// Expired reports whether the invite is no longer usable at now.
func (i *WorkspaceInvite) Expired(now time.Time) bool {
	return i.ExpireAt <= now.Unix()
}

func (i *WorkspaceInvite) Table() *schema.Table { return WorkspaceInviteTable }

func (i *WorkspaceInvite) Values() ([]any, error) {
	return []any{i.ID, i.WorkspaceID, i.Email, string(i.Role), i.ExpireAt}, nil
}

func (i *WorkspaceInvite) Targets() []any {
	return []any{&i.ID, &i.WorkspaceID, &i.Email, (*string)(&i.Role), &i.ExpireAt}
}

func (i *WorkspaceInvite) Decode() error { return nil }
