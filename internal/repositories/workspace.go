package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/shared"
)

// WorkspaceFilter selects workspaces. Nil fields do not constrain the result.
type WorkspaceFilter struct {
	ID           *string
	Name         *string
	Owner        *string
	MemberUserID *string
	MemberRole   *models.MemberRole
	InviteEmail  *string
}

// CreateWorkspaceDto carries the caller supplied fields of a new workspace.
type CreateWorkspaceDto struct {
	Name     string                    `json:"name"`
	Owner    string                    `json:"owner"`
	Settings *models.WorkspaceSettings `json:"settings,omitempty"`
}

// UpdateWorkspaceDto carries a partial update; nil fields are left untouched.
type UpdateWorkspaceDto struct {
	Name     *string                   `json:"name,omitempty"`
	Owner    *string                   `json:"owner,omitempty"`
	Settings *models.WorkspaceSettings `json:"settings,omitempty"`
}

// WorkspaceRepository persists [models.Workspace].
type WorkspaceRepository struct {
	store *Store[models.Workspace, *models.Workspace]
}

// NewWorkspaceRepository creates a new [WorkspaceRepository] with the given client
func NewWorkspaceRepository(client *shared.Client) *WorkspaceRepository {
	return &WorkspaceRepository{store: NewStore[models.Workspace](client, models.WorkspaceHook())}
}

// Create inserts a new workspace with a generated ID. Missing settings are stored with their defaults.
func (r *WorkspaceRepository) Create(ctx context.Context, dto CreateWorkspaceDto) (*models.Workspace, error) {
	workspace := &models.Workspace{
		Name:     dto.Name,
		Owner:    dto.Owner,
		Settings: models.DefaultWorkspaceSettings(),
	}
	if dto.Settings != nil {
		workspace.Settings = dto.Settings.WithDefaults()
	}

	if err := r.store.Insert(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// Get retrieves a workspace by ID.
func (r *WorkspaceRepository) Get(ctx context.Context, id string) (*models.Workspace, error) {
	return r.store.Get(ctx, id)
}

// GetMany retrieves every workspace matching filter within page.
func (r *WorkspaceRepository) GetMany(ctx context.Context, filter WorkspaceFilter, page Page) ([]*models.Workspace, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return r.store.Find(ctx, r.query(filter).Page(page.Limit, page.Offset))
}

// Count counts workspaces matching filter.
func (r *WorkspaceRepository) Count(ctx context.Context, filter WorkspaceFilter) (int64, error) {
	return r.store.Count(ctx, r.query(filter))
}

// GetOne returns the last workspace matching filter, or nil when none does.
func (r *WorkspaceRepository) GetOne(ctx context.Context, filter WorkspaceFilter) (*models.Workspace, error) {
	return r.store.Last(ctx, r.query(filter))
}

// Update applies the populated fields of dto to the workspace with the given ID.
func (r *WorkspaceRepository) Update(ctx context.Context, id string, dto UpdateWorkspaceDto) (*models.Workspace, error) {
	workspace, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set(&workspace.Name, dto.Name)
	set(&workspace.Owner, dto.Owner)
	if dto.Settings != nil {
		workspace.Settings = dto.Settings.WithDefaults()
	}

	if err := r.store.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return workspace, nil
}

// Delete removes a workspace by ID and reports whether it existed.
// Members and invites of the workspace are left in place.
func (r *WorkspaceRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.Delete(ctx, id)
}

func (r *WorkspaceRepository) query(f WorkspaceFilter) *query.Query {
	return r.store.Query().
		Where(
			query.Opt("id", f.ID),
			query.Opt("name", f.Name),
			query.Opt("owner", f.Owner),
		).
		WhereHas(models.WorkspaceMembers,
			query.Opt("user_id", f.MemberUserID),
			query.Opt("role", roleValue(f.MemberRole)),
		).
		WhereHas(models.WorkspaceInvites, query.Opt("email", f.InviteEmail))
}
