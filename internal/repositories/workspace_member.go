package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/shared"
)

type WorkspaceMemberFilter struct {
	WorkspaceID *string
	UserID      *string
	Role        *models.MemberRole
}

type CreateWorkspaceMemberDto struct {
	WorkspaceID string            `json:"workspace_id"`
	UserID      string            `json:"user_id"`
	Role        models.MemberRole `json:"role"`
}

type UpdateWorkspaceMemberDto struct {
	WorkspaceID *string            `json:"workspace_id,omitempty"`
	UserID      *string            `json:"user_id,omitempty"`
	Role        *models.MemberRole `json:"role,omitempty"`
}

// WorkspaceMemberRepository persists [models.WorkspaceMember].
type WorkspaceMemberRepository struct {
	store *Store[models.WorkspaceMember, *models.WorkspaceMember]
}

// NewWorkspaceMemberRepository creates a new [WorkspaceMemberRepository] with the given client
func NewWorkspaceMemberRepository(client *shared.Client) *WorkspaceMemberRepository {
	return &WorkspaceMemberRepository{store: NewStore[models.WorkspaceMember](client, models.WorkspaceMemberHook())}
}

// Create inserts a workspace membership; the ID is assigned by storage.
func (r *WorkspaceMemberRepository) Create(ctx context.Context, dto CreateWorkspaceMemberDto) (*models.WorkspaceMember, error) {
	member := &models.WorkspaceMember{WorkspaceID: dto.WorkspaceID, UserID: dto.UserID, Role: dto.Role}

	if err := r.store.Insert(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create workspace member: %w", err)
	}

	return member, nil
}

// Get retrieves a workspace membership by ID.
func (r *WorkspaceMemberRepository) Get(ctx context.Context, id int32) (*models.WorkspaceMember, error) {
	return r.store.Get(ctx, id)
}

// GetMany retrieves every workspace membership matching filter within page.
func (r *WorkspaceMemberRepository) GetMany(ctx context.Context, filter WorkspaceMemberFilter, page Page) ([]*models.WorkspaceMember, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return r.store.Find(ctx, r.query(filter).Page(page.Limit, page.Offset))
}

// Count counts workspace memberships matching filter.
func (r *WorkspaceMemberRepository) Count(ctx context.Context, filter WorkspaceMemberFilter) (int64, error) {
	return r.store.Count(ctx, r.query(filter))
}

// GetOne returns the last workspace membership matching filter, or nil when none does.
func (r *WorkspaceMemberRepository) GetOne(ctx context.Context, filter WorkspaceMemberFilter) (*models.WorkspaceMember, error) {
	return r.store.Last(ctx, r.query(filter))
}

// Update applies the populated fields of dto to the membership with the given ID.
func (r *WorkspaceMemberRepository) Update(ctx context.Context, id int32, dto UpdateWorkspaceMemberDto) (*models.WorkspaceMember, error) {
	if err := validateRole(dto.Role); err != nil {
		return nil, err
	}

	member, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set(&member.WorkspaceID, dto.WorkspaceID)
	set(&member.UserID, dto.UserID)
	set(&member.Role, dto.Role)

	if err := r.store.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update workspace member: %w", err)
	}

	return member, nil
}

// Delete removes a workspace membership by ID and reports whether it existed.
func (r *WorkspaceMemberRepository) Delete(ctx context.Context, id int32) (bool, error) {
	return r.store.Delete(ctx, id)
}

func (r *WorkspaceMemberRepository) query(f WorkspaceMemberFilter) *query.Query {
	return r.store.Query().Where(
		query.Opt("workspace_id", f.WorkspaceID),
		query.Opt("user_id", f.UserID),
		query.Opt("role", roleValue(f.Role)),
	)
}
