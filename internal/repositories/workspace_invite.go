package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/shared"
)

type WorkspaceInviteFilter struct {
	WorkspaceID *string
	Email       *string
	Role        *models.MemberRole
}

// CreateWorkspaceInviteDto invites an email address to a workspace.
// A zero ExpireAt expires the invite [InviteTTL] from now.
type CreateWorkspaceInviteDto struct {
	WorkspaceID string            `json:"workspace_id"`
	Email       string            `json:"email"`
	Role        models.MemberRole `json:"role"`
	ExpireAt    int64             `json:"expire_at,omitempty"`
}

type UpdateWorkspaceInviteDto struct {
	Email    *string            `json:"email,omitempty"`
	Role     *models.MemberRole `json:"role,omitempty"`
	ExpireAt *int64             `json:"expire_at,omitempty"`
}

// WorkspaceInviteRepository persists [models.WorkspaceInvite].
type WorkspaceInviteRepository struct {
	store *Store[models.WorkspaceInvite, *models.WorkspaceInvite]
	now   func() time.Time
}

// NewWorkspaceInviteRepository creates a new [WorkspaceInviteRepository] with the given client
func NewWorkspaceInviteRepository(client *shared.Client) *WorkspaceInviteRepository {
	return &WorkspaceInviteRepository{
		store: NewStore[models.WorkspaceInvite](client, models.WorkspaceInviteHook()),
		now:   time.Now,
	}
}

// Create inserts a workspace invite with a generated ID.
func (r *WorkspaceInviteRepository) Create(ctx context.Context, dto CreateWorkspaceInviteDto) (*models.WorkspaceInvite, error) {
	invite := &models.WorkspaceInvite{
		WorkspaceID: dto.WorkspaceID,
		Email:       dto.Email,
		Role:        dto.Role,
		ExpireAt:    expireAt(dto.ExpireAt, r.now()),
	}

	if err := r.store.Insert(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create workspace invite: %w", err)
	}

	return invite, nil
}

// Get retrieves a workspace invite by ID.
func (r *WorkspaceInviteRepository) Get(ctx context.Context, id string) (*models.WorkspaceInvite, error) {
	return r.store.Get(ctx, id)
}

// GetMany retrieves every workspace invite matching filter within page.
func (r *WorkspaceInviteRepository) GetMany(ctx context.Context, filter WorkspaceInviteFilter, page Page) ([]*models.WorkspaceInvite, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return r.store.Find(ctx, r.query(filter).Page(page.Limit, page.Offset))
}

// Count counts workspace invites matching filter.
func (r *WorkspaceInviteRepository) Count(ctx context.Context, filter WorkspaceInviteFilter) (int64, error) {
	return r.store.Count(ctx, r.query(filter))
}

// GetOne returns the last workspace invite matching filter, or nil when none does.
func (r *WorkspaceInviteRepository) GetOne(ctx context.Context, filter WorkspaceInviteFilter) (*models.WorkspaceInvite, error) {
	return r.store.Last(ctx, r.query(filter))
}

// Update applies the populated fields of dto to the invite with the given ID.
func (r *WorkspaceInviteRepository) Update(ctx context.Context, id string, dto UpdateWorkspaceInviteDto) (*models.WorkspaceInvite, error) {
	if err := validateRole(dto.Role); err != nil {
		return nil, err
	}

	invite, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set(&invite.Email, dto.Email)
	set(&invite.Role, dto.Role)
	set(&invite.ExpireAt, dto.ExpireAt)

	if err := r.store.Update(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to update workspace invite: %w", err)
	}

	return invite, nil
}

// Delete removes a workspace invite by ID and reports whether it existed.
func (r *WorkspaceInviteRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.Delete(ctx, id)
}

func (r *WorkspaceInviteRepository) query(f WorkspaceInviteFilter) *query.Query {
	return r.store.Query().Where(
		query.Opt("workspace_id", f.WorkspaceID),
		query.Opt("email", f.Email),
		query.Opt("role", roleValue(f.Role)),
	)
}
