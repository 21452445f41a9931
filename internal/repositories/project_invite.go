package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/shared"
)

// InviteTTL is the lifetime given to invites created without an expiry.
const InviteTTL = 7 * 24 * time.Hour

// ProjectInviteFilter selects project invites. Nil fields do not constrain the result.
type ProjectInviteFilter struct {
	ProjectID *string
	Email     *string
	Role      *models.MemberRole
}

// CreateProjectInviteDto invites an email address to a project.
//
// A zero ExpireAt expires the invite [InviteTTL] from now.
type CreateProjectInviteDto struct {
	ProjectID string            `json:"project_id"`
	Email     string            `json:"email"`
	Role      models.MemberRole `json:"role"`
	ExpireAt  int64             `json:"expire_at,omitempty"`
}

// UpdateProjectInviteDto carries a partial update; nil fields are left untouched.
type UpdateProjectInviteDto struct {
	Email    *string            `json:"email,omitempty"`
	Role     *models.MemberRole `json:"role,omitempty"`
	ExpireAt *int64             `json:"expire_at,omitempty"`
}

// ProjectInviteRepository persists [models.ProjectInvite].
type ProjectInviteRepository struct {
	store *Store[models.ProjectInvite, *models.ProjectInvite]
	now   func() time.Time
}

// NewProjectInviteRepository creates a new [ProjectInviteRepository] with the given client
func NewProjectInviteRepository(client *shared.Client) *ProjectInviteRepository {
	return &ProjectInviteRepository{
		store: NewStore[models.ProjectInvite](client, models.ProjectInviteHook()),
		now:   time.Now,
	}
}

// Create inserts an invite with a generated ID.
func (r *ProjectInviteRepository) Create(ctx context.Context, dto CreateProjectInviteDto) (*models.ProjectInvite, error) {
	invite := &models.ProjectInvite{
		ProjectID: dto.ProjectID,
		Email:     dto.Email,
		Role:      dto.Role,
		ExpireAt:  expireAt(dto.ExpireAt, r.now()),
	}

	if err := r.store.Insert(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create project invite: %w", err)
	}

	return invite, nil
}

// Get retrieves an invite by ID.
func (r *ProjectInviteRepository) Get(ctx context.Context, id string) (*models.ProjectInvite, error) {
	return r.store.Get(ctx, id)
}

// GetMany retrieves every invite matching filter within page.
func (r *ProjectInviteRepository) GetMany(ctx context.Context, filter ProjectInviteFilter, page Page) ([]*models.ProjectInvite, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return r.store.Find(ctx, r.query(filter).Page(page.Limit, page.Offset))
}

// Count counts invites matching filter.
func (r *ProjectInviteRepository) Count(ctx context.Context, filter ProjectInviteFilter) (int64, error) {
	return r.store.Count(ctx, r.query(filter))
}

// GetOne returns the last invite matching filter, or nil when none does.
func (r *ProjectInviteRepository) GetOne(ctx context.Context, filter ProjectInviteFilter) (*models.ProjectInvite, error) {
	return r.store.Last(ctx, r.query(filter))
}

// Update applies the populated fields of dto to the invite with the given ID.
func (r *ProjectInviteRepository) Update(ctx context.Context, id string, dto UpdateProjectInviteDto) (*models.ProjectInvite, error) {
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
		return nil, fmt.Errorf("failed to update project invite: %w", err)
	}

	return invite, nil
}

// Delete removes an invite by ID and reports whether it existed.
func (r *ProjectInviteRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.Delete(ctx, id)
}

func (r *ProjectInviteRepository) query(f ProjectInviteFilter) *query.Query {
	return r.store.Query().Where(
		query.Opt("project_id", f.ProjectID),
		query.Opt("email", f.Email),
		query.Opt("role", roleValue(f.Role)),
	)
}

func expireAt(requested int64, now time.Time) int64 {
	if requested != 0 {
		return requested
	}
	return now.Add(InviteTTL).Unix()
}
