package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/shared"
)

// ProjectMemberFilter selects project members. Nil fields do not constrain the result.
type ProjectMemberFilter struct {
	ProjectID *string
	UserID    *string
	Role      *models.MemberRole
}

// CreateProjectMemberDto adds a user to a project.
type CreateProjectMemberDto struct {
	ProjectID string            `json:"project_id"`
	UserID    string            `json:"user_id"`
	Role      models.MemberRole `json:"role"`
}

// UpdateProjectMemberDto carries a partial update; nil fields are left untouched.
type UpdateProjectMemberDto struct {
	ProjectID *string            `json:"project_id,omitempty"`
	UserID    *string            `json:"user_id,omitempty"`
	Role      *models.MemberRole `json:"role,omitempty"`
}

// ProjectMemberRepository persists [models.ProjectMember].
type ProjectMemberRepository struct {
	store *Store[models.ProjectMember, *models.ProjectMember]
}

// NewProjectMemberRepository creates a new [ProjectMemberRepository] with the given client
func NewProjectMemberRepository(client *shared.Client) *ProjectMemberRepository {
	return &ProjectMemberRepository{store: NewStore[models.ProjectMember](client, models.ProjectMemberHook())}
}

// Create inserts a membership; the ID is assigned by storage.
func (r *ProjectMemberRepository) Create(ctx context.Context, dto CreateProjectMemberDto) (*models.ProjectMember, error) {
	member := &models.ProjectMember{ProjectID: dto.ProjectID, UserID: dto.UserID, Role: dto.Role}

	if err := r.store.Insert(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create project member: %w", err)
	}

	return member, nil
}

// Get retrieves a membership by ID.
func (r *ProjectMemberRepository) Get(ctx context.Context, id int32) (*models.ProjectMember, error) {
	return r.store.Get(ctx, id)
}

// GetMany retrieves every membership matching filter within page.
func (r *ProjectMemberRepository) GetMany(ctx context.Context, filter ProjectMemberFilter, page Page) ([]*models.ProjectMember, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return r.store.Find(ctx, r.query(filter).Page(page.Limit, page.Offset))
}

// Count counts memberships matching filter.
func (r *ProjectMemberRepository) Count(ctx context.Context, filter ProjectMemberFilter) (int64, error) {
	return r.store.Count(ctx, r.query(filter))
}

// GetOne returns the last membership matching filter, or nil when none does.
func (r *ProjectMemberRepository) GetOne(ctx context.Context, filter ProjectMemberFilter) (*models.ProjectMember, error) {
	return r.store.Last(ctx, r.query(filter))
}

// Update applies the populated fields of dto to the membership with the given ID.
func (r *ProjectMemberRepository) Update(ctx context.Context, id int32, dto UpdateProjectMemberDto) (*models.ProjectMember, error) {
	if err := validateRole(dto.Role); err != nil {
		return nil, err
	}

	member, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set(&member.ProjectID, dto.ProjectID)
	set(&member.UserID, dto.UserID)
	set(&member.Role, dto.Role)

	if err := r.store.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update project member: %w", err)
	}

	return member, nil
}

// Delete removes a membership by ID and reports whether it existed.
func (r *ProjectMemberRepository) Delete(ctx context.Context, id int32) (bool, error) {
	return r.store.Delete(ctx, id)
}

func (r *ProjectMemberRepository) query(f ProjectMemberFilter) *query.Query {
	return r.store.Query().Where(
		query.Opt("project_id", f.ProjectID),
		query.Opt("user_id", f.UserID),
		query.Opt("role", roleValue(f.Role)),
	)
}
