package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/shared"
)

// ProjectFilter selects projects. Nil fields do not constrain the result.
//
// MemberUserID and MemberRole must hold for the same member row; InviteEmail matches
// projects with at least one invite for that address.
type ProjectFilter struct {
	ID           *string
	Name         *string
	Owner        *string
	MemberUserID *string
	MemberRole   *models.MemberRole
	InviteEmail  *string
}

// CreateProjectDto carries the caller supplied fields of a new project.
type CreateProjectDto struct {
	Name    string                 `json:"name"`
	Owner   string                 `json:"owner"`
	Secret  string                 `json:"secret"`
	Options *models.ProjectOptions `json:"options,omitempty"`
	Codecs  *models.ProjectCodecs  `json:"codecs,omitempty"`
}

// UpdateProjectDto carries a partial update; nil fields are left untouched.
type UpdateProjectDto struct {
	Name    *string                `json:"name,omitempty"`
	Owner   *string                `json:"owner,omitempty"`
	Secret  *string                `json:"secret,omitempty"`
	Options *models.ProjectOptions `json:"options,omitempty"`
	Codecs  *models.ProjectCodecs  `json:"codecs,omitempty"`
}

// ProjectRepository persists [models.Project].
type ProjectRepository struct {
	store *Store[models.Project, *models.Project]
}

// NewProjectRepository creates a new [ProjectRepository] with the given client
func NewProjectRepository(client *shared.Client) *ProjectRepository {
	return &ProjectRepository{store: NewStore[models.Project](client, models.ProjectHook())}
}

// Create inserts a new project with a generated ID. Missing blobs are stored with their defaults.
func (r *ProjectRepository) Create(ctx context.Context, dto CreateProjectDto) (*models.Project, error) {
	project := &models.Project{
		Name:    dto.Name,
		Owner:   dto.Owner,
		Secret:  dto.Secret,
		Options: resolveOptions(dto.Options),
		Codecs:  resolveCodecs(dto.Codecs),
	}

	if err := r.store.Insert(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	return r.store.Get(ctx, id)
}

// GetMany retrieves every project matching filter within page.
func (r *ProjectRepository) GetMany(ctx context.Context, filter ProjectFilter, page Page) ([]*models.Project, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return r.store.Find(ctx, r.query(filter).Page(page.Limit, page.Offset))
}

// Count counts projects matching filter.
func (r *ProjectRepository) Count(ctx context.Context, filter ProjectFilter) (int64, error) {
	return r.store.Count(ctx, r.query(filter))
}

// GetOne returns the last project matching filter, or nil when none does.
func (r *ProjectRepository) GetOne(ctx context.Context, filter ProjectFilter) (*models.Project, error) {
	return r.store.Last(ctx, r.query(filter))
}

// Update applies the populated fields of dto to the project with the given ID.
func (r *ProjectRepository) Update(ctx context.Context, id string, dto UpdateProjectDto) (*models.Project, error) {
	project, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set(&project.Name, dto.Name)
	set(&project.Owner, dto.Owner)
	set(&project.Secret, dto.Secret)
	if dto.Options != nil {
		project.Options = dto.Options.WithDefaults()
	}
	if dto.Codecs != nil {
		project.Codecs = dto.Codecs.WithDefaults()
	}

	if err := r.store.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes a project by ID and reports whether it existed.
//
// Members and invites of the project are left in place.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.Delete(ctx, id)
}

func (r *ProjectRepository) query(f ProjectFilter) *query.Query {
	return r.store.Query().
		Where(
			query.Opt("id", f.ID),
			query.Opt("name", f.Name),
			query.Opt("owner", f.Owner),
		).
		WhereHas(models.ProjectMembers,
			query.Opt("user_id", f.MemberUserID),
			query.Opt("role", roleValue(f.MemberRole)),
		).
		WhereHas(models.ProjectInvites, query.Opt("email", f.InviteEmail))
}

func resolveOptions(o *models.ProjectOptions) models.ProjectOptions {
	if o == nil {
		return models.DefaultProjectOptions()
	}
	return o.WithDefaults()
}

func resolveCodecs(c *models.ProjectCodecs) models.ProjectCodecs {
	if c == nil {
		return models.DefaultProjectCodecs()
	}
	return c.WithDefaults()
}
