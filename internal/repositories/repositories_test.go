package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/shared"
	th "github.com/desertthunder/panelstore/internal/testing"
)

func ptr[T any](v T) *T { return shared.Ptr(v) }

func seedProject(t *testing.T, repo *ProjectRepository, name, owner string) *models.Project {
	t.Helper()
	p, err := repo.Create(context.Background(), CreateProjectDto{Name: name, Owner: owner, Secret: "s"})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return p
}

func ids(projects []*models.Project) map[string]bool {
	out := make(map[string]bool, len(projects))
	for _, p := range projects {
		out[p.ID] = true
	}
	return out
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))

		project, err := repo.Create(ctx, CreateProjectDto{Name: "alpha", Owner: "u1", Secret: "x"})
		if err != nil {
			t.Fatalf("failed to create project: %v", err)
		}

		if len(project.ID) != 36 {
			t.Errorf("expected generated uuid, got %q", project.ID)
		}
		if !*project.Options.CreateAutomatically || !*project.Codecs.Opus {
			t.Errorf("expected default blobs, got %+v %+v", project.Options, project.Codecs)
		}
	})

	t.Run("Create assigns unique ids", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		seen := make(map[string]bool)
		for range 5 {
			p := seedProject(t, repo, "same", "u1")
			if seen[p.ID] {
				t.Fatalf("duplicate id %s", p.ID)
			}
			seen[p.ID] = true
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		no := false
		created, err := repo.Create(ctx, CreateProjectDto{
			Name:   "alpha",
			Owner:  "u1",
			Secret: "x",
			Codecs: &models.ProjectCodecs{H264: &no},
		})
		if err != nil {
			t.Fatalf("failed to create project: %v", err)
		}

		got, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get project: %v", err)
		}

		if got.Name != "alpha" || got.Owner != "u1" || got.Secret != "x" {
			t.Errorf("unexpected project %+v", got)
		}
		if *got.Codecs.H264 || !*got.Codecs.Opus {
			t.Errorf("codecs did not round trip: %+v", got.Codecs)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetMany with empty filter returns everything", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		seedProject(t, repo, "alpha", "u1")
		seedProject(t, repo, "beta", "u2")

		all, err := repo.GetMany(ctx, ProjectFilter{}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 projects, got %d", len(all))
		}
	})

	t.Run("GetMany narrows monotonically", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		seedProject(t, repo, "alpha", "u1")
		seedProject(t, repo, "beta", "u1")
		seedProject(t, repo, "alpha", "u2")

		byOwner, err := repo.GetMany(ctx, ProjectFilter{Owner: ptr("u1")}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		both, err := repo.GetMany(ctx, ProjectFilter{Owner: ptr("u1"), Name: ptr("alpha")}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}

		if len(byOwner) != 2 || len(both) != 1 {
			t.Fatalf("expected 2 then 1, got %d then %d", len(byOwner), len(both))
		}
		if !ids(byOwner)[both[0].ID] {
			t.Error("narrower result is not a subset")
		}
	})

	t.Run("GetMany pagination", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		for range 5 {
			seedProject(t, repo, "p", "u1")
		}

		first, err := repo.GetMany(ctx, ProjectFilter{}, Page{Limit: ptr(int64(2))})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		rest, err := repo.GetMany(ctx, ProjectFilter{}, Page{Offset: ptr(int64(2))})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		none, err := repo.GetMany(ctx, ProjectFilter{}, Page{Limit: ptr(int64(0))})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}

		if len(first) != 2 || len(rest) != 3 || len(none) != 0 {
			t.Errorf("expected 2/3/0 rows, got %d/%d/%d", len(first), len(rest), len(none))
		}
	})

	t.Run("GetMany rejects negative page bounds", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		seedProject(t, repo, "p", "u1")
		seedProject(t, repo, "q", "u1")

		tc := []struct {
			name string
			page Page
		}{
			{name: "limit", page: Page{Limit: ptr(int64(-1))}},
			{name: "offset", page: Page{Offset: ptr(int64(-5))}},
			{name: "both", page: Page{Limit: ptr(int64(-1)), Offset: ptr(int64(-5))}},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				rows, err := repo.GetMany(ctx, ProjectFilter{}, tt.page)
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				if rows != nil {
					t.Errorf("expected no rows, got %d", len(rows))
				}
			})
		}

		members := NewProjectMemberRepository(th.NewTestClient(t))
		if _, err := members.GetMany(ctx, ProjectMemberFilter{}, Page{Limit: ptr(int64(-3))}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument from member GetMany, got %v", err)
		}
	})

	t.Run("member filter returns each project once", func(t *testing.T) {
		client := th.NewTestClient(t)
		repo := NewProjectRepository(client)
		members := NewProjectMemberRepository(client)

		shared1 := seedProject(t, repo, "shared", "u1")
		seedProject(t, repo, "other", "u1")

		for _, role := range []models.MemberRole{models.RoleAdmin, models.RoleMember} {
			if _, err := members.Create(ctx, CreateProjectMemberDto{ProjectID: shared1.ID, UserID: "u7", Role: role}); err != nil {
				t.Fatalf("failed to add member: %v", err)
			}
		}

		got, err := repo.GetMany(ctx, ProjectFilter{MemberUserID: ptr("u7")}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != shared1.ID {
			t.Errorf("expected only %s once, got %d rows", shared1.ID, len(got))
		}

		n, err := repo.Count(ctx, ProjectFilter{MemberUserID: ptr("u7")})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected count 1, got %d", n)
		}

		owners, err := repo.GetMany(ctx, ProjectFilter{MemberUserID: ptr("u7"), MemberRole: ptr(models.RoleOwner)}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		if len(owners) != 0 {
			t.Errorf("expected no project where u7 is owner, got %d", len(owners))
		}
	})

	t.Run("invite filter", func(t *testing.T) {
		client := th.NewTestClient(t)
		repo := NewProjectRepository(client)
		invites := NewProjectInviteRepository(client)

		p := seedProject(t, repo, "alpha", "u1")
		seedProject(t, repo, "beta", "u1")
		if _, err := invites.Create(ctx, CreateProjectInviteDto{ProjectID: p.ID, Email: "a@x.io", Role: models.RoleMember}); err != nil {
			t.Fatalf("failed to create invite: %v", err)
		}

		got, err := repo.GetMany(ctx, ProjectFilter{InviteEmail: ptr("a@x.io")}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != p.ID {
			t.Errorf("expected project %s, got %d rows", p.ID, len(got))
		}
	})

	t.Run("Count matches GetMany", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		seedProject(t, repo, "alpha", "u1")
		seedProject(t, repo, "beta", "u1")
		seedProject(t, repo, "gamma", "u2")

		for _, f := range []ProjectFilter{{}, {Owner: ptr("u1")}, {Name: ptr("nope")}} {
			rows, err := repo.GetMany(ctx, f, Page{})
			if err != nil {
				t.Fatalf("GetMany failed: %v", err)
			}
			n, err := repo.Count(ctx, f)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if int64(len(rows)) != n {
				t.Errorf("filter %+v: GetMany=%d Count=%d", f, len(rows), n)
			}
		}
	})

	t.Run("GetOne", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		p := seedProject(t, repo, "alpha", "u1")

		got, err := repo.GetOne(ctx, ProjectFilter{Name: ptr("alpha")})
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if got == nil || got.ID != p.ID {
			t.Errorf("expected %s, got %+v", p.ID, got)
		}

		missing, err := repo.GetOne(ctx, ProjectFilter{Name: ptr("nope")})
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if missing != nil {
			t.Errorf("expected nil, got %+v", missing)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		p := seedProject(t, repo, "alpha", "u1")

		yes := true
		updated, err := repo.Update(ctx, p.ID, UpdateProjectDto{
			Name:    ptr("renamed"),
			Options: &models.ProjectOptions{Record: &yes},
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		if updated.Name != "renamed" || updated.Owner != "u1" || updated.ID != p.ID {
			t.Errorf("unexpected update result %+v", updated)
		}

		got, err := repo.Get(ctx, p.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "renamed" || !*got.Options.Record || !*got.Options.CreateAutomatically {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("empty Update leaves the row unchanged", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		p := seedProject(t, repo, "alpha", "u1")

		updated, err := repo.Update(ctx, p.ID, UpdateProjectDto{})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Name != p.Name || updated.Owner != p.Owner || updated.Secret != p.Secret {
			t.Errorf("empty update changed fields: %+v", updated)
		}
	})

	t.Run("Update missing", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		if _, err := repo.Update(ctx, "missing", UpdateProjectDto{Name: ptr("x")}); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewProjectRepository(th.NewTestClient(t))
		p := seedProject(t, repo, "alpha", "u1")

		deleted, err := repo.Delete(ctx, p.ID)
		if err != nil || !deleted {
			t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
		}

		again, err := repo.Delete(ctx, p.ID)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if again {
			t.Error("second delete should report false")
		}

		if _, err := repo.Get(ctx, p.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("NULL blobs read back as defaults", func(t *testing.T) {
		client := th.NewTestClient(t)
		repo := NewProjectRepository(client)
		th.MustExec(t, client.DB, `INSERT INTO d_projects (id, name, owner, secret) VALUES ('legacy', 'old', 'u1', 's')`)

		got, err := repo.Get(ctx, "legacy")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !*got.Options.CreateAutomatically || *got.Codecs.VP9 {
			t.Errorf("expected defaults, got %+v %+v", got.Options, got.Codecs)
		}
	})

	t.Run("malformed blob fails the read", func(t *testing.T) {
		client := th.NewTestClient(t)
		repo := NewProjectRepository(client)
		th.MustExec(t, client.DB, `INSERT INTO d_projects (id, name, owner, secret, options) VALUES ('bad', 'b', 'u1', 's', '{oops')`)

		if _, err := repo.Get(ctx, "bad"); !errors.Is(err, shared.ErrSerialization) {
			t.Errorf("expected ErrSerialization, got %v", err)
		}
	})
}

func TestProjectMemberRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CRUD", func(t *testing.T) {
		repo := NewProjectMemberRepository(th.NewTestClient(t))

		first, err := repo.Create(ctx, CreateProjectMemberDto{ProjectID: "p1", UserID: "u1", Role: models.RoleOwner})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		second, err := repo.Create(ctx, CreateProjectMemberDto{ProjectID: "p1", UserID: "u2", Role: models.RoleMember})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if first.ID == 0 || first.ID == second.ID {
			t.Errorf("expected distinct storage ids, got %d and %d", first.ID, second.ID)
		}

		updated, err := repo.Update(ctx, second.ID, UpdateProjectMemberDto{Role: ptr(models.RoleAdmin)})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Role != models.RoleAdmin || updated.UserID != "u2" {
			t.Errorf("unexpected update result %+v", updated)
		}

		admins, err := repo.GetMany(ctx, ProjectMemberFilter{ProjectID: ptr("p1"), Role: ptr(models.RoleAdmin)}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		if len(admins) != 1 || admins[0].ID != second.ID {
			t.Errorf("expected member %d, got %d rows", second.ID, len(admins))
		}

		deleted, err := repo.Delete(ctx, first.ID)
		if err != nil || !deleted {
			t.Fatalf("Delete failed: %v %v", deleted, err)
		}
		n, err := repo.Count(ctx, ProjectMemberFilter{})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 member left, got %d", n)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		repo := NewProjectMemberRepository(th.NewTestClient(t))

		if _, err := repo.Create(ctx, CreateProjectMemberDto{ProjectID: "p1", UserID: "u1", Role: "GUEST"}); !errors.Is(err, shared.ErrInvalidRole) {
			t.Errorf("expected ErrInvalidRole, got %v", err)
		}

		m, err := repo.Create(ctx, CreateProjectMemberDto{ProjectID: "p1", UserID: "u1", Role: models.RoleMember})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := repo.Update(ctx, m.ID, UpdateProjectMemberDto{Role: ptr(models.MemberRole("x"))}); !errors.Is(err, shared.ErrInvalidRole) {
			t.Errorf("expected ErrInvalidRole on update, got %v", err)
		}
	})

	t.Run("stored unknown role stays updatable", func(t *testing.T) {
		client := th.NewTestClient(t)
		repo := NewProjectMemberRepository(client)
		th.MustExec(t, client.DB, "INSERT INTO d_project_members (project_id, user_id, role) VALUES (?, ?, ?)", "p1", "u1", "guest")

		legacy, err := repo.GetOne(ctx, ProjectMemberFilter{UserID: ptr("u1")})
		if err != nil || legacy == nil {
			t.Fatalf("GetOne failed: %v %v", legacy, err)
		}
		if legacy.Role != "guest" {
			t.Errorf("expected stored role to be returned as is, got %q", legacy.Role)
		}

		same, err := repo.Update(ctx, legacy.ID, UpdateProjectMemberDto{})
		if err != nil {
			t.Fatalf("empty update failed: %v", err)
		}
		if same.Role != "guest" || same.UserID != "u1" {
			t.Errorf("empty update changed the row: %+v", same)
		}

		moved, err := repo.Update(ctx, legacy.ID, UpdateProjectMemberDto{UserID: ptr("u2")})
		if err != nil {
			t.Fatalf("user update failed: %v", err)
		}
		if moved.UserID != "u2" || moved.Role != "guest" {
			t.Errorf("unexpected update result %+v", moved)
		}

		fixed, err := repo.Update(ctx, legacy.ID, UpdateProjectMemberDto{Role: ptr(models.RoleMember)})
		if err != nil {
			t.Fatalf("role update failed: %v", err)
		}
		if fixed.Role != models.RoleMember {
			t.Errorf("expected role MEMBER, got %q", fixed.Role)
		}
	})
}

func TestProjectInviteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("default expiry", func(t *testing.T) {
		repo := NewProjectInviteRepository(th.NewTestClient(t))
		now := time.Unix(1_700_000_000, 0)
		repo.now = func() time.Time { return now }

		inv, err := repo.Create(ctx, CreateProjectInviteDto{ProjectID: "p1", Email: "a@x.io", Role: models.RoleMember})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if inv.ExpireAt != now.Add(InviteTTL).Unix() {
			t.Errorf("expected default expiry, got %d", inv.ExpireAt)
		}

		explicit, err := repo.Create(ctx, CreateProjectInviteDto{ProjectID: "p1", Email: "b@x.io", Role: models.RoleAdmin, ExpireAt: 42})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if explicit.ExpireAt != 42 {
			t.Errorf("expected explicit expiry, got %d", explicit.ExpireAt)
		}
	})

	t.Run("CRUD", func(t *testing.T) {
		repo := NewProjectInviteRepository(th.NewTestClient(t))

		inv, err := repo.Create(ctx, CreateProjectInviteDto{ProjectID: "p1", Email: "a@x.io", Role: models.RoleMember, ExpireAt: 100})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := repo.GetOne(ctx, ProjectInviteFilter{Email: ptr("a@x.io")})
		if err != nil || got == nil {
			t.Fatalf("GetOne failed: %v %v", got, err)
		}
		if got.ID != inv.ID || got.ExpireAt != 100 {
			t.Errorf("unexpected invite %+v", got)
		}

		updated, err := repo.Update(ctx, inv.ID, UpdateProjectInviteDto{ExpireAt: ptr(int64(200))})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.ExpireAt != 200 || updated.Email != "a@x.io" {
			t.Errorf("unexpected update result %+v", updated)
		}

		deleted, err := repo.Delete(ctx, inv.ID)
		if err != nil || !deleted {
			t.Fatalf("Delete failed: %v %v", deleted, err)
		}
		if _, err := repo.Get(ctx, inv.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestWorkspaceRepositories(t *testing.T) {
	ctx := context.Background()
	client := th.NewTestClient(t)
	workspaces := NewWorkspaceRepository(client)
	members := NewWorkspaceMemberRepository(client)
	invites := NewWorkspaceInviteRepository(client)

	public := true
	ws, err := workspaces.Create(ctx, CreateWorkspaceDto{Name: "eng", Owner: "u1", Settings: &models.WorkspaceSettings{Public: &public}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other, err := workspaces.Create(ctx, CreateWorkspaceDto{Name: "ops", Owner: "u1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("settings round trip", func(t *testing.T) {
		got, err := workspaces.Get(ctx, ws.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !*got.Settings.Public || !*got.Settings.AllowInvites {
			t.Errorf("unexpected settings %+v", got.Settings)
		}

		plain, err := workspaces.Get(ctx, other.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if *plain.Settings.Public {
			t.Error("expected default public=false")
		}
	})

	t.Run("relation filters", func(t *testing.T) {
		if _, err := members.Create(ctx, CreateWorkspaceMemberDto{WorkspaceID: ws.ID, UserID: "u9", Role: models.RoleAdmin}); err != nil {
			t.Fatalf("member Create failed: %v", err)
		}
		if _, err := invites.Create(ctx, CreateWorkspaceInviteDto{WorkspaceID: other.ID, Email: "z@x.io", Role: models.RoleMember}); err != nil {
			t.Fatalf("invite Create failed: %v", err)
		}

		byMember, err := workspaces.GetMany(ctx, WorkspaceFilter{MemberUserID: ptr("u9")}, Page{})
		if err != nil {
			t.Fatalf("GetMany failed: %v", err)
		}
		if len(byMember) != 1 || byMember[0].ID != ws.ID {
			t.Errorf("expected workspace %s, got %d rows", ws.ID, len(byMember))
		}

		byInvite, err := workspaces.GetOne(ctx, WorkspaceFilter{InviteEmail: ptr("z@x.io")})
		if err != nil || byInvite == nil {
			t.Fatalf("GetOne failed: %v %v", byInvite, err)
		}
		if byInvite.ID != other.ID {
			t.Errorf("expected workspace %s, got %s", other.ID, byInvite.ID)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		updated, err := workspaces.Update(ctx, other.ID, UpdateWorkspaceDto{Owner: ptr("u2")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Owner != "u2" || updated.Name != "ops" {
			t.Errorf("unexpected update result %+v", updated)
		}

		n, err := workspaces.Count(ctx, WorkspaceFilter{Owner: ptr("u1")})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 workspace owned by u1, got %d", n)
		}

		deleted, err := workspaces.Delete(ctx, other.ID)
		if err != nil || !deleted {
			t.Fatalf("Delete failed: %v %v", deleted, err)
		}

		left, err := invites.Count(ctx, WorkspaceInviteFilter{WorkspaceID: ptr(other.ID)})
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if left != 1 {
			t.Errorf("deleting a workspace must not cascade, got %d invites", left)
		}
	})

	t.Run("member update", func(t *testing.T) {
		m, err := members.GetOne(ctx, WorkspaceMemberFilter{UserID: ptr("u9")})
		if err != nil || m == nil {
			t.Fatalf("GetOne failed: %v %v", m, err)
		}

		updated, err := members.Update(ctx, m.ID, UpdateWorkspaceMemberDto{Role: ptr(models.RoleOwner)})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Role != models.RoleOwner {
			t.Errorf("expected OWNER, got %s", updated.Role)
		}

		if _, err := members.Update(ctx, 9999, UpdateWorkspaceMemberDto{}); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
