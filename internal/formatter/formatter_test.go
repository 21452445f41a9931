package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
	th "github.com/desertthunder/panelstore/internal/testing"
)

func testExport() *ProjectExport {
	return &ProjectExport{
		Project: models.Project{
			ID:      "proj-123",
			Name:    "Weekly Standup",
			Owner:   "alice",
			Secret:  "s3cr3t",
			Options: models.DefaultProjectOptions(),
			Codecs:  models.DefaultProjectCodecs(),
		},
		Members: []*models.ProjectMember{
			{ID: 1, ProjectID: "proj-123", UserID: "alice", Role: models.RoleOwner},
			{ID: 2, ProjectID: "proj-123", UserID: "bob", Role: models.RoleMember},
		},
		Invites: []*models.ProjectInvite{
			{ID: "inv-1", ProjectID: "proj-123", Email: "carol@example.com", Role: models.RoleAdmin, ExpireAt: 1700000000},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Kind,ID,Subject,Role,ExpireAt") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "member,1,alice,OWNER,") {
			t.Errorf("CSV missing owner row, got: %s", output)
		}
		if !strings.Contains(output, "invite,inv-1,carol@example.com,ADMIN,1700000000") {
			t.Errorf("CSV missing invite row, got: %s", output)
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 4 {
			t.Errorf("expected 4 lines, got %d", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("expired invite", func(t *testing.T) {
			data, err := ExportToMarkdown(testExport(), time.Unix(1800000000, 0))
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			for _, want := range []string{
				"# Weekly Standup",
				"**Owner**: alice",
				"- create_automatically: true",
				"- vp9: false",
				"## Members (2)",
				"2. bob [MEMBER]",
				"1. carol@example.com [ADMIN] (expired)",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Markdown missing %q, got:\n%s", want, output)
				}
			}
		})

		t.Run("pending invite", func(t *testing.T) {
			data, err := ExportToMarkdown(testExport(), time.Unix(1600000000, 0))
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "(expires 2023-11-14T22:13:20Z)") {
				t.Errorf("Markdown missing expiry, got:\n%s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Project: Weekly Standup") {
			t.Errorf("text missing project name, got: %s", output)
		}
		if !strings.Contains(output, "Members: 2") || !strings.Contains(output, "Invites: 1") {
			t.Errorf("text missing counts, got: %s", output)
		}
		if strings.Contains(output, "s3cr3t") {
			t.Error("text export must not contain the secret")
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(testExport().Project)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("metadata is not valid JSON: %v", err)
		}

		if decoded["id"] != "proj-123" {
			t.Errorf("expected id proj-123, got %v", decoded["id"])
		}
		if _, ok := decoded["secret"]; ok {
			t.Error("metadata must not contain the secret")
		}

		codecs, ok := decoded["codecs"].(map[string]any)
		if !ok || codecs["opus"] != true {
			t.Errorf("expected resolved codecs, got %v", decoded["codecs"])
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.Contains(string(data), "s3cr3t") {
			t.Errorf("export must not contain the secret:\n%s", data)
		}

		var decoded struct {
			Project map[string]any         `json:"project"`
			Members []*models.ProjectMember `json:"members"`
			Invites []*models.ProjectInvite `json:"invites"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if decoded.Project["id"] != "proj-123" || decoded.Project["name"] != "Weekly Standup" {
			t.Errorf("unexpected project %v", decoded.Project)
		}
		if _, ok := decoded.Project["secret"]; ok {
			t.Error("project must not carry a secret key")
		}
		if len(decoded.Members) != 2 || len(decoded.Invites) != 1 {
			t.Errorf("expected 2 members and 1 invite, got %d and %d", len(decoded.Members), len(decoded.Invites))
		}

		t.Run("empty roster encodes as arrays", func(t *testing.T) {
			data, err := ExportToJSON(&ProjectExport{Project: models.Project{ID: "p"}})
			if err != nil {
				t.Fatalf("ExportToJSON failed: %v", err)
			}
			if !strings.Contains(string(data), `"members": []`) || !strings.Contains(string(data), `"invites": []`) {
				t.Errorf("expected empty arrays, got:\n%s", data)
			}
		})
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.json")
		got, err := WriteJSONExport(testExport(), path)
		if err != nil {
			t.Fatalf("WriteJSONExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected path %s, got %s", path, got)
		}
		if content := th.MustReadFile(t, path); strings.Contains(content, "s3cr3t") {
			t.Error("written export must not contain the secret")
		}
	})

	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(testExport(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.RosterFile != "proj-123_roster.csv" {
				t.Errorf("expected default roster file, got %s", result.RosterFile)
			}

			th.AssertFileExists(t, result.RosterFile)
			th.AssertFileExists(t, result.MetadataFile)

			metadataContent := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(metadataContent, "Weekly Standup") {
				t.Errorf("metadata missing project name")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "custom")

			result, err := WriteCSVExport(testExport(), base)
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			th.AssertFileExists(t, base+"_roster.csv")
			th.AssertFileExists(t, result.MetadataFile)
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")

		path, err := WriteMarkdownExport(testExport(), dir, time.Unix(0, 0))
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if path != filepath.Join(dir, "README.md") {
			t.Errorf("unexpected path %s", path)
		}
		if !strings.Contains(th.MustReadFile(t, path), "# Weekly Standup") {
			t.Error("README missing title")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.txt")

		got, err := WriteTextExport(testExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteTextExport to missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "roster.txt")
		if _, err := WriteTextExport(testExport(), path); err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}
