// package formatter provides functions to export project data to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/desertthunder/panelstore/internal/models"
)

// ProjectExport bundles a project with its members and invites.
type ProjectExport struct {
	Project models.Project          `json:"project"`
	Members []*models.ProjectMember `json:"members"`
	Invites []*models.ProjectInvite `json:"invites"`
}

// projectMetadata is the exported view of a project. The secret is never written out.
type projectMetadata struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Owner   string                `json:"owner"`
	Options models.ProjectOptions `json:"options"`
	Codecs  models.ProjectCodecs  `json:"codecs"`
}

func metadataOf(p models.Project) projectMetadata {
	return projectMetadata{ID: p.ID, Name: p.Name, Owner: p.Owner, Options: p.Options, Codecs: p.Codecs}
}

// ExportToCSV converts a ProjectExport to CSV format with columns: Kind, ID, Subject, Role, ExpireAt
//
// Members have their user ID as subject and no expiry; invites have their email.
func ExportToCSV(export *ProjectExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Kind", "ID", "Subject", "Role", "ExpireAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range export.Members {
		record := []string{"member", strconv.Itoa(int(m.ID)), m.UserID, m.Role.String(), ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, i := range export.Invites {
		record := []string{"invite", i.ID, i.Email, i.Role.String(), strconv.FormatInt(i.ExpireAt, 10)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ProjectExport to Markdown format. Invites are marked expired relative to now.
func ExportToMarkdown(export *ProjectExport, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	p := export.Project

	fmt.Fprintf(&buf, "# %s\n\n", p.Name)
	fmt.Fprintf(&buf, "**ID**: %s\n", p.ID)
	fmt.Fprintf(&buf, "**Owner**: %s\n\n", p.Owner)

	buf.WriteString("## Options\n\n")
	fmt.Fprintf(&buf, "- create_automatically: %t\n", deref(p.Options.CreateAutomatically))
	fmt.Fprintf(&buf, "- admin_mute: %t\n", deref(p.Options.AdminMute))
	fmt.Fprintf(&buf, "- record: %t\n\n", deref(p.Options.Record))

	buf.WriteString("## Codecs\n\n")
	fmt.Fprintf(&buf, "- h264: %t\n", deref(p.Codecs.H264))
	fmt.Fprintf(&buf, "- vp9: %t\n", deref(p.Codecs.VP9))
	fmt.Fprintf(&buf, "- opus: %t\n", deref(p.Codecs.Opus))
	fmt.Fprintf(&buf, "- aac: %t\n\n", deref(p.Codecs.AAC))

	fmt.Fprintf(&buf, "## Members (%d)\n\n", len(export.Members))
	for i, m := range export.Members {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, m.UserID, m.Role)
	}

	fmt.Fprintf(&buf, "\n## Invites (%d)\n\n", len(export.Invites))
	for i, inv := range export.Invites {
		status := "expires " + time.Unix(inv.ExpireAt, 0).UTC().Format(time.RFC3339)
		if inv.Expired(now) {
			status = "expired"
		}
		fmt.Fprintf(&buf, "%d. %s [%s] (%s)\n", i+1, inv.Email, inv.Role, status)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ProjectExport to plain text format
func ExportToText(export *ProjectExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Project: %s\n", export.Project.Name)
	fmt.Fprintf(&buf, "Owner: %s\n", export.Project.Owner)
	fmt.Fprintf(&buf, "Members: %d\n", len(export.Members))
	fmt.Fprintf(&buf, "Invites: %d\n\n", len(export.Invites))

	for i, m := range export.Members {
		fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, m.UserID, m.Role)
	}
	for _, inv := range export.Invites {
		fmt.Fprintf(&buf, "-  %s (%s, invited)\n", inv.Email, inv.Role)
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of project metadata (without members or the secret)
func ToMetadataJSON(project models.Project) ([]byte, error) {
	data, err := json.MarshalIndent(metadataOf(project), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project metadata: %w", err)
	}
	return data, nil
}

// rosterJSON is the JSON export layout: redacted project metadata plus its roster.
type rosterJSON struct {
	Project projectMetadata         `json:"project"`
	Members []*models.ProjectMember `json:"members"`
	Invites []*models.ProjectInvite `json:"invites"`
}

// ExportToJSON renders the project with its members and invites. Like every other format it omits the secret.
func ExportToJSON(export *ProjectExport) ([]byte, error) {
	members, invites := export.Members, export.Invites
	if members == nil {
		members = []*models.ProjectMember{}
	}
	if invites == nil {
		invites = []*models.ProjectInvite{}
	}

	data, err := json.MarshalIndent(rosterJSON{
		Project: metadataOf(export.Project),
		Members: members,
		Invites: invites,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project export: %w", err)
	}
	return data, nil
}

// WriteJSONExport writes ExportToJSON output to path, defaulting to {project.ID}.json.
func WriteJSONExport(export *ProjectExport, path string) (string, error) {
	if path == "" {
		path = export.Project.ID + ".json"
	}

	data, err := ExportToJSON(export)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	RosterFile   string
	MetadataFile string
}

// WriteCSVExport exports a project to CSV format with accompanying metadata JSON file.
//
// Defaults to project ID as the base filename & creates {base}_roster.csv and {base}_metadata.json
func WriteCSVExport(export *ProjectExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Project.ID
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	rosterFile := baseFilepath + "_roster.csv"
	if err := os.WriteFile(rosterFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{RosterFile: rosterFile, MetadataFile: metadataFile}, nil
}

// WriteMarkdownExport exports a project to {dir}/README.md, creating the directory if needed.
//
// Directory name defaults to the project ID.
func WriteMarkdownExport(export *ProjectExport, outputDir string, now time.Time) (string, error) {
	if outputDir == "" {
		outputDir = export.Project.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export, now)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a project to plain text format.
//
// Defaults to {project.ID}_roster.txt as the filename.
func WriteTextExport(export *ProjectExport, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_roster.txt", export.Project.ID)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

func deref(b *bool) bool {
	return b != nil && *b
}
