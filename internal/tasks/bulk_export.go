package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/panelstore/internal/formatter"
	"github.com/desertthunder/panelstore/internal/repositories"
	"github.com/desertthunder/panelstore/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 50.0
)

// BulkExportOpts contains configuration for bulk project exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: panelstore_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 5, at most 10)
	RateLimit  float64 // Project loads per second (default: 50)
}

// ProjectExportJob is one loaded project waiting to be written.
type ProjectExportJob struct {
	ProjectID string
	Export    *formatter.ProjectExport
}

// ProjectExportResult is the outcome of exporting a single project.
type ProjectExportResult struct {
	ProjectID   string
	ProjectName string
	Success     bool
	Files       []string
	Error       error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalProjects     int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ProjectExportResult
}

// Manifest is the JSON summary written next to the exported files.
type Manifest struct {
	ExportedAt time.Time       `json:"exported_at"`
	Format     string          `json:"format"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Projects   []ManifestEntry `json:"projects"`
}

type ManifestEntry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Exporter loads projects with their rosters and writes them to disk.
type Exporter struct {
	projects *repositories.ProjectRepository
	members  *repositories.ProjectMemberRepository
	invites  *repositories.ProjectInviteRepository
	logger   *log.Logger
	now      func() time.Time
	load     func(ctx context.Context, id string) (*formatter.ProjectExport, error)
}

func NewExporter(client *shared.Client, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	e := &Exporter{
		projects: repositories.NewProjectRepository(client),
		members:  repositories.NewProjectMemberRepository(client),
		invites:  repositories.NewProjectInviteRepository(client),
		logger:   logger,
		now:      time.Now,
	}
	e.load = e.Load
	return e
}

// Load fetches a project together with all of its members and invites.
func (e *Exporter) Load(ctx context.Context, id string) (*formatter.ProjectExport, error) {
	project, err := e.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := e.members.GetMany(ctx, repositories.ProjectMemberFilter{ProjectID: &id}, repositories.Page{})
	if err != nil {
		return nil, err
	}
	invites, err := e.invites.GetMany(ctx, repositories.ProjectInviteFilter{ProjectID: &id}, repositories.Page{})
	if err != nil {
		return nil, err
	}
	return &formatter.ProjectExport{Project: *project, Members: members, Invites: invites}, nil
}

// BulkExport exports the given projects concurrently and writes a manifest.
//
// Loads are throttled by opts.RateLimit; a single failed project is recorded
// in the result and does not abort the rest.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("panelstore_export_%d", e.now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.Format == "" {
		opts.Format = "json"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalProjects:   len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ProjectExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ProjectExportJob, len(ids))
	results := make(chan ProjectExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	// The producer also sends load failures on results, so it must finish before results closes.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, id := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			sendProgress(prog, loadingProjectUpdate(i+1, len(ids), id))
			export, err := e.load(ctx, id)
			if err != nil {
				results <- ProjectExportResult{
					ProjectID:   id,
					ProjectName: fmt.Sprintf("Unknown (%s)", id),
					Error:       fmt.Errorf("failed to load project: %w", err),
				}
				continue
			}

			jobs <- ProjectExportJob{ProjectID: id, Export: export}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.ProjectName, len(res.Files)))
		} else {
			result.FailedExports++
			e.logger.Warn("project export failed", "id", res.ProjectID, "error", res.Error)
			sendProgress(prog, exportFailedUpdate(completed, len(ids), res.ProjectName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	sendProgress(prog, manifestUpdate(manifestPath))
	if err := e.writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes projects from the jobs channel until it is closed.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ProjectExportJob,
	results chan<- ProjectExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleProject(job, opts)
	}
}

func (e *Exporter) exportSingleProject(j ProjectExportJob, opts BulkExportOpts) ProjectExportResult {
	result := ProjectExportResult{
		ProjectID:   j.ProjectID,
		ProjectName: j.Export.Project.Name,
		Files:       []string{},
	}

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(j.Export, filepath.Join(opts.OutputDir, j.ProjectID))
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.RosterFile, csvRes.MetadataFile}
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(j.Export, filepath.Join(opts.OutputDir, j.ProjectID), e.now())
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = []string{path}
	case "txt", "text":
		path, err := formatter.WriteTextExport(j.Export, filepath.Join(opts.OutputDir, j.ProjectID+"_roster.txt"))
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
	default:
		path, err := formatter.WriteJSONExport(j.Export, filepath.Join(opts.OutputDir, j.ProjectID+".json"))
		if err != nil {
			result.Error = fmt.Errorf("JSON export failed: %w", err)
			return result
		}
		result.Files = []string{path}
	}

	result.Success = true
	return result
}

func (e *Exporter) writeManifest(result *BulkExportResult, format, path string) error {
	manifest := Manifest{
		ExportedAt: e.now().UTC(),
		Format:     format,
		Total:      result.TotalProjects,
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
		Projects:   make([]ManifestEntry, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		entry := ManifestEntry{ID: r.ProjectID, Name: r.ProjectName, Success: r.Success, Files: r.Files}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		manifest.Projects = append(manifest.Projects, entry)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
