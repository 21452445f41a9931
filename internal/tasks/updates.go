package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Phase enumerates the stages of a bulk export.
type Phase int

const (
	LoadProject Phase = iota
	ExportProject
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case LoadProject:
		return "load_project"
	case ExportProject:
		return "export_project"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// sendProgress sends an update without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func loadingProjectUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadProject,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Loading project %s...", step, total, id),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportProject,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportProject,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest to %s", path),
		Data:    path,
	}
}
