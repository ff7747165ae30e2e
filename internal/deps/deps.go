// Package deps reports availability of the external tools the pipeline
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"tafel/internal/config"
)

// Requirement defines an external dependency tafel relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements derives the external tool set from configuration. ImageMagick
// and git are required for a real run; tesseract is advisory and its absence
// only costs the transcription suggestions.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{
			Name:        "ImageMagick",
			Command:     cfg.Convert.Binary,
			Description: "image conversion and resizing",
		},
		{
			Name:        "Tesseract",
			Command:     cfg.OCR.Binary,
			Description: "transcription suggestions (optional)",
			Optional:    true,
		},
	}
	if cfg.Publish.AutoCommit {
		reqs = append(reqs, Requirement{
			Name:        "git",
			Command:     "git",
			Description: "commit and push of published works",
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
