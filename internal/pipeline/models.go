package pipeline

import (
	"log/slog"

	"tafel/internal/collect"
	"tafel/internal/ocr"
	"tafel/internal/scan"
	"tafel/internal/slug"
	"tafel/internal/state"

	"tafel/internal/logging"
)

// Status represents the lifecycle of one item inside a run. Transitions are
// strictly sequential with no backtracking.
type Status string

const (
	StatusDiscovered Status = "discovered"
	StatusConverted  Status = "converted"
	StatusRecognized Status = "recognized"
	StatusDescribed  Status = "described"
	StatusSlotted    Status = "slotted"
	StatusWritten    Status = "written"
	StatusArchived   Status = "archived"
)

// Item carries one source image through the run.
type Item struct {
	Source scan.Source
	Status Status

	TempAsset  string
	Width      int
	Height     int
	Suggestion ocr.Result
	Fields     collect.Fields
	Paths      slug.Paths
	Record     state.WorkRecord
}

func (i *Item) advance(logger *slog.Logger, status Status) {
	i.Status = status
	logger.Debug("item advanced", logging.Args(
		logging.String(logging.FieldSource, i.Source.Name),
		logging.String(logging.FieldStatus, string(status)),
	)...)
}

// ItemResult summarizes one processed item for the CLI.
type ItemResult struct {
	Title        string
	Slug         string
	Width        int
	Height       int
	ImagePath    string
	DocumentPath string
}

// Summary describes a completed run.
type Summary struct {
	RunID   string
	DryRun  bool
	Results []ItemResult
}
