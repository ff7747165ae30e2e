// Package collect gathers per-work metadata. The collector is a pluggable
// capability so the pipeline can be driven by a live terminal dialogue or by
// a scripted double in tests.
package collect

import (
	"context"
)

// Request carries everything the collector needs to prompt for one work.
type Request struct {
	SourceFilename string
	DefaultTitle   string
	DefaultYear    int
	DefaultLicense string
	Creator        string
	Language       string
	// Suggestion is the recognizer's proposed transcription. Shown as a
	// reference and adopted only via the explicit accept shortcut.
	Suggestion string
}

// Fields is the structured metadata captured for one work.
type Fields struct {
	Title         string
	Year          int
	License       string
	Keywords      []string
	Transcription string
	Description   string
}

// MetadataSource supplies metadata for one work. Implementations block until
// the fields are available; the terminal implementation suspends on human
// input with no timeout.
type MetadataSource interface {
	Collect(ctx context.Context, req Request) (Fields, error)
}
