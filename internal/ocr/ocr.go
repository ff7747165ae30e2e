// Package ocr adapts tesseract into a best-effort text recognition
// capability. Recognition is advisory pre-fill only: it never aborts the
// pipeline, and every failure mode degrades to an empty suggestion with a
// structured status so callers (and tests) can tell "no text found" from
// "tool missing".
package ocr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Status classifies the outcome of a recognition attempt.
type Status string

const (
	// StatusOK means tesseract ran and produced output (possibly empty).
	StatusOK Status = "ok"
	// StatusToolMissing means the tesseract binary is not installed.
	StatusToolMissing Status = "tool_missing"
	// StatusToolError means tesseract ran and failed.
	StatusToolError Status = "tool_error"
)

// Result carries the recognized text and how recognition went.
type Result struct {
	Text   string
	Status Status
}

// CommandRunner executes an external command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Recognizer wraps the tesseract binary.
type Recognizer struct {
	binary string
	runner CommandRunner
	lookup func(string) (string, error)
}

// New creates a recognizer invoking the given tesseract binary.
func New(binary string) *Recognizer {
	if strings.TrimSpace(binary) == "" {
		binary = "tesseract"
	}
	return &Recognizer{binary: binary, lookup: exec.LookPath}
}

// WithCommandRunner sets a custom command runner (for testing).
func (r *Recognizer) WithCommandRunner(runner CommandRunner) {
	r.runner = runner
}

// WithLookup sets a custom binary lookup (for testing).
func (r *Recognizer) WithLookup(lookup func(string) (string, error)) {
	r.lookup = lookup
}

// Recognize extracts text from the image at path using the given language.
// It never returns an error; failures map to an empty-text Result with a
// non-ok status.
func (r *Recognizer) Recognize(ctx context.Context, path, lang string) Result {
	if r.runner == nil {
		if _, err := r.lookup(r.binary); err != nil {
			return Result{Status: StatusToolMissing}
		}
	}

	out, err := r.run(ctx, r.binary, path, "stdout", "-l", lang)
	if err != nil {
		return Result{Status: StatusToolError}
	}
	return Result{Text: strings.TrimSpace(out), Status: StatusOK}
}

func (r *Recognizer) run(ctx context.Context, name string, args ...string) (string, error) {
	if r.runner != nil {
		return r.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(output), nil
}
