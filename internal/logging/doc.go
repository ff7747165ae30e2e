// Package logging provides slog construction and shared attribute helpers.
// All log output goes to stderr; stdout belongs to the interactive prompts.
package logging
