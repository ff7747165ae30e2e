// Package gitops wraps the version-control side effects of a run. All
// operations are thin git invocations; the orchestrator treats their
// failures as warnings, not run failures.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner executes an external command and returns its combined output.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) (string, error)

// Client runs git commands inside a repository working copy.
type Client struct {
	repoDir string
	runner  CommandRunner
}

// New creates a git client for the given working copy.
func New(repoDir string) *Client {
	return &Client{repoDir: repoDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner CommandRunner) {
	c.runner = runner
}

// IsRepo reports whether the directory is a git working copy.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// HasChanges reports whether the working copy has staged or unstaged changes.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitAll stages everything and commits with the given message. Commits
// are skipped silently when nothing changed.
func (c *Client) CommitAll(ctx context.Context, message string) (bool, error) {
	if _, err := c.run(ctx, "add", "-A"); err != nil {
		return false, err
	}
	changed, err := c.HasChanges(ctx)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return false, err
	}
	return true, nil
}

// Push pushes the current branch to its upstream.
func (c *Client) Push(ctx context.Context) error {
	_, err := c.run(ctx, "push")
	return err
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if c.runner != nil {
		return c.runner(ctx, c.repoDir, "git", args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
