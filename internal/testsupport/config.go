// Package testsupport provides shared helpers for package tests: temp-dir
// configs, stub executables, and source image fixtures.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tafel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields, disables publication side effects, and applies
// any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "inbox")
	cfgVal.Paths.RepoDir = filepath.Join(base, "repo")
	cfgVal.Paths.StateDir = filepath.Join(base, "repo", config.StateDirName)
	cfgVal.OCR.Enabled = false
	cfgVal.Publish.AutoCommit = false
	cfgVal.Publish.AutoPush = false

	for _, dir := range []string{
		cfgVal.Paths.SourceDir,
		filepath.Join(cfgVal.Paths.RepoDir, "images"),
		filepath.Join(cfgVal.Paths.RepoDir, "works"),
		cfgVal.Paths.StateDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithOCR enables recognition on the test config.
func WithOCR(lang string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OCR.Enabled = true
		b.cfg.OCR.Language = lang
	}
}

// WithFormat overrides the output format.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Convert.Format = format
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default external binaries
// are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"magick", "tesseract", "git"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RepoDir)
}
