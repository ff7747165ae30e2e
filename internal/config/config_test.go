package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tafel.toml")
	body := `
[paths]
source_dir = "` + filepath.Join(dir, "inbox") + `"
repo_dir = "` + filepath.Join(dir, "repo") + `"

[convert]
format = "JPEG"
max_width = 1600
`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("expected resolved existing path %s, got %s (%v)", cfgPath, resolved, exists)
	}
	if cfg.Convert.Format != "jpeg" {
		t.Fatalf("format not lowercased: %q", cfg.Convert.Format)
	}
	if cfg.ImageExtension() != "jpg" {
		t.Fatalf("jpeg should map to jpg extension, got %q", cfg.ImageExtension())
	}
	if cfg.Convert.MaxWidth != 1600 {
		t.Fatalf("max_width override lost: %d", cfg.Convert.MaxWidth)
	}
	if cfg.Convert.WebPQuality != defaultWebPQuality {
		t.Fatalf("webp quality default lost: %d", cfg.Convert.WebPQuality)
	}
	if cfg.Paths.StateDir != filepath.Join(cfg.Paths.RepoDir, StateDirName) {
		t.Fatalf("state dir should default under repo, got %q", cfg.Paths.StateDir)
	}
	if !cfg.OCR.Enabled || cfg.OCR.Language != defaultOCRLanguage {
		t.Fatalf("ocr defaults lost: %+v", cfg.OCR)
	}
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tafel.toml")
	body := `
[paths]
source_dir = "` + dir + `"
repo_dir = "` + dir + `"

[convert]
format = "gif"
`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	var usage *UsageError
	if !errors.As(err, &usage) {
		t.Fatalf("expected UsageError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "gif") {
		t.Fatalf("error should name the offending format: %v", err)
	}
}

func TestLoadRequiresPaths(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tafel.toml")
	if err := os.WriteFile(cfgPath, []byte("[convert]\nformat = \"webp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := Load(cfgPath); err == nil {
		t.Fatal("expected error when paths are missing")
	}
}

func TestPingRequiresBaseURL(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tafel.toml")
	body := `
[paths]
source_dir = "` + dir + `"
repo_dir = "` + dir + `"

[publish]
ping = true
`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(cfgPath); err == nil {
		t.Fatal("expected error when ping is enabled without base_url")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.SourceDir = filepath.Join(dir, "inbox")
	cfg.Paths.RepoDir = filepath.Join(dir, "repo")
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, sub := range []string{"images", "works", StateDirName} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.RepoDir, sub)); err != nil {
			t.Fatalf("expected %s to exist: %v", sub, err)
		}
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "x") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	if !strings.Contains(SampleConfig(), "[convert]") {
		t.Fatal("sample config missing convert section")
	}
}
