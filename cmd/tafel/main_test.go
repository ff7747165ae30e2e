package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig drops a minimal valid config file and returns its path along
// with the repo directory it points at.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	sourceDir := filepath.Join(base, "inbox")
	repoDir := filepath.Join(base, "repo")
	for _, dir := range []string{sourceDir, filepath.Join(repoDir, "images"), filepath.Join(repoDir, "works")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	content := fmt.Sprintf("[paths]\nsource_dir = %q\nrepo_dir = %q\n", sourceDir, repoDir)
	path := filepath.Join(base, "tafel.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, repoDir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q:\n%s", needle, haystack)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// refuses to clobber without --overwrite
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config file")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, err := runCLI(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, cfgPath)
	requireContains(t, out, "webp")
}

func TestStatusEmptyRecord(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, err := runCLI(t, "--config", cfgPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Works ingested: 0")
	requireContains(t, out, "agree")
}

func TestStatusFlagsUnrecordedFile(t *testing.T) {
	cfgPath, repoDir := writeConfig(t)
	stray := filepath.Join(repoDir, "works", "stray.md")
	if err := os.WriteFile(stray, []byte("# Stray\n"), 0o644); err != nil {
		t.Fatalf("write stray: %v", err)
	}

	out, err := runCLI(t, "--config", cfgPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "file not in ingest record: works/stray.md")
}

func TestIndexCommandRebuildsReadme(t *testing.T) {
	cfgPath, repoDir := writeConfig(t)

	out, err := runCLI(t, "--config", cfgPath, "index")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	requireContains(t, out, "Indexed 0 work(s)")

	readme, err := os.ReadFile(filepath.Join(repoDir, "README.md"))
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	requireContains(t, string(readme), "<!-- INDEX:BEGIN -->")
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"ingest", "status", "index", "deps", "config"} {
		requireContains(t, out, name)
	}
}

func TestUnknownFlagFails(t *testing.T) {
	if _, err := runCLI(t, "ingest", "--bogus"); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
