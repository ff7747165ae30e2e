package deps

import (
	"os"
	"path/filepath"
	"testing"

	"tafel/internal/config"
	"tafel/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
}

func TestCheckBinariesWithStubbedPath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Publish.AutoCommit = true

	for _, st := range CheckBinaries(Requirements(cfg)) {
		if !st.Available {
			t.Fatalf("expected %s to resolve against the stubbed PATH: %#v", st.Name, st)
		}
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Publish.AutoCommit = false
	reqs := Requirements(&cfg)
	for _, req := range reqs {
		if req.Name == "git" {
			t.Fatal("git requirement should be absent when auto-commit is off")
		}
	}

	cfg.Publish.AutoCommit = true
	reqs = Requirements(&cfg)
	found := false
	for _, req := range reqs {
		if req.Name == "git" {
			found = true
		}
	}
	if !found {
		t.Fatal("git requirement missing with auto-commit enabled")
	}
}
