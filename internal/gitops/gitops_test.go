package gitops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	if IsRepo(dir) {
		t.Fatal("plain directory must not count as a repo")
	}
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if !IsRepo(dir) {
		t.Fatal("directory with .git must count as a repo")
	}
}

func TestCommitAllSkipsWhenClean(t *testing.T) {
	client := New("/repo")
	var commands []string
	client.WithCommandRunner(func(_ context.Context, dir, name string, args ...string) (string, error) {
		commands = append(commands, strings.Join(args, " "))
		if args[0] == "status" {
			return "", nil
		}
		return "", nil
	})

	committed, err := client.CommitAll(context.Background(), "ingest: 1 work(s)")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if committed {
		t.Fatal("clean tree must not commit")
	}
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, "commit") {
			t.Fatalf("unexpected commit invocation: %v", commands)
		}
	}
}

func TestCommitAllCommitsChanges(t *testing.T) {
	client := New("/repo")
	var commands []string
	client.WithCommandRunner(func(_ context.Context, dir, name string, args ...string) (string, error) {
		commands = append(commands, strings.Join(args, " "))
		if args[0] == "status" {
			return " M works/foo.md\n", nil
		}
		return "", nil
	})

	committed, err := client.CommitAll(context.Background(), "ingest: 1 work(s)")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !committed {
		t.Fatal("dirty tree must commit")
	}
	joined := strings.Join(commands, ";")
	if !strings.Contains(joined, "add -A") || !strings.Contains(joined, "commit -m ingest: 1 work(s)") {
		t.Fatalf("unexpected command sequence: %v", commands)
	}
}

func TestPushPropagatesErrors(t *testing.T) {
	client := New("/repo")
	client.WithCommandRunner(func(context.Context, string, string, ...string) (string, error) {
		return "", errors.New("remote unreachable")
	})
	if err := client.Push(context.Background()); err == nil {
		t.Fatal("push failure must surface")
	}
}
