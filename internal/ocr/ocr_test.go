package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRecognizeTrimsOutput(t *testing.T) {
	r := New("tesseract")
	var gotArgs []string
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) (string, error) {
		gotArgs = append([]string{name}, args...)
		return "\n  Kraft und Licht  \n\n", nil
	})

	res := r.Recognize(context.Background(), "/tmp/asset.webp", "deu")
	if res.Status != StatusOK {
		t.Fatalf("unexpected status: %s", res.Status)
	}
	if res.Text != "Kraft und Licht" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	joined := strings.Join(gotArgs, " ")
	if joined != "tesseract /tmp/asset.webp stdout -l deu" {
		t.Fatalf("unexpected invocation: %s", joined)
	}
}

func TestRecognizeToolError(t *testing.T) {
	r := New("tesseract")
	r.WithCommandRunner(func(context.Context, string, ...string) (string, error) {
		return "", errors.New("exit status 1")
	})

	res := r.Recognize(context.Background(), "x.webp", "deu")
	if res.Status != StatusToolError {
		t.Fatalf("unexpected status: %s", res.Status)
	}
	if res.Text != "" {
		t.Fatalf("failures must degrade to empty text, got %q", res.Text)
	}
}

func TestRecognizeToolMissing(t *testing.T) {
	r := New("definitely-not-tesseract")
	r.WithLookup(func(string) (string, error) {
		return "", errors.New("not found")
	})

	res := r.Recognize(context.Background(), "x.webp", "deu")
	if res.Status != StatusToolMissing {
		t.Fatalf("unexpected status: %s", res.Status)
	}
	if res.Text != "" {
		t.Fatalf("missing tool must yield empty text, got %q", res.Text)
	}
}
