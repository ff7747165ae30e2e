package collect

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func collectWith(t *testing.T, input string, req Request) Fields {
	t.Helper()
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(input), &out)
	fields, err := term.Collect(context.Background(), req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return fields
}

func baseRequest() Request {
	return Request{
		SourceFilename: "scan_001.png",
		DefaultTitle:   "Scan 001",
		DefaultYear:    2026,
		DefaultLicense: "CC BY-SA 4.0",
		Creator:        "N.N.",
		Language:       "de",
	}
}

func TestCollectDefaults(t *testing.T) {
	// every prompt answered with empty input / immediate sentinel
	input := "\n\n\n\n.\n.\n"
	fields := collectWith(t, input, baseRequest())

	if fields.Title != "Scan 001" {
		t.Fatalf("title default lost: %q", fields.Title)
	}
	if fields.Year != 2026 {
		t.Fatalf("year default lost: %d", fields.Year)
	}
	if fields.License != "CC BY-SA 4.0" {
		t.Fatalf("license default lost: %q", fields.License)
	}
	if len(fields.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", fields.Keywords)
	}
	if fields.Transcription != "" || fields.Description != "" {
		t.Fatalf("expected empty free text, got %+v", fields)
	}
}

func TestCollectExplicitValues(t *testing.T) {
	input := strings.Join([]string{
		"Über Kraft & Licht",
		"1923",
		"Public Domain",
		"physik, tafel , ,licht",
		"Erste Zeile",
		"Zweite Zeile",
		".",
		"Eine Beschreibung.",
		".",
	}, "\n") + "\n"

	fields := collectWith(t, input, baseRequest())
	if fields.Title != "Über Kraft & Licht" {
		t.Fatalf("title: %q", fields.Title)
	}
	if fields.Year != 1923 {
		t.Fatalf("year: %d", fields.Year)
	}
	if fields.License != "Public Domain" {
		t.Fatalf("license: %q", fields.License)
	}
	want := []string{"physik", "tafel", "licht"}
	if len(fields.Keywords) != len(want) {
		t.Fatalf("keywords: %v", fields.Keywords)
	}
	for i, kw := range want {
		if fields.Keywords[i] != kw {
			t.Fatalf("keyword %d: got %q want %q", i, fields.Keywords[i], kw)
		}
	}
	if fields.Transcription != "Erste Zeile\nZweite Zeile" {
		t.Fatalf("transcription: %q", fields.Transcription)
	}
	if fields.Description != "Eine Beschreibung." {
		t.Fatalf("description: %q", fields.Description)
	}
}

func TestSuggestionAcceptShortcut(t *testing.T) {
	req := baseRequest()
	req.Suggestion = "KRAFT UND LICHT"

	// immediate sentinel on transcription adopts the suggestion; immediate
	// sentinel on description stays empty
	input := "\n\n\n\n.\n.\n"
	fields := collectWith(t, input, req)

	if fields.Transcription != "KRAFT UND LICHT" {
		t.Fatalf("suggestion not adopted: %q", fields.Transcription)
	}
	if fields.Description != "" {
		t.Fatalf("description has no suggestion fallback: %q", fields.Description)
	}
}

func TestSuggestionOverridden(t *testing.T) {
	req := baseRequest()
	req.Suggestion = "OCR RAUSCHEN"

	input := "\n\n\n\nKorrigierter Text\n.\n.\n"
	fields := collectWith(t, input, req)
	if fields.Transcription != "Korrigierter Text" {
		t.Fatalf("explicit text must win over suggestion: %q", fields.Transcription)
	}
}

func TestSuggestionShownInOutput(t *testing.T) {
	var out bytes.Buffer
	req := baseRequest()
	req.Suggestion = "shown as reference"
	term := NewTerminal(strings.NewReader("\n\n\n\n.\n.\n"), &out)
	if _, err := term.Collect(context.Background(), req); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !strings.Contains(out.String(), "shown as reference") {
		t.Fatalf("suggestion not echoed:\n%s", out.String())
	}
}

func TestNonNumericYearFallsBack(t *testing.T) {
	input := "\nnineteen23\n\n\n.\n.\n"
	fields := collectWith(t, input, baseRequest())
	if fields.Year != 2026 {
		t.Fatalf("expected fallback year, got %d", fields.Year)
	}
}

func TestTruncatedInputFails(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("only a title\n"), &out)
	if _, err := term.Collect(context.Background(), baseRequest()); err == nil {
		t.Fatal("expected error when input ends mid-dialogue")
	}
}
