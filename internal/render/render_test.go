package render

import (
	"strings"
	"testing"
	"time"

	"tafel/internal/state"
)

func sampleRecord() state.WorkRecord {
	return state.WorkRecord{
		Title:          "Über Kraft und Licht",
		Year:           1923,
		Creator:        "N.N.",
		License:        "CC BY-SA 4.0",
		Language:       "de",
		Keywords:       []string{"physik", "licht"},
		Transcription:  "KRAFT\nUND LICHT",
		Description:    "Lehrtafel aus einem Physiksaal.",
		SourceFilename: "scan_001.png",
		ImagePath:      "images/ueber-kraft-und-licht-1923.webp",
		DocumentPath:   "works/ueber-kraft-und-licht-1923.md",
		ContentHash:    "abc123",
	}
}

var renderDate = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func TestDocumentStructure(t *testing.T) {
	doc, err := Document(sampleRecord(), renderDate)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.HasPrefix(doc, "---\n") {
		t.Fatalf("document must open with front matter:\n%s", doc)
	}
	for _, want := range []string{
		"title: Über Kraft und Licht",
		"creator: N.N.",
		"year: 1923",
		"generated:",
		"2026-08-29",
		"# Über Kraft und Licht",
		"![Über Kraft und Licht](/images/ueber-kraft-und-licht-1923.webp)",
		"**Creator:** N.N.",
		"**Keywords:** physik, licht",
		"## Transcription",
		"KRAFT\nUND LICHT",
		"## Description",
		"Lehrtafel aus einem Physiksaal.",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestDocumentPlaceholders(t *testing.T) {
	rec := sampleRecord()
	rec.Transcription = "   "
	rec.Description = ""
	doc, err := Document(rec, renderDate)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc, "_(no transcription)_") {
		t.Fatalf("missing transcription placeholder:\n%s", doc)
	}
	if !strings.Contains(doc, "_(no description)_") {
		t.Fatalf("missing description placeholder:\n%s", doc)
	}
}

func TestDocumentOmitsEmptyKeywordsLine(t *testing.T) {
	rec := sampleRecord()
	rec.Keywords = nil
	doc, err := Document(rec, renderDate)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(doc, "**Keywords:**") {
		t.Fatalf("keywords line must be omitted entirely:\n%s", doc)
	}
}

func TestDocumentDeterministic(t *testing.T) {
	a, err := Document(sampleRecord(), renderDate)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := Document(sampleRecord(), renderDate)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if a != b {
		t.Fatal("identical inputs must render identical documents")
	}
}
