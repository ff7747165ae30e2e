// Package index regenerates the auto-generated listing section of the
// archive's README. Only the region between the sentinel markers is touched;
// everything outside is preserved byte for byte.
package index

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	// MarkerBegin and MarkerEnd delimit the regenerated region.
	MarkerBegin = "<!-- INDEX:BEGIN -->"
	MarkerEnd   = "<!-- INDEX:END -->"

	defaultHeader = "# Bildtafeln\n\nOpen raw archive (image + transcription + context) for machine-readable discovery.\n\n"
)

// Entry is one work listed in the index.
type Entry struct {
	Title        string
	DocumentPath string
}

// Section renders the marker-delimited index block for the given entries,
// sorted case-insensitively by title.
func Section(entries []Entry) string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})

	lines := []string{MarkerBegin, "", "## Works", ""}
	for _, entry := range sorted {
		lines = append(lines, fmt.Sprintf("- [%s](%s)", entry.Title, entry.DocumentPath))
	}
	lines = append(lines, "", MarkerEnd, "")
	return strings.Join(lines, "\n")
}

// Update regenerates the index section inside the document at path. When the
// document exists and contains both markers, content outside them is
// preserved verbatim. A missing document, or one without both markers, is
// replaced wholesale with a fresh header plus the generated section; callers
// should warn about that destructive rebuild.
//
// The returned bool reports whether the existing content was preserved.
func Update(path string, entries []Entry) (bool, error) {
	section := Section(entries)

	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("read index document: %w", err)
		}
		existing = nil
	}

	text := string(existing)
	preserved := false
	if strings.Contains(text, MarkerBegin) && strings.Contains(text, MarkerEnd) {
		pre := strings.TrimRight(text[:strings.Index(text, MarkerBegin)], "\n") + "\n"
		post := strings.TrimLeft(text[strings.Index(text, MarkerEnd)+len(MarkerEnd):], "\n")
		text = pre + section + post
		preserved = true
	} else {
		text = defaultHeader + section
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return preserved, fmt.Errorf("write index document: %w", err)
	}
	return preserved, nil
}
