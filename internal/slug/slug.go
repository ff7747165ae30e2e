// Package slug derives URL- and filename-safe identifiers from work titles
// and resolves slug collisions against the repository filesystem.
package slug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fallback is the identifier used when slugification yields nothing.
const Fallback = "untitled"

// transliterator maps the small set of special characters the archive
// convention spells out to ASCII. Applied after lowercasing, so only the
// lowercase forms are listed.
var transliterator = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// Make converts free text into a lowercase, hyphen-separated identifier.
// Runs of non-alphanumeric characters collapse to a single hyphen; leading
// and trailing hyphens are trimmed. Empty results map to Fallback.
func Make(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = transliterator.Replace(s)

	var b strings.Builder
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}

	out := b.String()
	if out == "" {
		return Fallback
	}
	return out
}

// Seed builds the slug seed from a title and year.
func Seed(title string, year int) string {
	return fmt.Sprintf("%s-%d", title, year)
}

// Paths holds the resolved slug and the repo-relative target paths derived
// from it.
type Paths struct {
	Slug         string
	ImagePath    string
	DocumentPath string
}

// Resolve probes the repository for free target paths. The starting
// candidates are images/<slug>.<ext> and works/<slug>.md; when either exists
// the counter suffix (-2, -3, ...) bumps until both are simultaneously free.
// Both paths share one slug, so a collision on only one of them still bumps
// the counter.
func Resolve(repoDir, seed, imageExt string) Paths {
	base := Make(seed)
	candidate := base
	n := 2
	for {
		p := Paths{
			Slug:         candidate,
			ImagePath:    "images/" + candidate + "." + imageExt,
			DocumentPath: "works/" + candidate + ".md",
		}
		if !exists(filepath.Join(repoDir, p.ImagePath)) && !exists(filepath.Join(repoDir, p.DocumentPath)) {
			return p
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
		n++
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
