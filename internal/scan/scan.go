// Package scan discovers unseen source images in the intake directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tafel/internal/contentid"
)

// supportedExtensions is the allow-list of raster formats accepted as
// sources. Matching is case-insensitive.
var supportedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".tif":  {},
	".tiff": {},
	".bmp":  {},
}

const maxDefaultTitleLen = 60

// Source is one not-yet-ingested image discovered in the intake directory.
type Source struct {
	Path         string
	Name         string
	Hash         string
	DefaultTitle string
}

// Find scans dir (non-recursive) for regular files with a supported image
// extension, sorted by filename for reproducible runs, and filters out any
// whose content hash the seen predicate reports as already ingested. Files
// moved into the archive subfolder are physically absent from dir; the seen
// check is the second line of defense against copies sneaking back in.
func Find(dir string, seen func(hash string) bool) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := supportedExtensions[ext]; !ok {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		hash, err := contentid.Hash(path)
		if err != nil {
			return nil, err
		}
		if seen != nil && seen(hash) {
			continue
		}
		sources = append(sources, Source{
			Path:         path,
			Name:         name,
			Hash:         hash,
			DefaultTitle: DeriveTitle(name),
		})
	}
	return sources, nil
}

// DeriveTitle turns a source filename into a human-presentable default title:
// extension stripped, separator runs collapsed to spaces, title-cased, and
// truncated to a bounded length.
func DeriveTitle(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled"
	}
	title = cases.Title(language.Und).String(title)
	runes := []rune(title)
	if len(runes) > maxDefaultTitleLen {
		title = strings.TrimSpace(string(runes[:maxDefaultTitleLen]))
	}
	return title
}
