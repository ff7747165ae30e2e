// Package render serializes a work record into its published document: a
// machine-readable YAML front matter block followed by a human-readable
// markdown body. Rendering is pure; identical record and date yield identical
// bytes.
package render

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tafel/internal/state"
)

const (
	transcriptionPlaceholder = "_(no transcription)_"
	descriptionPlaceholder   = "_(no description)_"
)

// frontMatter is the machine-readable header block. Field order is the
// published key order.
type frontMatter struct {
	Title          string   `yaml:"title"`
	Creator        string   `yaml:"creator"`
	Year           int      `yaml:"year"`
	License        string   `yaml:"license"`
	Language       string   `yaml:"language"`
	Keywords       []string `yaml:"keywords"`
	Image          string   `yaml:"image"`
	SourceFilename string   `yaml:"source_filename"`
	Generated      string   `yaml:"generated"`
}

// Document renders the full work document for rec, stamping today as the
// generation date.
func Document(rec state.WorkRecord, today time.Time) (string, error) {
	fm := frontMatter{
		Title:          rec.Title,
		Creator:        rec.Creator,
		Year:           rec.Year,
		License:        rec.License,
		Language:       rec.Language,
		Keywords:       rec.Keywords,
		Image:          rec.ImagePath,
		SourceFilename: rec.SourceFilename,
		Generated:      today.Format("2006-01-02"),
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")

	b.WriteString("# " + rec.Title + "\n\n")
	b.WriteString(fmt.Sprintf("![%s](/%s)\n\n", rec.Title, strings.ReplaceAll(rec.ImagePath, "\\", "/")))
	b.WriteString(fmt.Sprintf("**Creator:** %s  \n**Year:** %d  \n**License:** %s\n", rec.Creator, rec.Year, rec.License))
	if len(rec.Keywords) > 0 {
		b.WriteString("\n**Keywords:** " + strings.Join(rec.Keywords, ", ") + "\n")
	}

	b.WriteString("\n## Transcription\n\n")
	if text := strings.TrimSpace(rec.Transcription); text != "" {
		b.WriteString(text + "\n")
	} else {
		b.WriteString(transcriptionPlaceholder + "\n")
	}

	b.WriteString("\n## Description\n\n")
	if text := strings.TrimSpace(rec.Description); text != "" {
		b.WriteString(text + "\n")
	} else {
		b.WriteString(descriptionPlaceholder + "\n")
	}

	return b.String(), nil
}
