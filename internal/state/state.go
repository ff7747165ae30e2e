// Package state persists the ingest record across runs: the set of content
// hashes ever seen and the append-only list of ingested works. The state file
// is read once at startup and written once after a successful batch; it is
// the single source of truth for what has been ingested.
package state

import (
	"sort"
)

// WorkRecord is the persistent record of one ingested work. Records are
// created once and never mutated or deleted by the pipeline.
type WorkRecord struct {
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	Creator        string   `json:"creator"`
	License        string   `json:"license"`
	Language       string   `json:"language"`
	Keywords       []string `json:"keywords"`
	Description    string   `json:"description"`
	Transcription  string   `json:"transcription"`
	SourceFilename string   `json:"source_filename"`
	ImagePath      string   `json:"image_path"`
	DocumentPath   string   `json:"document_path"`
	ContentHash    string   `json:"content_hash"`
}

// State is the full durable ingest record.
type State struct {
	SeenHashes []string     `json:"seen_hashes"`
	Works      []WorkRecord `json:"works"`
}

// Empty returns a fresh state.
func Empty() *State {
	return &State{SeenHashes: []string{}, Works: []WorkRecord{}}
}

// Seen reports whether a content hash has already been ingested.
func (s *State) Seen(hash string) bool {
	for _, h := range s.SeenHashes {
		if h == hash {
			return true
		}
	}
	return false
}

// Record appends a work and marks its content hash as seen. The hash set
// stays sorted so the persisted file diffs cleanly.
func (s *State) Record(rec WorkRecord) {
	s.Works = append(s.Works, rec)
	if !s.Seen(rec.ContentHash) {
		s.SeenHashes = append(s.SeenHashes, rec.ContentHash)
		sort.Strings(s.SeenHashes)
	}
}

// IndexEntries returns (title, document path) pairs for every known work.
func (s *State) IndexEntries() [][2]string {
	entries := make([][2]string, 0, len(s.Works))
	for _, w := range s.Works {
		entries = append(entries, [2]string{w.Title, w.DocumentPath})
	}
	return entries
}
