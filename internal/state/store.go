package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	stateFileName    = "state.json"
	manifestFileName = "manifest.json"
	lockFileName     = "ingest.lock"
)

// Store reads and writes the state file and its derived manifest inside the
// state directory. Only one process may hold the store's lock at a time;
// concurrent ingest runs are unsafe by design.
type Store struct {
	dir  string
	lock *flock.Flock
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first write so that read-only callers leave no trace.
func NewStore(dir string) *Store {
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFileName)),
	}
}

// Dir returns the state directory.
func (s *Store) Dir() string { return s.dir }

// StatePath returns the path of the state file.
func (s *Store) StatePath() string { return filepath.Join(s.dir, stateFileName) }

// ManifestPath returns the path of the derived manifest file.
func (s *Store) ManifestPath() string { return filepath.Join(s.dir, manifestFileName) }

// Lock acquires the run lock, refusing when another run holds it.
func (s *Store) Lock() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !ok {
		return errors.New("another ingest run is already active")
	}
	return nil
}

// Unlock releases the run lock.
func (s *Store) Unlock() error {
	return s.lock.Unlock()
}

// Load reads the state file, returning an empty state when it does not exist.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.StatePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	st := Empty()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

// Save atomically writes the state file and regenerates the manifest as a
// derived export of the works list. The manifest is never read back; the
// state file is authoritative.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := writeJSON(s.StatePath(), st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	manifest := struct {
		Works []WorkRecord `json:"works"`
	}{Works: st.Works}
	if err := writeJSON(s.ManifestPath(), manifest); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	return nil
}

// writeJSON writes indented, human-diffable JSON via temp file + rename so a
// crash mid-write never truncates the previous state.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
