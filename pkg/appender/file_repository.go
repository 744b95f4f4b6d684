package appender

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const snapshotFileName = "appender.json"

// FileRepository persists appender snapshots as a JSON file, giving the
// serialize/restore contract an on-disk form: a process can snapshot its
// appender at shutdown and restore it after a restart.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository storing the snapshot under dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Load retrieves the last saved snapshot. Returns an empty snapshot and
// nil error if none has been saved yet.
func (r *FileRepository) Load() (Snapshot, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Save persists the snapshot atomically: write to a temp file, then
// rename, so a crash never leaves a torn snapshot behind.
func (r *FileRepository) Save(snap Snapshot) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.Path())
}

// Path returns the full path of the snapshot file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, snapshotFileName)
}
