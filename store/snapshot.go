package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotMessage is the wire form of one message inside the snapshot
// document.
type SnapshotMessage struct {
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Snapshot is the full durable state: the ordered log plus the per-user
// send counts, always written together.
type Snapshot struct {
	Messages []SnapshotMessage `json:"messages"`
	Counts   map[string]int    `json:"counts"`
}

// ISnapshotStore persists the whole chat state as a single document.
type ISnapshotStore interface {
	Save(s Snapshot) error
	Load() (Snapshot, bool, error)
}

// FileSnapshotStore keeps the snapshot in one JSON file. Save goes through
// a temp file plus rename so a crash mid-write can never leave a
// half-written document for the next startup to choke on.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (f *FileSnapshotStore) Save(s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load returns found=false when no snapshot exists yet. A document that
// exists but does not decode is reported as an error; the caller decides
// that this is equivalent to an absent snapshot.
func (f *FileSnapshotStore) Load() (Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("malformed snapshot %s: %w", f.path, err)
	}
	return s, true, nil
}
