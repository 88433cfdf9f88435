// Package state persists the small key/value state that survives restarts:
// the token and the last-notified version marker.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const storeVersion = 1

// stored is the on-disk shape of the store.
type stored struct {
	Version         int    `json:"version"`
	Token           string `json:"token"`
	NotifiedVersion string `json:"notified_version,omitempty"`
}

// Store is a file-backed key/value store. Every mutation is written through
// to disk immediately.
type Store struct {
	mu   sync.Mutex
	path string
	data stored
}

// DefaultPath returns the default path for the state file.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".prbridge", "state.json")
}

// Load loads the store from disk, or returns an empty store when the file
// does not exist yet.
func Load(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: stored{Version: storeVersion},
	}

	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	var onDisk stored
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		return s, err
	}

	if onDisk.Version != storeVersion {
		// Ignore incompatible versions but keep an empty store.
		return s, nil
	}

	s.data = onDisk
	return s, nil
}

// Token returns the persisted token (may be empty).
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// SetToken persists the token. An empty string is stored as-is.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Token = token
	return s.saveLocked()
}

// NotifiedVersion returns the last version for which the setup prompt was
// shown.
func (s *Store) NotifiedVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.NotifiedVersion
}

// SetNotifiedVersion persists the last-notified version marker.
func (s *Store) SetNotifiedVersion(version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.NotifiedVersion = version
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}
