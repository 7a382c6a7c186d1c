package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore is the demo-mode backend: string-keyed JSON collections persisted
// to one file per key under a data directory. Synchronous, single-writer,
// no query engine.
type LocalStore struct {
	dir string
	mu  sync.RWMutex
}

func OpenLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create local data dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get loads the collection stored under key into dest. Returns false when the
// key has never been written.
func (s *LocalStore) Get(key string, dest any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("corrupt local collection %q: %w", key, err)
	}
	return true, nil
}

// Put overwrites the collection stored under key.
func (s *LocalStore) Put(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), raw, 0o644)
}
