// Package store persists named collections as JSON arrays, one file per collection.
//
// Every write rewrites the whole file. Writes go through a temp file and a rename so
// readers never observe a partially written collection, and each collection has its
// own mutex so Update runs read-modify-write without losing concurrent updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Collection file names.
const (
	Accounts              = "accounts"
	Vendors               = "vendors"
	Products              = "products"
	CustomizationRequests = "customization-requests"
	Orders                = "orders"
	Blog                  = "blog"
)

const (
	fileExt              = ".json"
	filePerm fs.FileMode = 0o644
	dirPerm  fs.FileMode = 0o755
)

// Store owns the data directory and the per-collection locks.
type Store struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open prepares dir for use, creating it when missing.
func Open(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, locks: map[string]*sync.Mutex{}}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the backing file for a collection name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Ping verifies the data directory is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// readJSON decodes the collection file into dest. When the file does not exist it
// writes def and decodes that instead.
func (s *Store) readJSON(ctx context.Context, name string, dest, def any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.writeJSON(ctx, name, def); err != nil {
			return err
		}
		raw, err = json.Marshal(def)
		if err != nil {
			return fmt.Errorf("encode default %s: %w", name, err)
		}
	} else if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeJSON(ctx context.Context, name string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
