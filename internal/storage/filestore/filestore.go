// Package filestore implements storage.Storage with one file per key.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"todo/internal/storage"
)

// Ext is the file extension used for stored blobs.
const Ext = ".json"

// Store keeps each key in <dir>/<key>.json.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Locate returns the path of the file holding key.
func (s *Store) Locate(key string) string {
	return filepath.Join(s.dir, key+Ext)
}

// Get reads the file for key. A missing file is not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.Locate(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value for key atomically: a temp file in the same directory
// is renamed over the old file, so readers never see a partial write.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, s.Locate(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles.
func (s *Store) Close() error {
	return nil
}
