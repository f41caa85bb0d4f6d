// Package storage defines the durable keyed slot the task list is persisted in.
//
// A Storage holds opaque blobs under string keys. Backends live in
// subpackages: filestore keeps one file per key, sqlitestore keeps a
// key/value table in a SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// BackendFile selects the file-per-key backend.
	BackendFile = "file"

	// BackendSQLite selects the SQLite backend.
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned when configuration names a backend that does not exist.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrInvalidKey is returned for keys that are empty or contain path separators.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage is a durable key/value slot for blobs.
type Storage interface {
	// Get returns the blob stored under key.
	// ok is false if nothing is stored under key.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the storage.
	Close() error
}

// Locator is implemented by storages that keep each key in its own file.
type Locator interface {
	// Locate returns the path of the file holding key.
	Locate(key string) string
}

// ValidateKey checks that key can be used with every backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return nil
}
