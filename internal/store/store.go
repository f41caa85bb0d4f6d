// Package store owns the ordered task list and keeps it in sync with storage.
//
// Every mutation is written through to storage immediately. Storage
// failures never reach the caller: a failed read loads an empty list and
// a failed write is logged while the in-memory mutation stands.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/storage/filestore"
	"todo/internal/storage/sqlitestore"
	"todo/internal/task"
)

// Store holds the task list. It is not safe for concurrent use.
type Store struct {
	storage storage.Storage
	key     string
	log     *slog.Logger
	now     func() time.Time

	tasks  []task.Task
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for storage diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the clock task ids are derived from.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty Store persisting to st under key. Call Load to read
// the persisted list.
func New(st storage.Storage, key string, opts ...Option) *Store {
	s := &Store{
		storage: st,
		key:     key,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open selects the storage backend from cfg, creates a Store on it and loads it.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	key := cfg.StorageKey()
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	var st storage.Storage
	switch cfg.Storage.Backend {
	case "", storage.BackendFile:
		st = filestore.New(cfg.DataDir())
	case storage.BackendSQLite:
		db, err := sqlitestore.Open(cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		st = db
	default:
		return nil, fmt.Errorf("%w: %s", storage.ErrUnknownBackend, cfg.Storage.Backend)
	}

	s := New(st, key, WithLogger(cfg.Log()))
	s.Load(ctx)
	return s, nil
}

// Load replaces the in-memory list with the persisted one.
// Absent or malformed data loads as an empty list.
func (s *Store) Load(ctx context.Context) {
	s.tasks = nil
	s.lastID = 0

	data, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("failed to read task list, starting empty", "key", s.key, "error", err)
		return
	}
	if !ok {
		s.log.Debug("no persisted task list", "key", s.key)
		return
	}

	tasks, err := Decode(data)
	if err != nil {
		s.log.Warn("malformed task list, starting empty", "key", s.key, "error", err)
		return
	}

	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			s.log.Warn("dropping task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.log.Debug("loaded task list", "key", s.key, "tasks", len(s.tasks))
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns the task with id.
func (s *Store) Find(id int64) (task.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Add appends a pending task with trimmed text and a fresh id.
// Text that trims to empty is ignored and ok is false.
func (s *Store) Add(ctx context.Context, text string) (task.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, false
	}

	t := task.Task{ID: s.nextID(), Text: text}
	s.tasks = append(s.tasks, t)
	s.persist(ctx)
	return t, true
}

// Toggle flips the completed flag of the task with id.
// An unknown id is ignored and ok is false.
func (s *Store) Toggle(ctx context.Context, id int64) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist(ctx)
	return s.tasks[i], true
}

// Remove deletes the task with id. An unknown id is ignored and the result is false.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist(ctx)
	return true
}

// Source returns the file the list is persisted in, or "" if the backend
// is not file based.
func (s *Store) Source() string {
	if l, ok := s.storage.(storage.Locator); ok {
		return l.Locate(s.key)
	}
	return ""
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID returns the creation time in Unix milliseconds, bumped past the
// last issued id so ids stay unique when the clock stalls or goes back.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persist writes the list even if ctx is already cancelled.
func (s *Store) persist(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	data, err := Encode(s.tasks)
	if err != nil {
		s.log.Warn("failed to encode task list", "error", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.log.Warn("failed to save task list", "key", s.key, "error", err)
		return
	}
	s.log.Debug("saved task list", "key", s.key, "tasks", len(s.tasks))
}
