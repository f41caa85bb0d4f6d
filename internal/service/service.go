// Package service defines the interfaces commands and views work against.
package service

import (
	"context"

	"todo/internal/task"
)

// Service is the task list as seen by commands and views.
// store.Store is the implementation; commands never touch storage directly.
type Service interface {
	// Tasks returns the list in insertion order.
	Tasks() []task.Task

	// Find returns the task with id.
	Find(id int64) (task.Task, bool)

	// Add appends a task. Text that trims to empty is ignored (ok is false).
	Add(ctx context.Context, text string) (t task.Task, ok bool)

	// Toggle flips the completed flag. Unknown ids are ignored (ok is false).
	Toggle(ctx context.Context, id int64) (t task.Task, ok bool)

	// Remove deletes a task. Unknown ids are ignored (returns false).
	Remove(ctx context.Context, id int64) bool

	// Load re-reads the persisted list.
	Load(ctx context.Context)
}

// Remote is a task backend tasks can be pushed to.
// All Google Tasks API calls go through this interface.
// Commands never import Google SDK directly.
type Remote interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates t in the list, completed if t is.
	CreateTask(ctx context.Context, listID string, t task.Task) error
}
