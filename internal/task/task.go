// Package task defines the task record and the visibility filter.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// Task is a single to-do entry.
// The JSON field names are the persisted representation.
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// FilterMode selects which tasks are visible.
type FilterMode int

const (
	// All shows every task.
	All FilterMode = iota

	// Completed shows tasks with Completed set.
	Completed

	// Pending shows tasks with Completed unset.
	Pending
)

// ErrUnknownFilter is returned by ParseFilterMode for unrecognised names.
var ErrUnknownFilter = errors.New("unknown filter")

// FilterModes lists the modes in the order the interactive view cycles them.
var FilterModes = []FilterMode{All, Pending, Completed}

func (m FilterMode) String() string {
	switch m {
	case Completed:
		return "completed"
	case Pending:
		return "pending"
	default:
		return "all"
	}
}

// Next returns the mode after m in FilterModes, wrapping around.
func (m FilterMode) Next() FilterMode {
	for i, mode := range FilterModes {
		if mode == m {
			return FilterModes[(i+1)%len(FilterModes)]
		}
	}
	return All
}

// ParseFilterMode parses a filter name (case-insensitive, trimmed).
// An empty name is All.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "completed", "done":
		return Completed, nil
	case "pending", "open":
		return Pending, nil
	default:
		return All, fmt.Errorf("%w: %s", ErrUnknownFilter, s)
	}
}

// Matches reports whether t is visible under mode.
func (m FilterMode) Matches(t Task) bool {
	switch m {
	case Completed:
		return t.Completed
	case Pending:
		return !t.Completed
	default:
		return true
	}
}

// Visible returns the tasks matching mode in their original order.
// The input slice is not modified.
func Visible(tasks []Task, mode FilterMode) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}
