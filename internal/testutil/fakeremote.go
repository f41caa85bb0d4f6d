package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todo/internal/backend/googletasks"
	"todo/internal/service"
	"todo/internal/task"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu      sync.Mutex
	lists   []service.TaskList
	created map[string][]task.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	CreateTaskErr  error

	// FailAfter makes CreateTask fail with CreateTaskErr once this many
	// tasks were created. Zero fails immediately.
	FailAfter int
}

// NewFakeRemote creates a FakeRemote with a default list titled "My Tasks".
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists:   []service.TaskList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		created: make(map[string][]task.Task),
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
}

// Created returns the tasks created in listID, in call order.
func (f *FakeRemote) Created(listID string) []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]task.Task(nil), f.created[listID]...)
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, googletasks.ErrNotFound
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	name = strings.TrimSpace(name)
	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("%w: %s", googletasks.ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", googletasks.ErrAmbiguous, name)
	}
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID string, t task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateTaskErr != nil && len(f.created[listID]) >= f.FailAfter {
		return f.CreateTaskErr
	}
	f.created[listID] = append(f.created[listID], t)
	return nil
}
