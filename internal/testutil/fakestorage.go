// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
	"time"
)

// FakeStorage is an in-memory implementation of storage.Storage for testing.
type FakeStorage struct {
	mu   sync.Mutex
	data map[string][]byte

	// Error injection for testing
	GetErr error
	SetErr error

	// Sets counts successful and failed Set calls.
	Sets   int
	Closed bool
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{data: make(map[string][]byte)}
}

// Put seeds key with value without counting as a Set.
func (f *FakeStorage) Put(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = append([]byte(nil), value...)
}

// Value returns what is stored under key.
func (f *FakeStorage) Value(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return append([]byte(nil), v...), ok
}

// Get implements storage.Storage.
func (f *FakeStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetErr != nil {
		return nil, false, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements storage.Storage.
func (f *FakeStorage) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

// Close implements storage.Storage.
func (f *FakeStorage) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// StepClock returns a clock that starts at start and advances by step on every call.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
