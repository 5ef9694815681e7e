package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/nexohub/internal/app/system/kv"
)

// FakeKV is an in-memory kv.Store and kv.Window for tests.
//
// Time is controlled through Now, so expiry and window behavior can be
// tested without sleeping. Setting Err makes every operation fail, to
// exercise fail-open/fail-closed paths.
type FakeKV struct {
	mu sync.Mutex

	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
	// Err, when non-nil, is returned by every operation.
	Err error

	values map[string]fakeEntry
	events map[string][]time.Time
}

type fakeEntry struct {
	value     string
	expiresAt time.Time
}

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{
		Now:    time.Now,
		values: make(map[string]fakeEntry),
		events: make(map[string][]time.Time),
	}
}

// Advance shifts the fake clock forward by d.
func (f *FakeKV) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	base := f.Now()
	f.Now = func() time.Time { return base.Add(d) }
}

// Get implements kv.Store.
func (f *FakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	e, ok := f.values[key]
	if !ok || f.Now().After(e.expiresAt) {
		delete(f.values, key)
		return "", kv.ErrNotFound
	}
	return e.value, nil
}

// SetWithTTL implements kv.Store.
func (f *FakeKV) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.values[key] = fakeEntry{value: value, expiresAt: f.Now().Add(ttl)}
	return nil
}

// Delete implements kv.Store.
func (f *FakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	delete(f.values, key)
	return nil
}

// WindowCount implements kv.Window.
func (f *FakeKV) WindowCount(_ context.Context, key string, window time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	cutoff := f.Now().Add(-window)
	kept := f.events[key][:0]
	for _, at := range f.events[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	f.events[key] = kept
	return int64(len(kept)), nil
}

// WindowAdd implements kv.Window.
func (f *FakeKV) WindowAdd(_ context.Context, key string, at time.Time, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.events[key] = append(f.events[key], at)
	return nil
}
