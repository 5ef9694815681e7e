// Package kv abstracts the external key-value store that holds OTP codes
// and rate-limit windows.
//
// The store is the only shared mutable resource in the system; its
// consistency guarantees (atomic get/set/del per key) are the store's
// responsibility, not ours. Components receive a handle explicitly;
// never hold it as ambient global state.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or has expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is the expiring key-value surface used by the OTP issuer.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// SetWithTTL stores value under key, overwriting any prior value,
	// expiring after ttl.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrUnavailable is returned by Unavailable for every operation.
var ErrUnavailable = errors.New("kv: store not configured")

// Unavailable is the Store and Window used when no external store is
// configured. Every operation fails with ErrUnavailable, so OTP flows
// fail closed and rate limiting fails open.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, error) { return "", ErrUnavailable }

func (Unavailable) SetWithTTL(context.Context, string, string, time.Duration) error {
	return ErrUnavailable
}

func (Unavailable) Delete(context.Context, string) error { return ErrUnavailable }

func (Unavailable) WindowCount(context.Context, string, time.Duration) (int64, error) {
	return 0, ErrUnavailable
}

func (Unavailable) WindowAdd(context.Context, string, time.Time, time.Duration) error {
	return ErrUnavailable
}

// Window is the sliding-window surface used by the rate limiter.
type Window interface {
	// WindowCount prunes events older than window and returns how many
	// remain for key.
	WindowCount(ctx context.Context, key string, window time.Duration) (int64, error)
	// WindowAdd records an event at time at under key and refreshes the
	// key's expiry to window.
	WindowAdd(ctx context.Context, key string, at time.Time, window time.Duration) error
}
