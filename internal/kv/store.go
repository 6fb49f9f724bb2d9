// Package kv provides the durable string store that holds the last-run
// snapshot. Every backend implements the same get/set contract with
// last-write-wins overwrites.
package kv

import (
	"context"
	"errors"
)

// Store is an opaque string key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases the backend's resources.
	Close() error
}

// ErrEmptyKey is returned when a key is blank.
var ErrEmptyKey = errors.New("kv: key is required")
