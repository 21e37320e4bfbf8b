// Package storage persists ledger snapshots to one or more backends and hides
// their failures from callers.
//
// A Backend moves opaque encoded payloads. Storage layers the ledger policy
// on top: loads try backends in priority order and fall back to the default
// snapshot, saves fan out to every backend in parallel and only log failures.
package storage

import (
	"context"
	"errors"
)

// ErrNoData is returned by Backend.Load when the backend holds no snapshot.
var ErrNoData = errors.New("storage: no snapshot stored")

// Backend is a single persistence target for the encoded snapshot.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Load returns the stored payload or ErrNoData.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored payload.
	Save(ctx context.Context, payload []byte) error
}

// closer is implemented by backends holding connections.
type closer interface {
	Close(ctx context.Context) error
}
