// Package settings defines the port for per-owner target settings storage
// and the write-coalescing policy applied in front of it.
package settings

import (
	"context"
	"errors"

	"territory/internal/core"
)

// ErrNotFound reports that no settings record exists for an owner. Callers
// treat it as "use zero-valued defaults", never as a fatal condition.
var ErrNotFound = errors.New("settings not found")

// Store is the keyed settings record store. Writes are last-write-wins.
type Store interface {
	// Get returns the owner's settings, or ErrNotFound.
	Get(ctx context.Context, ownerID string) (core.TargetSettings, error)

	// Put creates or fully overwrites the owner's settings.
	Put(ctx context.Context, s core.TargetSettings) error

	// Delete removes the owner's settings, or returns ErrNotFound.
	Delete(ctx context.Context, ownerID string) error
}
