package storage

import (
	"context"
	"errors"
)

// ErrNoData means the slot has never been written. Callers treat it as an
// empty catalog, not a failure.
var ErrNoData = errors.New("slot has no data")

// Slot is a named whole-document storage cell. Every write replaces the
// full payload; there are no partial updates.
type Slot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
