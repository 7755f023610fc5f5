package dataset

import (
	"context"
	"io"
)

// Store persists the whole dataset at once.
//
// Load never fails: a missing, unreadable or undecodable snapshot yields
// Empty(). Save replaces the previous snapshot completely and leaves it intact
// when it returns an error.
type Store interface {
	Load(ctx context.Context) Snapshot
	Save(ctx context.Context, s Snapshot) error
}

// ClosableStore is implemented by backends that hold connections.
type ClosableStore interface {
	Store
	io.Closer
}

const (
	fallbackMissing    = "missing"
	fallbackUnreadable = "unreadable"
	fallbackCorrupt    = "corrupt"
)
