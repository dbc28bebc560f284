// Package storage implements the shared key-value store every client reads
// and writes room and presence snapshots through.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for a key that was never written.
	ErrNotFound = errors.New("storage: key not found")
	// ErrRevisionMismatch is returned by Put when another writer got there first.
	ErrRevisionMismatch = errors.New("storage: revision mismatch")
)

// AnyRevision makes Put overwrite unconditionally.
const AnyRevision int64 = -1

// Entry is a stored value and the revision it was written at.
type Entry struct {
	Value    []byte
	Revision int64
}

// Port is a shared key-value store with per-key compare-and-swap.
type Port interface {
	// Get returns the current entry for key or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)
	// Put stores value if the key's revision equals expected (0 for an absent key)
	// and returns the new revision. AnyRevision skips the check.
	Put(ctx context.Context, key string, value []byte, expected int64) (int64, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keys names the records shared by all clients.
type Keys struct {
	Rooms       string
	OnlineUsers string
	RoomUpdate  string
}

// NewKeys prefixes the record names, e.g. "ecotrivia-rooms".
func NewKeys(prefix string) Keys {
	return Keys{
		Rooms:       prefix + "rooms",
		OnlineUsers: prefix + "online-users",
		RoomUpdate:  prefix + "room-update",
	}
}
