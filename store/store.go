// Package store abstracts the durable per-actor key-value map the room and
// index actors persist through. The spec treats this map as an opaque
// external collaborator; this package gives it one concrete shape so the
// actors can depend on the narrow Store interface instead of a SQL driver.
package store

import "context"

// Store is a generic actor-scoped key-value contract. Each actor (a room,
// or the singleton index) owns its own namespace; callers never see keys
// belonging to another actor.
type Store interface {
	// Get returns the raw bytes stored under key for actor, or ok=false if
	// nothing has been persisted yet.
	Get(ctx context.Context, actorKind, actorID, key string) (value []byte, ok bool, err error)
	// Put persists value under key for actor, replacing any previous value.
	Put(ctx context.Context, actorKind, actorID, key string, value []byte) error
	// Delete removes any value stored under key for actor.
	Delete(ctx context.Context, actorKind, actorID, key string) error
}
