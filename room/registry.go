package room

import (
	"context"
	"crypto/rand"
	"sync"

	"github.com/bena618/Armageddon-Chess-Backend/store"
)

// Registry is the process-wide map from room id to its running Actor,
// generalizing the api server's MatchStorage: a mutex-guarded map, except
// every entry also owns a live mailbox goroutine instead of being locked
// directly by callers.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Actor

	store store.Store
	index IndexPort
}

// NewRegistry constructs an empty registry. st and index are shared by
// every actor the registry creates.
func NewRegistry(st store.Store, index IndexPort) *Registry {
	return &Registry{
		rooms: map[string]*Actor{},
		store: st,
		index: index,
	}
}

// NewRoomID mints a 6 character alphanumeric id, matching the api server's
// convention for short, shareable room codes.
func NewRoomID() string {
	return rand.Text()[:6]
}

// Get returns the actor for id, or ok=false if no such room has been
// created (or loaded from storage) yet.
func (reg *Registry) Get(id string) (*Actor, bool) {
	reg.mu.RLock()
	a, ok := reg.rooms[id]
	reg.mu.RUnlock()
	return a, ok
}

// Create starts a brand new room actor and spawns its mailbox goroutine.
// ctx governs the actor's lifetime; cancelling it (e.g. at server shutdown)
// stops the goroutine.
func (reg *Registry) Create(ctx context.Context, id string) *Actor {
	a := NewActor(id, reg.store, reg.index)
	reg.mu.Lock()
	reg.rooms[id] = a
	reg.mu.Unlock()
	go a.Run(ctx)
	return a
}

// GetOrLoad returns the running actor for id if one is already in memory,
// otherwise tries to resurrect it from the durable store. Returns ok=false
// only if neither an in-memory actor nor a persisted snapshot exists.
func (reg *Registry) GetOrLoad(ctx context.Context, id string) (*Actor, bool, error) {
	if a, ok := reg.Get(id); ok {
		return a, true, nil
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if a, ok := reg.rooms[id]; ok {
		return a, true, nil
	}

	a := NewActor(id, reg.store, reg.index)
	if err := a.load(ctx); err != nil {
		return nil, false, err
	}
	if a.room == nil {
		return nil, false, nil
	}
	reg.rooms[id] = a
	go a.Run(ctx)
	return a, true, nil
}

// Remove drops id from the registry. It does not stop the actor's
// goroutine directly; callers cancel the actor's context (typically the
// server's root context at shutdown, or a per-room context after close) to
// do that.
func (reg *Registry) Remove(id string) {
	reg.mu.Lock()
	delete(reg.rooms, id)
	reg.mu.Unlock()
}

// Len reports how many rooms are currently tracked in memory.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	n := len(reg.rooms)
	reg.mu.RUnlock()
	return n
}
