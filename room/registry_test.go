package room

import (
	"context"
	"testing"

	"github.com/bena618/Armageddon-Chess-Backend/store"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateGetRemove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := store.NewMemoryStore()
	reg := NewRegistry(st, nil)

	_, ok := reg.Get("room1")
	require.False(t, ok)

	a := reg.Create(ctx, "room1")
	require.Equal(t, 1, reg.Len())

	got, ok := reg.Get("room1")
	require.True(t, ok)
	require.Same(t, a, got)

	reg.Remove("room1")
	require.Equal(t, 0, reg.Len())
}

func TestRegistryGetOrLoadRestoresPersistedRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := store.NewMemoryStore()

	reg1 := NewRegistry(st, nil)
	a1 := reg1.Create(ctx, "room1")
	_, err := a1.Init(ctx, testConfig())
	require.NoError(t, err)
	_, _ = a1.Join(ctx, "p1", "Alice")
	_, _ = a1.Join(ctx, "p2", "Bob")

	// simulate a process restart: a brand new registry over the same store,
	// with room1 not yet in memory.
	reg2 := NewRegistry(st, nil)
	_, ok := reg2.Get("room1")
	require.False(t, ok)

	a2, ok, err := reg2.GetOrLoad(ctx, "room1")
	require.NoError(t, err)
	require.True(t, ok)

	st2, err := a2.GetState(ctx)
	require.NoError(t, err)
	require.Len(t, st2.Players, 2)
	require.Equal(t, Lobby, st2.Phase)
}

func TestRegistryGetOrLoadUnknownRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	reg := NewRegistry(store.NewMemoryStore(), nil)

	_, ok, err := reg.GetOrLoad(ctx, "does-not-exist")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewRoomIDLength(t *testing.T) {
	id := NewRoomID()
	require.Len(t, id, 6)
}
