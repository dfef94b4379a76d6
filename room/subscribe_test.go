package room

import (
	"context"
	"testing"

	"github.com/bena618/Armageddon-Chess-Backend/store"
	"github.com/stretchr/testify/require"
)

type capturingSink struct {
	updates []Update
}

func (s *capturingSink) Send(u Update) error {
	s.updates = append(s.updates, u)
	return nil
}

func TestSubscribeBeforeInitReturnsNotFound(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a := NewActor("room1", store.NewMemoryStore(), nil)
	go a.Run(ctx)

	_, _, err := a.Subscribe(ctx, &capturingSink{})
	require.Error(t, err)
}

func TestSubscribeDoesNotPersistOrBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := store.NewMemoryStore()
	a := NewActor("room1", st, nil)
	go a.Run(ctx)
	_, err := a.Init(ctx, testConfig())
	require.NoError(t, err)

	sink := &capturingSink{}
	snap, subID, err := a.Subscribe(ctx, sink)
	require.NoError(t, err)
	require.Equal(t, Lobby, snap.Phase)
	require.NotEmpty(t, subID)
	require.Empty(t, sink.updates)

	a.Unsubscribe(ctx, subID)

	// a subsequent mutation should no longer reach the detached sink.
	_, err = a.Join(ctx, "p1", "Alice")
	require.NoError(t, err)
	require.Empty(t, sink.updates)
}

func TestSubscribeReceivesBroadcastOnCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a := NewActor("room1", store.NewMemoryStore(), nil)
	go a.Run(ctx)
	_, err := a.Init(ctx, testConfig())
	require.NoError(t, err)

	sink := &capturingSink{}
	_, _, err = a.Subscribe(ctx, sink)
	require.NoError(t, err)

	_, err = a.Join(ctx, "p1", "Alice")
	require.NoError(t, err)

	require.Len(t, sink.updates, 1)
	require.Equal(t, "update", sink.updates[0].Type)
	require.Len(t, sink.updates[0].Room.Players, 1)
}
