package index

import (
	"context"
	"errors"
	"testing"

	"github.com/bena618/Armageddon-Chess-Backend/store"
	"github.com/stretchr/testify/require"
)

// failingStore wraps a MemoryStore and fails every Put once armed, so tests
// can exercise the mailbox's persist-failure error propagation.
type failingStore struct {
	*store.MemoryStore
	failPuts bool
}

func newFailingStore() *failingStore {
	return &failingStore{MemoryStore: store.NewMemoryStore()}
}

func (s *failingStore) Put(ctx context.Context, actorKind, actorID, key string, value []byte) error {
	if s.failPuts {
		return errors.New("simulated durable-storage fault")
	}
	return s.MemoryStore.Put(ctx, actorKind, actorID, key, value)
}

func TestActorPersistsRoomsAndQueuesAcrossRestart(t *testing.T) {
	st := store.NewMemoryStore()
	ctx1, cancel1 := context.WithCancel(context.Background())

	a1 := NewActor(st, []int64{300_000})
	go a1.Run(ctx1)

	require.NoError(t, a1.UpdateRoom(testMeta("room1", "p1")))
	_, err := a1.AddToQueue("p2", "Bob", 300_000)
	require.NoError(t, err)

	cancel1()

	// a fresh actor over the same store should see the same directory and
	// queue contents once it loads.
	ctx2, cancel2 := context.WithCancel(context.Background())
	t.Cleanup(cancel2)
	a2 := NewActor(st, []int64{300_000})
	go a2.Run(ctx2)

	entries, err := a2.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "room1", entries[0].RoomID)

	n, err := a2.QueueLength(300_000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUpdateRoomReportsErrorWhenPersistFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := newFailingStore()
	st.failPuts = true
	a := NewActor(st, []int64{300_000})
	go a.Run(ctx)

	err := a.UpdateRoom(testMeta("room1", "p1"))
	require.Error(t, err, "a durable-storage fault during a commit must surface to the caller, not be swallowed")
}

func TestAddToQueueReportsErrorWhenPersistFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := newFailingStore()
	st.failPuts = true
	a := NewActor(st, []int64{300_000})
	go a.Run(ctx)

	_, err := a.AddToQueue("p1", "Alice", 300_000)
	require.Error(t, err)
}
