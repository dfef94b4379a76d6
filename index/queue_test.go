package index

import (
	"context"
	"testing"

	"github.com/bena618/Armageddon-Chess-Backend/store"
	"github.com/stretchr/testify/require"
)

func newTestActor(t *testing.T, timeControls ...int64) *Actor {
	t.Helper()
	if len(timeControls) == 0 {
		timeControls = []int64{300_000, 600_000, 900_000}
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a := NewActor(store.NewMemoryStore(), timeControls)
	go a.Run(ctx)
	return a
}

func TestAddToQueueNoDirectiveUntilTwoWaiting(t *testing.T) {
	a := newTestActor(t)

	d, err := a.AddToQueue("p1", "Alice", 300_000)
	require.NoError(t, err)
	require.Nil(t, d)

	n, err := a.QueueLength(300_000)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	d, err = a.AddToQueue("p2", "Bob", 300_000)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.True(t, d.ShouldCreateRoom)
	require.Equal(t, int64(300_000), d.MainTimeMs)
	require.Equal(t, "p1", d.QueuedPlayers[0].PlayerID)
	require.Equal(t, "p2", d.QueuedPlayers[1].PlayerID)
}

func TestAddToQueueIsIdempotentPerPlayer(t *testing.T) {
	a := newTestActor(t)
	_, _ = a.AddToQueue("p1", "Alice", 300_000)
	_, _ = a.AddToQueue("p1", "Alice", 300_000)

	n, err := a.QueueLength(300_000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestJoinAllMatchesInFirstReadyBucket(t *testing.T) {
	a := newTestActor(t, 300_000, 600_000)

	// seed a lone waiter in the 600_000 bucket only.
	_, err := a.AddToQueue("p2", "Bob", 600_000)
	require.NoError(t, err)

	// p1 joins every configured bucket: 300_000 now has only p1 (not ready),
	// 600_000 now has p2 and p1 (ready) — the directive must name 600_000,
	// not the first-configured 300_000.
	d, err := a.JoinAll("p1", "Alice")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, int64(600_000), d.MainTimeMs)
}

func TestRemoveFromAllQueuesDropsEveryBucket(t *testing.T) {
	a := newTestActor(t, 300_000, 600_000)
	_, _ = a.AddToQueue("p1", "Alice", 300_000)
	_, _ = a.AddToQueue("p1", "Alice", 600_000)

	err := a.RemoveFromAllQueues("p1")
	require.NoError(t, err)

	n1, _ := a.QueueLength(300_000)
	n2, _ := a.QueueLength(600_000)
	require.Equal(t, 0, n1)
	require.Equal(t, 0, n2)
}

func TestCheckMatchReportsQueuedWhenNotYetMatched(t *testing.T) {
	a := newTestActor(t)
	_, _ = a.AddToQueue("p1", "Alice", 300_000)

	res, err := a.CheckMatch("p1")
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.True(t, res.InQueue)
}

func TestCheckMatchReportsMatchedOnceRoomExists(t *testing.T) {
	a := newTestActor(t)
	err := a.UpdateRoom(testMeta("room1", "p1"))
	require.NoError(t, err)

	res, err := a.CheckMatch("p1")
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, "room1", res.RoomID)
}

func TestEnqueueIsBestEffortReseat(t *testing.T) {
	a := newTestActor(t)
	err := a.Enqueue("p1", "Alice", 300_000)
	require.NoError(t, err)

	n, err := a.QueueLength(300_000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
