package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
	"github.com/bena618/Armageddon-Chess-Backend/store"
	"github.com/stretchr/testify/require"
)

// failingStore wraps a MemoryStore and fails every Put once armed, so tests
// can exercise the mailbox's persist-failure rollback path.
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

// newTestActor builds an Actor backed by a fresh MemoryStore and starts its
// mailbox goroutine, stopping it when the test ends.
func newTestActor(t *testing.T, index IndexPort) *Actor {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a := NewActor("room1", store.NewMemoryStore(), index)
	go a.Run(ctx)
	return a
}

func testCtx() context.Context {
	return context.Background()
}

func newTestStore() store.Store {
	return store.NewMemoryStore()
}

func testConfig() Config {
	return Config{
		RoomID:           "room1",
		MaxPlayers:       2,
		BidDurationMs:    30_000,
		ChoiceDurationMs: 15_000,
		MainTimeMs:       300_000,
	}
}

func TestInitRejectsDoubleInit(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)

	_, err := a.Init(ctx, testConfig())
	require.NoError(t, err)

	_, err = a.Init(ctx, testConfig())
	require.True(t, errs.Is(err, errs.AlreadyInitialized))
}

func TestFullLifecycleToCheckmate(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)

	_, err := a.Init(ctx, testConfig())
	require.NoError(t, err)

	_, err = a.Join(ctx, "p1", "Alice")
	require.NoError(t, err)
	_, err = a.Join(ctx, "p2", "Bob")
	require.NoError(t, err)

	// duplicate join is idempotent
	st, err := a.Join(ctx, "p1", "Alice")
	require.NoError(t, err)
	require.Len(t, st.Players, 2)

	st, err = a.StartBidding(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, Lobby, st.Phase)
	require.Equal(t, "p1", st.StartRequestedBy)

	st, err = a.StartBidding(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, Bidding, st.Phase)

	st, err = a.SubmitBid(ctx, "p1", 10_000)
	require.NoError(t, err)
	require.Equal(t, Bidding, st.Phase)

	st, err = a.SubmitBid(ctx, "p2", 20_000)
	require.NoError(t, err)
	require.Equal(t, ColorPick, st.Phase)
	require.Equal(t, "p1", st.WinnerID)
	require.Equal(t, "p2", st.LoserID)
	require.Equal(t, "winner", st.CurrentPicker)

	st, err = a.ChooseColor(ctx, "p1", White)
	require.NoError(t, err)
	require.Equal(t, Playing, st.Phase)
	require.Equal(t, White, st.Colors["p1"])
	require.Equal(t, Black, st.Colors["p2"])
	require.Equal(t, int64(10_000), st.Clocks.WhiteRemainingMs)
	require.Equal(t, int64(300_000), st.Clocks.BlackRemainingMs)

	// fool's mate: white loses in 4 ply
	st, err = a.MakeMove(ctx, "p1", "f2f3")
	require.NoError(t, err)
	require.Equal(t, Playing, st.Phase)

	st, err = a.MakeMove(ctx, "p2", "e7e5")
	require.NoError(t, err)

	st, err = a.MakeMove(ctx, "p1", "g2g4")
	require.NoError(t, err)

	st, err = a.MakeMove(ctx, "p2", "d8h4")
	require.NoError(t, err)
	require.Equal(t, Finished, st.Phase)
	require.Equal(t, "checkmate", st.Result)
	require.Equal(t, "p2", st.WinnerID)
	require.NotNil(t, st.RematchWindowEnds)
	require.NotNil(t, st.Clocks.FrozenAt)
}

func TestChooseColorWrongPickerRejected(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)
	_, err := a.Init(ctx, testConfig())
	require.NoError(t, err)
	_, _ = a.Join(ctx, "p1", "Alice")
	_, _ = a.Join(ctx, "p2", "Bob")
	_, _ = a.StartBidding(ctx, "p1")
	_, _ = a.StartBidding(ctx, "p2")
	_, _ = a.SubmitBid(ctx, "p1", 10_000)
	_, _ = a.SubmitBid(ctx, "p2", 20_000)

	_, err = a.ChooseColor(ctx, "p2", White)
	require.Error(t, err)
}

func TestMakeMoveRejectsOutOfTurn(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)
	_, _ = a.Init(ctx, testConfig())
	_, _ = a.Join(ctx, "p1", "Alice")
	_, _ = a.Join(ctx, "p2", "Bob")
	_, _ = a.StartBidding(ctx, "p1")
	_, _ = a.StartBidding(ctx, "p2")
	_, _ = a.SubmitBid(ctx, "p1", 10_000)
	_, _ = a.SubmitBid(ctx, "p2", 20_000)
	_, _ = a.ChooseColor(ctx, "p1", White)

	_, err := a.MakeMove(ctx, "p2", "e7e5")
	require.Error(t, err)
}

func TestMakeMoveRejectsIllegalAndMalformed(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)
	_, _ = a.Init(ctx, testConfig())
	_, _ = a.Join(ctx, "p1", "Alice")
	_, _ = a.Join(ctx, "p2", "Bob")
	_, _ = a.StartBidding(ctx, "p1")
	_, _ = a.StartBidding(ctx, "p2")
	_, _ = a.SubmitBid(ctx, "p1", 10_000)
	_, _ = a.SubmitBid(ctx, "p2", 20_000)
	_, _ = a.ChooseColor(ctx, "p1", White)

	_, err := a.MakeMove(ctx, "p1", "z9z9")
	require.Error(t, err)

	_, err = a.MakeMove(ctx, "p1", "e2e5")
	require.Error(t, err)
}

func TestTimeForfeitRejectsWhenClockStillRunning(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)
	_, _ = a.Init(ctx, testConfig())
	_, _ = a.Join(ctx, "p1", "Alice")
	_, _ = a.Join(ctx, "p2", "Bob")
	_, _ = a.StartBidding(ctx, "p1")
	_, _ = a.StartBidding(ctx, "p2")
	_, _ = a.SubmitBid(ctx, "p1", 10_000)
	_, _ = a.SubmitBid(ctx, "p2", 20_000)
	_, _ = a.ChooseColor(ctx, "p1", White)

	_, err := a.TimeForfeit(ctx, "p2")
	require.Error(t, err)
}

func TestJoinRoomFullAndNotInLobby(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)
	_, _ = a.Init(ctx, testConfig())
	_, _ = a.Join(ctx, "p1", "Alice")
	_, _ = a.Join(ctx, "p2", "Bob")

	_, err := a.Join(ctx, "p3", "Carl")
	require.Error(t, err)

	_, _ = a.StartBidding(ctx, "p1")
	_, _ = a.StartBidding(ctx, "p2")

	_, err = a.Join(ctx, "p4", "Dan")
	require.Error(t, err)
}

func TestPersistFailureDuringInitLeavesRoomUninitialized(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := newFailingStore()
	st.failPuts = true
	a := NewActor("room1", st, nil)
	go a.Run(ctx)

	_, err := a.Init(ctx, testConfig())
	require.Error(t, err)

	// the room must still look uninitialized: a second Init should succeed
	// (not reject with AlreadyInitialized), proving the failed commit never
	// took effect in memory.
	st.failPuts = false
	_, err = a.Init(ctx, testConfig())
	require.NoError(t, err)
}

func TestPersistFailureDuringMutationRollsBackInMemoryState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	st := newFailingStore()
	a := NewActor("room1", st, nil)
	go a.Run(ctx)

	_, err := a.Init(ctx, testConfig())
	require.NoError(t, err)

	before, err := a.Join(ctx, "p1", "Alice")
	require.NoError(t, err)
	require.Len(t, before.Players, 1)

	st.failPuts = true
	_, err = a.Join(ctx, "p2", "Bob")
	require.Error(t, err)

	st.failPuts = false
	after, err := a.Heartbeat(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, after.Players, 1, "failed join must not have left p2 seated in memory")
}

func TestHeartbeatUpdatesTimestamp(t *testing.T) {
	ctx := context.Background()
	a := newTestActor(t, nil)
	_, _ = a.Init(ctx, testConfig())
	st1, _ := a.Join(ctx, "p1", "Alice")
	time.Sleep(2 * time.Millisecond)
	st2, err := a.Heartbeat(ctx, "p1")
	require.NoError(t, err)
	require.True(t, st2.UpdatedAt.After(st1.UpdatedAt))
}
