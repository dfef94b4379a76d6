package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveBiddingTieRestartsWithNewDeadline(t *testing.T) {
	t0 := time.Now().UTC()
	r := &room{
		phase:         Bidding,
		players:       []Player{{ID: "p1"}, {ID: "p2"}},
		bids:          map[string]Bid{"p1": {AmountMs: 5_000, SubmittedAt: t0}, "p2": {AmountMs: 5_000, SubmittedAt: t0}},
		bidDurationMs: 30_000,
	}
	resolveBidding(r, t0)

	require.Equal(t, Bidding, r.phase)
	require.Empty(t, r.bids)
	require.NotNil(t, r.bidDeadline)
	require.Equal(t, t0.Add(30*time.Second), *r.bidDeadline)
}

func TestResolveBiddingLowerBidWins(t *testing.T) {
	t0 := time.Now().UTC()
	r := &room{
		phase:         Bidding,
		players:       []Player{{ID: "p1"}, {ID: "p2"}},
		bids:          map[string]Bid{"p1": {AmountMs: 9_000, SubmittedAt: t0}, "p2": {AmountMs: 4_000, SubmittedAt: t0}},
		choiceDurationMs: 15_000,
	}
	resolveBidding(r, t0)

	require.Equal(t, ColorPick, r.phase)
	require.Equal(t, "p2", r.winnerID)
	require.Equal(t, "p1", r.loserID)
	require.Equal(t, int64(4_000), r.winningBidMs)
	require.Equal(t, int64(9_000), r.losingBidMs)
	require.Equal(t, "winner", r.currentPicker)
}

func TestResolveBiddingDeadlinePassedDefaultsMissingBidToMax(t *testing.T) {
	t0 := time.Now().UTC()
	deadline := t0.Add(-time.Second)
	r := &room{
		phase:         Bidding,
		players:       []Player{{ID: "p1"}, {ID: "p2"}},
		bids:          map[string]Bid{"p1": {AmountMs: 1_000, SubmittedAt: t0}},
		bidDeadline:   &deadline,
		mainTimeMs:    300_000,
		choiceDurationMs: 15_000,
	}
	resolveBidding(r, t0)

	require.Equal(t, ColorPick, r.phase)
	require.Equal(t, "p1", r.winnerID)
	require.Equal(t, int64(300_000), r.losingBidMs)
}

func TestResolveBiddingNoopWhenNotBidding(t *testing.T) {
	r := &room{phase: Lobby}
	resolveBidding(r, time.Now())
	require.Equal(t, Lobby, r.phase)
}
