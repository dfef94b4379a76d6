package index

import (
	"testing"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/room"
	"github.com/stretchr/testify/require"
)

func playingEntry(roomID string, mainTimeMs, whiteMs, blackMs int64) Entry {
	return Entry{
		RoomID:     roomID,
		Phase:      room.Playing,
		Players:    []room.Player{{ID: "p1"}, {ID: "p2"}},
		MainTimeMs: mainTimeMs,
		Clocks:     &room.Clocks{WhiteRemainingMs: whiteMs, BlackRemainingMs: blackMs},
	}
}

func TestEstimateForMatchNowWhenQueued(t *testing.T) {
	s := &state{queues: map[int64][]QueueEntry{300_000: {{PlayerID: "p1"}}}, rooms: map[string]Entry{}, anchors: map[int64]anchor{}}
	est := estimateFor(s, 300_000, time.Now())
	require.Equal(t, "match_now", est.Estimate)
	require.Equal(t, 1, est.QueueLength)
}

func TestEstimateForNoneWithoutActiveGames(t *testing.T) {
	s := &state{queues: map[int64][]QueueEntry{}, rooms: map[string]Entry{}, anchors: map[int64]anchor{}}
	est := estimateFor(s, 300_000, time.Now())
	require.Equal(t, "none", est.Estimate)
}

func TestEstimateForAnchorsToSoonestActiveGame(t *testing.T) {
	s := &state{
		queues: map[int64][]QueueEntry{},
		anchors: map[int64]anchor{},
		rooms: map[string]Entry{
			"slow": playingEntry("slow", 300_000, 100_000, 200_000),
			"fast": playingEntry("fast", 300_000, 5_000, 200_000),
		},
	}
	t0 := time.Now()
	est := estimateFor(s, 300_000, t0)
	require.Equal(t, "5000ms", est.Estimate)
	require.Equal(t, int64(5_000), est.EstimateMs)

	anchored, ok := s.anchors[300_000]
	require.True(t, ok)
	require.Equal(t, "fast", anchored.roomID)
}

func TestEstimateForKeepsExistingAnchorWhileStillActive(t *testing.T) {
	t0 := time.Now()
	s := &state{
		queues: map[int64][]QueueEntry{},
		rooms: map[string]Entry{
			"slow": playingEntry("slow", 300_000, 100_000, 200_000),
			"fast": playingEntry("fast", 300_000, 5_000, 200_000),
		},
		anchors: map[int64]anchor{300_000: {roomID: "slow", startedAt: t0.Add(-time.Second), durationMs: 100_000}},
	}
	est := estimateFor(s, 300_000, t0)
	require.Equal(t, "slow", s.anchors[300_000].roomID)
	require.Greater(t, est.EstimateMs, int64(0))
}

func TestEstimateForDropsAnchorOnceRoomNoLongerActive(t *testing.T) {
	t0 := time.Now()
	s := &state{
		queues: map[int64][]QueueEntry{},
		rooms: map[string]Entry{
			"fast": playingEntry("fast", 300_000, 5_000, 200_000),
		},
		anchors: map[int64]anchor{300_000: {roomID: "gone", startedAt: t0, durationMs: 1_000}},
	}
	est := estimateFor(s, 300_000, t0)
	require.Equal(t, "fast", s.anchors[300_000].roomID)
	require.Equal(t, int64(5_000), est.EstimateMs)
}
