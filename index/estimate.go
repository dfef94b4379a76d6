package index

import (
	"context"
	"fmt"
	"time"
)

// Estimates computes a wait-time estimate for every configured time
// control, for GET /queue/status.
func (a *Actor) Estimates() (map[int64]Estimate, error) {
	// Uses a.send (not sendReadOnly): estimateFor may set a fresh anchor in
	// s.anchors, which must be persisted so a restart doesn't re-anchor and
	// jitter the displayed ETA.
	v, err := a.send(func(ctx context.Context, s *state) (any, error) {
		t := now()
		out := map[int64]Estimate{}
		for _, tc := range s.timeControls {
			out[tc] = estimateFor(s, tc, t)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int64]Estimate), nil
}

// estimateFor implements the spec's wait-time algorithm: match_now if
// someone is already waiting, none if no PLAYING games of this time
// control exist, otherwise the minimum remaining clock across active
// games of that time control, anchored to a specific game so the
// displayed ETA doesn't jitter as new snapshots arrive.
func estimateFor(s *state, mainTimeMs int64, t time.Time) Estimate {
	queueLength := len(s.queues[mainTimeMs])

	active := activeGamesOf(s, mainTimeMs)
	est := Estimate{QueueLength: queueLength, ActiveGames: len(active)}

	if queueLength >= 1 {
		est.Estimate = "match_now"
		return est
	}
	if len(active) == 0 {
		est.Estimate = "none"
		return est
	}

	anchored, ok := anchorFor(s, mainTimeMs, active, t)
	if !ok {
		est.Estimate = "none"
		return est
	}
	remaining := anchored.durationMs - t.Sub(anchored.startedAt).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}
	est.Estimate = fmt.Sprintf("%dms", remaining)
	est.EstimateMs = remaining
	return est
}

// activeGamesOf lists PLAYING rooms of the given time control with two
// seated players.
func activeGamesOf(s *state, mainTimeMs int64) []Entry {
	var out []Entry
	for _, e := range s.rooms {
		if e.Phase == "PLAYING" && e.MainTimeMs == mainTimeMs && len(e.Players) == 2 {
			out = append(out, e)
		}
	}
	return out
}

// anchorFor returns the persisted anchor game for mainTimeMs if it's
// still among the active games, otherwise picks a fresh one (the game
// with the least remaining clock, since that's the one whose slot opens
// up soonest) and replaces the anchor.
func anchorFor(s *state, mainTimeMs int64, active []Entry, t time.Time) (anchor, bool) {
	if cur, ok := s.anchors[mainTimeMs]; ok {
		for _, e := range active {
			if e.RoomID == cur.roomID {
				return cur, true
			}
		}
	}

	var best *Entry
	var bestRemaining int64
	for i := range active {
		e := &active[i]
		if e.Clocks == nil {
			continue
		}
		remaining := e.Clocks.WhiteRemainingMs
		if e.Clocks.BlackRemainingMs < remaining {
			remaining = e.Clocks.BlackRemainingMs
		}
		if best == nil || remaining < bestRemaining {
			best = e
			bestRemaining = remaining
		}
	}
	if best == nil {
		return anchor{}, false
	}
	a := anchor{
		roomID:     best.RoomID,
		startedAt:  t,
		durationMs: bestRemaining,
	}
	s.anchors[mainTimeMs] = a
	return a, true
}
