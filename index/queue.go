package index

import (
	"context"
)

// AddToQueue appends playerID to the mainTimeMs bucket if not already
// present (refreshing lastHeartbeat either way), and returns a match
// directive once that bucket reaches two waiting players.
func (a *Actor) AddToQueue(playerID, name string, mainTimeMs int64) (*MatchDirective, error) {
	v, err := a.send(func(ctx context.Context, s *state) (any, error) {
		addOrRefresh(s, mainTimeMs, playerID, name)
		return matchDirectiveFor(s, mainTimeMs), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MatchDirective), nil
}

// Enqueue implements room.IndexPort: a best-effort re-seat after a
// declined or timed-out rematch. Its match directive (if any) is
// discarded, so no room is created here; CheckMatch and Heartbeat do not
// create matches either. A re-enqueued player is seated only when a later
// AddToQueue or JoinAll on the same bucket returns a directive that the
// Router acts on.
func (a *Actor) Enqueue(playerID, name string, mainTimeMs int64) error {
	_, err := a.AddToQueue(playerID, name, mainTimeMs)
	return err
}

// JoinAll inserts playerID into every configured time-control bucket at
// once, returning the first bucket (in configured order) that reaches two
// waiting players.
func (a *Actor) JoinAll(playerID, name string) (*MatchDirective, error) {
	v, err := a.send(func(ctx context.Context, s *state) (any, error) {
		for _, tc := range s.timeControls {
			addOrRefresh(s, tc, playerID, name)
		}
		for _, tc := range s.timeControls {
			if d := matchDirectiveFor(s, tc); d != nil {
				return d, nil
			}
		}
		return (*MatchDirective)(nil), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MatchDirective), nil
}

// RemoveFromAllQueues removes every id in playerIDs from every bucket,
// called by the Router once it has created a room for a match directive
// (or when a player explicitly leaves the queue).
func (a *Actor) RemoveFromAllQueues(playerIDs ...string) error {
	_, err := a.send(func(ctx context.Context, s *state) (any, error) {
		remove := func(id string) bool {
			for _, want := range playerIDs {
				if id == want {
					return true
				}
			}
			return false
		}
		for tc, bucket := range s.queues {
			out := bucket[:0]
			for _, e := range bucket {
				if !remove(e.PlayerID) {
					out = append(out, e)
				}
			}
			s.queues[tc] = out
		}
		return nil, nil
	})
	return err
}

// CheckMatch reports whether playerID has already been matched into a
// room, or is still waiting in a queue.
func (a *Actor) CheckMatch(playerID string) (CheckMatchResult, error) {
	v, err := a.sendReadOnly(func(ctx context.Context, s *state) (any, error) {
		for id, entry := range s.rooms {
			for _, p := range entry.Players {
				if p.ID == playerID {
					e := entry
					return CheckMatchResult{Matched: true, RoomID: id, Room: &e}, nil
				}
			}
		}
		inQueue := false
		for _, bucket := range s.queues {
			for _, e := range bucket {
				if e.PlayerID == playerID {
					inQueue = true
				}
			}
		}
		return CheckMatchResult{Matched: false, InQueue: inQueue}, nil
	})
	if err != nil {
		return CheckMatchResult{}, err
	}
	return v.(CheckMatchResult), nil
}

// Heartbeat refreshes lastHeartbeat for playerID in every bucket they
// currently occupy.
func (a *Actor) Heartbeat(playerID string) error {
	_, err := a.send(func(ctx context.Context, s *state) (any, error) {
		t := now()
		for tc, bucket := range s.queues {
			for i := range bucket {
				if bucket[i].PlayerID == playerID {
					bucket[i].LastHeartbeat = t
				}
			}
			s.queues[tc] = bucket
		}
		return nil, nil
	})
	return err
}

// CleanupStale drops queue entries whose lastHeartbeat is older than 5
// minutes, called periodically by the server's background sweeper.
func (a *Actor) CleanupStale() error {
	_, err := a.send(func(ctx context.Context, s *state) (any, error) {
		t := now()
		for tc, bucket := range s.queues {
			out := bucket[:0]
			for _, e := range bucket {
				if t.Sub(e.LastHeartbeat) <= staleAfter {
					out = append(out, e)
				}
			}
			s.queues[tc] = out
		}
		return nil, nil
	})
	return err
}

func addOrRefresh(s *state, mainTimeMs int64, playerID, name string) {
	t := now()
	bucket := s.queues[mainTimeMs]
	for i := range bucket {
		if bucket[i].PlayerID == playerID {
			bucket[i].LastHeartbeat = t
			s.queues[mainTimeMs] = bucket
			return
		}
	}
	s.queues[mainTimeMs] = append(bucket, QueueEntry{
		PlayerID:      playerID,
		Name:          name,
		JoinedAt:      t,
		LastHeartbeat: t,
	})
}

// matchDirectiveFor returns a directive (and does NOT mutate the queue —
// removal happens only once the Router has actually created the room)
// once the mainTimeMs bucket holds at least two waiting players, taking
// the first two in FIFO join order.
func matchDirectiveFor(s *state, mainTimeMs int64) *MatchDirective {
	bucket := s.queues[mainTimeMs]
	if len(bucket) < 2 {
		return nil
	}
	return &MatchDirective{
		ShouldCreateRoom: true,
		MainTimeMs:       mainTimeMs,
		QueuedPlayers:    [2]QueueEntry{bucket[0], bucket[1]},
	}
}

// QueueLength reports how many players are waiting in the mainTimeMs
// bucket, used by the wait-time estimator and /queue/status.
func (a *Actor) QueueLength(mainTimeMs int64) (int, error) {
	v, err := a.sendReadOnly(func(ctx context.Context, s *state) (any, error) {
		return len(s.queues[mainTimeMs]), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// QueuePosition reports playerID's 1-based FIFO position in the
// mainTimeMs bucket, or 0 if they aren't waiting there.
func (a *Actor) QueuePosition(playerID string, mainTimeMs int64) (int, error) {
	v, err := a.sendReadOnly(func(ctx context.Context, s *state) (any, error) {
		for i, e := range s.queues[mainTimeMs] {
			if e.PlayerID == playerID {
				return i + 1, nil
			}
		}
		return 0, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}
