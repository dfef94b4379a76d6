package room

import (
	"context"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

const roomMaxAge = 5 * time.Minute

// Join seats playerId in the lobby. A repeated join by the same playerId is
// idempotent and simply returns the current state (round-trip property R1).
func (a *Actor) Join(ctx context.Context, playerID, name string) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if playerID == "" {
			return nil, errs.New(errs.PlayerIDRequired)
		}
		if r.closed {
			return nil, errs.New(errs.RoomClosed)
		}
		if r.phase != Lobby {
			return nil, errs.New(errs.NotInLobby)
		}
		t := now()
		if roomAge(r, t) > roomMaxAge {
			return nil, errs.New(errs.RoomTooOld)
		}
		for _, p := range r.players {
			if p.ID == playerID {
				// idempotent dupe join
				return r.snapshot(), nil
			}
		}
		if len(r.players) >= r.maxPlayers {
			return nil, errs.New(errs.RoomFull)
		}
		r.players = append(r.players, Player{ID: playerID, Name: name, JoinedAt: t})
		r.updatedAt = t
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// Leave always succeeds; it just removes playerId from the seated players
// if present.
func (a *Actor) Leave(ctx context.Context, playerID string) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		out := r.players[:0]
		for _, p := range r.players {
			if p.ID != playerID {
				out = append(out, p)
			}
		}
		r.players = out
		r.updatedAt = now()
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// Heartbeat refreshes UpdatedAt without otherwise touching the room. It is
// what keeps the >10s "went quiet" disconnect heuristic from firing for a
// player who is still actively polling.
func (a *Actor) Heartbeat(ctx context.Context, playerID string) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		r.updatedAt = now()
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}
