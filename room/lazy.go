package room

import (
	"context"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

const lobbyExpiry = 5 * time.Minute
const startRequestGrace = 10 * time.Minute

// GetState drives every deadline-based transition before returning a
// snapshot, in the order the spec's lazy-driver list lays out: bid
// resolution, color-pick rotation, room expiry, start-request expiry,
// disconnect detection/enforcement, and rematch-window expiry.
func (a *Actor) GetState(ctx context.Context) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		t := now()

		if r.phase == Bidding {
			resolveBidding(r, t)
		}
		if r.phase == ColorPick {
			advanceColorPickTimeout(r, t)
		}

		if r.phase == Lobby && !r.closed && t.Sub(r.updatedAt) > lobbyExpiry {
			closeRoom(r, t, "room_too_old")
			if a.index != nil {
				_ = a.index.RemoveRoom(r.roomID)
			}
			return nil, errs.New(errs.RoomExpired)
		}

		if r.startConfirmDeadline != nil && t.After(*r.startConfirmDeadline) && r.phase == Lobby && !r.closed {
			closeRoom(r, t, "start_expired")
		}

		if r.phase == Playing {
			advanceDisconnect(r, t)
		}

		if r.phase == Finished && !r.closed {
			advanceRematchWindow(a, r, t)
		}

		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// advanceRematchWindow closes the room and re-enqueues yes-voters once the
// rematch window has passed without unanimous agreement.
func advanceRematchWindow(a *Actor, r *room, t time.Time) {
	if r.rematchWindowEnds == nil || !t.After(*r.rematchWindowEnds) {
		return
	}
	closeRoom(r, t, "rematch_timeout")
	reenqueueYesVoters(a, r)
}
