package room

import (
	"context"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

const startConfirmWindow = 60 * time.Second

// msToDuration converts a millisecond count from the Room's configuration
// into a time.Duration for deadline arithmetic.
func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// StartBidding implements the two-step start handshake: the first caller
// stages a pending request with a deadline, and a *different* player
// confirming it within that deadline moves the room into BIDDING. A second
// press by the same player is rejected as already_requested rather than
// silently re-arming the deadline.
func (a *Actor) StartBidding(ctx context.Context, playerID string) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r.phase != Lobby {
			return nil, errs.New(errs.InvalidPhase)
		}
		if len(r.players) < r.maxPlayers {
			return nil, errs.New(errs.NeedMorePlayers)
		}
		t := now()

		if r.startRequestedBy == "" {
			r.startRequestedBy = playerID
			deadline := t.Add(startConfirmWindow)
			r.startConfirmDeadline = &deadline
			r.updatedAt = t
			return r.snapshot(), nil
		}

		if r.startRequestedBy == playerID {
			return nil, errs.New(errs.AlreadyRequested)
		}

		if r.startConfirmDeadline != nil && t.After(*r.startConfirmDeadline) {
			return nil, errs.New(errs.StartRequestExpired)
		}

		// second, distinct confirmation: move to BIDDING
		r.phase = Bidding
		r.startRequestedBy = ""
		r.startConfirmDeadline = nil
		r.bids = map[string]Bid{}
		deadline := t.Add(msToDuration(r.bidDurationMs))
		r.bidDeadline = &deadline
		r.updatedAt = t
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}
