package room

import (
	"context"
	"log/slog"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

// Rematch records playerId's vote. Votes are irreversible once cast.
// Unanimous yes resets the room to LOBBY; any no closes the room
// immediately, and this method itself re-enqueues any yes-voters through
// the IndexPort the actor already holds for metadata sync.
func (a *Actor) Rematch(ctx context.Context, playerID string, agree bool) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r.phase != Finished {
			return nil, errs.New(errs.NotFinished)
		}
		t := now()
		if r.rematchWindowEnds != nil && t.After(*r.rematchWindowEnds) {
			return nil, errs.New(errs.RematchWindowClosed)
		}
		if _, voted := r.rematchVotes[playerID]; voted {
			return nil, errs.New(errs.AlreadyVoted)
		}
		r.rematchVotes[playerID] = agree
		r.updatedAt = t

		if !agree {
			closeRoom(r, t, "declined_rematch")
			reenqueueYesVoters(a, r)
			return r.snapshot(), nil
		}

		if allVotedYes(r) {
			resetForRematch(r, t)
		}
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

func allVotedYes(r *room) bool {
	if len(r.rematchVotes) < len(r.players) {
		return false
	}
	for _, p := range r.players {
		if !r.rematchVotes[p.ID] {
			return false
		}
	}
	return true
}

func closeRoom(r *room, t time.Time, reason string) {
	r.closed = true
	r.closeReason = reason
	r.closedAt = &t
}

// reenqueueYesVoters asks the IndexActor (through the same IndexPort the
// actor syncs metadata through) to put back in queue anyone who voted yes
// before the room closed. Failures are logged and swallowed like every
// other IndexPort call from this actor.
func reenqueueYesVoters(a *Actor, r *room) {
	if a.index == nil {
		return
	}
	for _, p := range r.players {
		if r.rematchVotes[p.ID] {
			if err := a.index.Enqueue(p.ID, p.Name, r.mainTimeMs); err != nil {
				// best-effort matchmaking re-seat; swallow per index-failure policy
				slog.Warn("rematch re-enqueue failed", "room_id", r.roomID, "player_id", p.ID, "error", err)
			}
		}
	}
}

// resetForRematch zeros every round-scoped field per invariant I5, keeping
// players, mainTimeMs, and the configured durations. It also clears
// closed/closeReason/closedAt: a disconnect-forfeited room still opens a
// rematch window like any other terminal transition, and unanimous-yes
// there must bring the room fully back to LOBBY, not leave it closed (and
// therefore invisible to the index) while phase says otherwise.
func resetForRematch(r *room, t time.Time) {
	r.closed = false
	r.closeReason = ""
	r.closedAt = nil
	r.phase = Lobby
	r.bids = map[string]Bid{}
	r.bidDeadline = nil
	r.startRequestedBy = ""
	r.startConfirmDeadline = nil
	r.winnerID = ""
	r.loserID = ""
	r.winningBidMs = 0
	r.losingBidMs = 0
	r.currentPicker = ""
	r.choiceAttempts = 0
	r.choiceDeadline = nil
	r.colors = map[string]Color{}
	r.drawOddsSide = ""
	r.clocks = nil
	r.moves = nil
	r.gameFEN = ""
	r.engine = nil
	r.result = ""
	r.reason = ""
	r.rematchWindowEnds = nil
	r.rematchVotes = map[string]bool{}
	r.disconnectedPlayerID = ""
	r.disconnectStart = nil
	r.updatedAt = t
}
