package room

import (
	"context"
	"sort"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

// SubmitBid records playerId's sealed bid and, if both bids are now in,
// triggers resolution.
func (a *Actor) SubmitBid(ctx context.Context, playerID string, amountMs int64) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r.phase != Bidding {
			return nil, errs.New(errs.NotBidding)
		}
		if !isSeated(r, playerID) {
			return nil, errs.New(errs.UnknownPlayer)
		}
		if amountMs < 0 || amountMs > r.mainTimeMs {
			return nil, errs.New(errs.InvalidBidAmount)
		}
		if _, already := r.bids[playerID]; already {
			return nil, errs.New(errs.AlreadyBid)
		}
		t := now()
		if r.bidDeadline != nil && t.After(*r.bidDeadline) {
			return nil, errs.New(errs.BiddingClosed)
		}
		r.bids[playerID] = Bid{AmountMs: amountMs, SubmittedAt: t}
		r.updatedAt = t
		resolveBidding(r, t)
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

func isSeated(r *room, playerID string) bool {
	for _, p := range r.players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// resolveBidding runs the bid-resolution algorithm. It is a no-op unless
// the room is currently BIDDING and the deadline has passed or both
// players have bid. It is called both right after a bid is submitted and
// lazily from getState, so it must be safe to call repeatedly.
func resolveBidding(r *room, t time.Time) {
	if r.phase != Bidding {
		return
	}
	if len(r.players) < 2 {
		return
	}
	p1, p2 := r.players[0].ID, r.players[1].ID
	b1, ok1 := r.bids[p1]
	b2, ok2 := r.bids[p2]

	deadlinePassed := r.bidDeadline != nil && t.After(*r.bidDeadline)

	if (!ok1 || !ok2) && !deadlinePassed {
		return
	}

	if !ok1 {
		b1 = Bid{AmountMs: r.mainTimeMs, SubmittedAt: t}
		r.bids[p1] = b1
	}
	if !ok2 {
		b2 = Bid{AmountMs: r.mainTimeMs, SubmittedAt: t}
		r.bids[p2] = b2
	}

	if b1.AmountMs == b2.AmountMs {
		// tie restart
		r.bids = map[string]Bid{}
		deadline := t.Add(msToDuration(r.bidDurationMs))
		r.bidDeadline = &deadline
		return
	}

	type bidder struct {
		id  string
		bid Bid
	}
	bidders := []bidder{{p1, b1}, {p2, b2}}
	sort.Slice(bidders, func(i, j int) bool {
		if bidders[i].bid.AmountMs != bidders[j].bid.AmountMs {
			return bidders[i].bid.AmountMs < bidders[j].bid.AmountMs
		}
		if !bidders[i].bid.SubmittedAt.Equal(bidders[j].bid.SubmittedAt) {
			return bidders[i].bid.SubmittedAt.Before(bidders[j].bid.SubmittedAt)
		}
		return bidders[i].id < bidders[j].id
	})

	winner, loser := bidders[0], bidders[1]
	r.winnerID = winner.id
	r.loserID = loser.id
	r.winningBidMs = winner.bid.AmountMs
	r.losingBidMs = loser.bid.AmountMs

	r.phase = ColorPick
	r.currentPicker = "winner"
	r.choiceAttempts = 0
	deadline := t.Add(msToDuration(r.choiceDurationMs))
	r.choiceDeadline = &deadline
}
