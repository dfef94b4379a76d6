package room

import (
	"context"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/chessengine"
	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

const maxChoiceAttempts = 4

// pickerID resolves the "winner"/"loser" role to the actual playerId.
func pickerID(r *room) string {
	if r.currentPicker == "winner" {
		return r.winnerID
	}
	return r.loserID
}

// ChooseColor assigns colors, starts the chess clock, and transitions the
// room into PLAYING.
func (a *Actor) ChooseColor(ctx context.Context, playerID string, color Color) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r.phase != ColorPick {
			return nil, errs.New(errs.NotInColorPick)
		}
		if playerID != pickerID(r) {
			return nil, errs.New(errs.NotAllowedToChoose)
		}
		if color != White && color != Black {
			return nil, errs.New(errs.InvalidColor)
		}
		t := now()
		if r.choiceDeadline != nil && t.After(*r.choiceDeadline) {
			return nil, errs.New(errs.ChoiceDeadlinePassed)
		}

		var opponent string
		if playerID == r.winnerID {
			opponent = r.loserID
		} else {
			opponent = r.winnerID
		}

		r.colors = map[string]Color{
			playerID: color,
			opponent: color.Other(),
		}
		if color == Black {
			r.drawOddsSide = playerID
		} else {
			r.drawOddsSide = opponent
		}

		whiteMs, blackMs := r.mainTimeMs, r.mainTimeMs
		if color == White {
			whiteMs = r.winningBidMs
		} else {
			blackMs = r.winningBidMs
		}
		r.clocks = &Clocks{
			WhiteRemainingMs: whiteMs,
			BlackRemainingMs: blackMs,
			LastTickAt:       t,
			Turn:             White,
		}
		r.engine = chessengine.New()
		r.gameFEN = r.engine.FEN()
		r.phase = Playing
		r.updatedAt = t
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// advanceColorPickTimeout rotates or finalizes a COLOR_PICK whose deadline
// has passed. Safe to call repeatedly; it is a no-op unless COLOR_PICK and
// past deadline.
func advanceColorPickTimeout(r *room, t time.Time) {
	if r.phase != ColorPick {
		return
	}
	if r.choiceDeadline == nil || !t.After(*r.choiceDeadline) {
		return
	}
	r.choiceAttempts++
	if r.choiceAttempts >= maxChoiceAttempts {
		closeFinished(r, t, "", "draw", "color_pick_timeout_exhausted", 60*time.Second)
		return
	}
	if r.currentPicker == "winner" {
		r.currentPicker = "loser"
	} else {
		r.currentPicker = "winner"
	}
	deadline := t.Add(msToDuration(r.choiceDurationMs))
	r.choiceDeadline = &deadline
}
