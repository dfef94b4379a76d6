package room

import (
	"context"
	"regexp"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/chessengine"
	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

var moveFormat = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)

func validMoveFormat(move string) bool {
	return moveFormat.MatchString(move)
}

func colorOf(r *room, playerID string) (Color, bool) {
	c, ok := r.colors[playerID]
	return c, ok
}

func opponentOf(r *room, playerID string) string {
	for id := range r.colors {
		if id != playerID {
			return id
		}
	}
	return ""
}

// MakeMove deducts elapsed thinking time from the mover's clock, resolves
// flag-fall if it just ran out, otherwise validates and applies the move
// via the external chess engine and checks for a terminal position.
func (a *Actor) MakeMove(ctx context.Context, playerID, move string) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r.phase != Playing {
			return nil, errs.New(errs.NotPlaying)
		}
		color, ok := colorOf(r, playerID)
		if !ok {
			return nil, errs.New(errs.UnknownPlayerColor)
		}
		if color != r.clocks.Turn {
			return nil, errs.New(errs.NotYourTurn)
		}

		t := now()
		elapsed := t.Sub(r.clocks.LastTickAt)
		remaining := r.clocks.WhiteRemainingMs
		if color == Black {
			remaining = r.clocks.BlackRemainingMs
		}

		if remaining-elapsed.Milliseconds() <= 0 {
			deduct(r, color, elapsed)
			flagFall(r, t, color)
			return r.snapshot(), nil
		}

		if !validMoveFormat(move) {
			return nil, errs.New(errs.InvalidMoveFormat)
		}
		if !r.engine.AttemptMove(move) {
			return nil, errs.New(errs.IllegalMove)
		}

		deduct(r, color, elapsed)
		r.gameFEN = r.engine.FEN()
		r.moves = append(r.moves, Move{By: playerID, Move: move, At: t})
		r.clocks.LastTickAt = t
		r.clocks.Turn = color.Other()
		r.updatedAt = t

		if r.disconnectedPlayerID == playerID {
			r.disconnectedPlayerID = ""
			r.disconnectStart = nil
		}

		if done, outcome, winnerColor := r.engine.Outcome(); done {
			resolveTerminalOutcome(r, t, playerID, outcome, winnerColor)
		}

		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// deduct subtracts elapsed from the given color's remaining clock and
// returns the new remaining value.
func deduct(r *room, color Color, elapsed time.Duration) int64 {
	ms := elapsed.Milliseconds()
	if color == White {
		r.clocks.WhiteRemainingMs -= ms
		return r.clocks.WhiteRemainingMs
	}
	r.clocks.BlackRemainingMs -= ms
	return r.clocks.BlackRemainingMs
}

// flagFall resolves a clock hitting zero for flaggedColor: a time-forfeit
// win for the opponent if they retain mating material, otherwise a draw.
func flagFall(r *room, t time.Time, flaggedColor Color) {
	var opponentID string
	for id, c := range r.colors {
		if c != flaggedColor {
			opponentID = id
		}
	}
	pieces := r.engine.Pieces()
	canMate := chessengine.CanStillMate(pieces, flaggedColor.Other())

	if canMate {
		closeFinished(r, t, opponentID, "time_forfeit", "", rematchWindowStandard)
		return
	}
	closeFinished(r, t, "", "draw", "timeout_but_opponent_cannot_mate", rematchWindowShort)
}

// TimeForfeit lets either seated player claim that the side to move has run
// out the clock, without submitting a move of their own. This mirrors the
// time-forfeit route the transport exposes separately from move submission
// (a player watching an idle opponent's clock hit zero has no move of
// their own to send).
func (a *Actor) TimeForfeit(ctx context.Context, claimantID string) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r.phase != Playing {
			return nil, errs.New(errs.NotPlaying)
		}
		if !isSeated(r, claimantID) {
			return nil, errs.New(errs.UnknownPlayer)
		}
		t := now()
		turn := r.clocks.Turn
		elapsed := t.Sub(r.clocks.LastTickAt)
		var remaining int64
		if turn == White {
			remaining = r.clocks.WhiteRemainingMs - elapsed.Milliseconds()
		} else {
			remaining = r.clocks.BlackRemainingMs - elapsed.Milliseconds()
		}
		if remaining > 0 {
			return nil, errs.New(errs.ClockNotExpired)
		}
		deduct(r, turn, elapsed)
		flagFall(r, t, turn)
		return r.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// resolveTerminalOutcome maps an engine-reported terminal outcome onto the
// room's FINISHED fields.
func resolveTerminalOutcome(r *room, t time.Time, mover string, outcome chessengine.Outcome, winnerColor Color) {
	switch outcome {
	case chessengine.OutcomeCheckmate:
		closeFinished(r, t, mover, "checkmate", "", rematchWindowStandard)
	case chessengine.OutcomeStalemate:
		closeFinished(r, t, "", "draw", "stalemate", rematchWindowStandard)
	case chessengine.OutcomeInsufficientMaterial:
		closeFinished(r, t, "", "draw", "insufficient_material", rematchWindowStandard)
	case chessengine.OutcomeThreefoldRepetition:
		closeFinished(r, t, "", "draw", "threefold_repetition", rematchWindowStandard)
	case chessengine.OutcomeFiftyMoveRule:
		closeFinished(r, t, "", "draw", "fifty_move_rule", rematchWindowStandard)
	default:
		closeFinished(r, t, "", "draw", "draw", rematchWindowStandard)
	}
}
