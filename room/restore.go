package room

import "github.com/bena618/Armageddon-Chess-Backend/chessengine"

// fromState rebuilds the actor's private room state from a persisted
// snapshot. It mirrors snapshot()'s field list in reverse and reconstructs
// the chess engine from the stored FEN so a restarted process can resume a
// PLAYING room exactly where it left off.
func fromState(s State) (*room, error) {
	r := &room{
		roomID:               s.RoomID,
		phase:                s.Phase,
		private:              s.Private,
		maxPlayers:           2,
		players:              append([]Player{}, s.Players...),
		mainTimeMs:           s.MainTimeMs,
		bidDurationMs:        s.BidDurationMs,
		choiceDurationMs:     s.ChoiceDurationMs,
		bids:                 map[string]Bid{},
		bidDeadline:          s.BidDeadline,
		startRequestedBy:     s.StartRequestedBy,
		startConfirmDeadline: s.StartConfirmDeadline,
		winnerID:             s.WinnerID,
		loserID:              s.LoserID,
		winningBidMs:         s.WinningBidMs,
		losingBidMs:          s.LosingBidMs,
		currentPicker:        s.CurrentPicker,
		choiceAttempts:       s.ChoiceAttempts,
		choiceDeadline:       s.ChoiceDeadline,
		colors:               map[string]Color{},
		drawOddsSide:         s.DrawOddsSide,
		moves:                append([]Move{}, s.Moves...),
		gameFEN:              s.GameFEN,
		result:               s.Result,
		reason:               s.Reason,
		rematchWindowEnds:    s.RematchWindowEnds,
		rematchVotes:         map[string]bool{},
		disconnectedPlayerID: s.DisconnectedPlayerID,
		disconnectStart:      s.DisconnectStart,
		disconnectTimeoutMs:  s.DisconnectTimeoutMs,
		closed:               s.Closed,
		closeReason:          s.CloseReason,
		closedAt:             s.ClosedAt,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
	}
	for k, v := range s.Bids {
		r.bids[k] = v
	}
	for k, v := range s.Colors {
		r.colors[k] = v
	}
	for k, v := range s.RematchVotes {
		r.rematchVotes[k] = v
	}
	if s.Clocks != nil {
		clocksCopy := *s.Clocks
		r.clocks = &clocksCopy
	}
	if s.GameFEN != "" {
		engine, err := chessengine.NewFromFEN(s.GameFEN)
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}
