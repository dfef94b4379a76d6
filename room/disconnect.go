package room

import "time"

const disconnectSilenceThreshold = 10 * time.Second

// advanceDisconnect tracks and enforces liveness during PLAYING. The
// heuristic is preserved as-is from the source system: when updates stop
// arriving, the side *not* on the move is assumed to be the one who left,
// since the side to move is the one whose client is actively interacting
// with the room. This can misfire if the side on move is the one that went
// silent; disconnectHeuristic below is the seam for a future correction
// without touching the detection/enforcement flow itself.
func advanceDisconnect(r *room, t time.Time) {
	if r.phase != Playing {
		return
	}
	if r.disconnectedPlayerID == "" {
		if t.Sub(r.updatedAt) > disconnectSilenceThreshold {
			suspect := disconnectHeuristic(r)
			if suspect != "" {
				r.disconnectedPlayerID = suspect
				start := t
				r.disconnectStart = &start
			}
		}
		return
	}

	if r.disconnectStart != nil && t.Sub(*r.disconnectStart) > time.Duration(r.disconnectTimeoutMs)*time.Millisecond {
		winner := opponentOf(r, r.disconnectedPlayerID)
		closeFinished(r, t, winner, "disconnect_forfeit", "", rematchWindowStandard)
		r.closed = true
		r.closeReason = "disconnect_forfeit"
		closedAt := t
		r.closedAt = &closedAt
	}
}

// disconnectHeuristic identifies the waiting (non-moving) side as the
// suspected disconnected player.
func disconnectHeuristic(r *room) string {
	if r.clocks == nil {
		return ""
	}
	waitingColor := r.clocks.Turn.Other()
	for id, c := range r.colors {
		if c == waitingColor {
			return id
		}
	}
	return ""
}
