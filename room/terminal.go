package room

import "time"

const rematchWindowStandard = 60 * time.Second
const rematchWindowShort = 10 * time.Second

// closeFinished transitions r into FINISHED, freezes the clock if one
// exists, and opens a rematch window. winnerID is empty for a draw.
func closeFinished(r *room, t time.Time, winnerID, result, reason string, rematchWindow time.Duration) {
	r.phase = Finished
	r.winnerID = winnerID
	r.result = result
	r.reason = reason
	if r.clocks != nil {
		frozen := t
		r.clocks.FrozenAt = &frozen
	}
	deadline := t.Add(rematchWindow)
	r.rematchWindowEnds = &deadline
	r.rematchVotes = map[string]bool{}
	r.updatedAt = t
}
