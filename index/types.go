// Package index implements the IndexActor: a singleton mailbox that keeps
// a directory of active rooms for matchmaking/discovery and per-time-control
// queues of waiting players, using the same command-mailbox pattern as the
// room package.
package index

import (
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/room"
)

// Entry is the directory's view of one room, refreshed on every RoomActor
// commit via UpdateRoom. It mirrors room.RoomMeta field-for-field (the
// type the RoomActor pushes updates as) plus JSON tags for the
// /queue/status and directory-listing responses.
type Entry struct {
	RoomID     string        `json:"roomId"`
	Phase      room.Phase    `json:"phase"`
	Players    []room.Player `json:"players"`
	Private    bool          `json:"private"`
	MainTimeMs int64         `json:"mainTimeMs"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	Clocks     *room.Clocks  `json:"clocks,omitempty"`
}

func entryFromMeta(meta room.RoomMeta) Entry {
	return Entry{
		RoomID:     meta.RoomID,
		Phase:      meta.Phase,
		Players:    append([]room.Player{}, meta.Players...),
		Private:    meta.Private,
		MainTimeMs: meta.MainTimeMs,
		UpdatedAt:  meta.UpdatedAt,
		Clocks:     meta.Clocks,
	}
}

// QueueEntry is one waiting player in a time-control bucket.
type QueueEntry struct {
	PlayerID      string    `json:"playerId"`
	Name          string    `json:"name"`
	JoinedAt      time.Time `json:"joinedAt"`
	LastHeartbeat time.Time `json:"lastHeartbeat"`
}

// MatchDirective is returned from a queue insertion once a bucket reaches
// two waiting players; the caller (the Router) is responsible for actually
// creating the room and removing both players from every queue.
type MatchDirective struct {
	ShouldCreateRoom bool
	MainTimeMs       int64
	QueuedPlayers    [2]QueueEntry
}

// CheckMatchResult answers "has playerId been matched into a room yet".
type CheckMatchResult struct {
	Matched bool
	RoomID  string
	Room    *Entry
	InQueue bool
}

// Estimate is one time control's wait-time estimate for /queue/status.
type Estimate struct {
	QueueLength int    `json:"queueLength"`
	ActiveGames int    `json:"activeGames"`
	Estimate    string `json:"estimate"`
	EstimateMs  int64  `json:"estimateMs,omitempty"`
}

const staleAfter = 5 * time.Minute

const finishedPhase = room.Finished
