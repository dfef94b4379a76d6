package room

import "time"

// RoomMeta is the lightweight projection of a room's state the IndexActor
// needs for matchmaking and wait-time display. It deliberately omits bids,
// moves, and anything else a directory listing has no use for.
type RoomMeta struct {
	RoomID     string
	Phase      Phase
	Players    []Player
	Private    bool
	MainTimeMs int64
	UpdatedAt  time.Time
	Clocks     *Clocks
}

// IndexPort is the narrow surface a RoomActor uses to talk to the
// IndexActor. Index update failures are non-fatal to the room: the caller
// is expected to log and swallow any error, never propagate it into a
// room commit.
type IndexPort interface {
	UpdateRoom(meta RoomMeta) error
	RemoveRoom(roomID string) error
	Enqueue(playerID, name string, mainTimeMs int64) error
}
