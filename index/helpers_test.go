package index

import (
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/room"
)

func testMeta(roomID, playerID string) room.RoomMeta {
	return room.RoomMeta{
		RoomID:     roomID,
		Phase:      room.Lobby,
		Players:    []room.Player{{ID: playerID}},
		MainTimeMs: 300_000,
		UpdatedAt:  time.Now().UTC(),
	}
}
