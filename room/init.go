package room

import (
	"context"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

const defaultDisconnectTimeoutMs = 45_000

// Init seeds the room's initial state. It is the only operation allowed to
// run against a nil room; every other operation runs against an
// already-initialized room.
func (a *Actor) Init(ctx context.Context, cfg Config) (State, error) {
	v, err := a.send(func(ctx context.Context, r *room) (any, error) {
		if r != nil {
			return nil, errs.New(errs.AlreadyInitialized)
		}
		nowTs := now()
		disconnectTimeout := cfg.DisconnectTimeoutMs
		if disconnectTimeout == 0 {
			disconnectTimeout = defaultDisconnectTimeoutMs
		}
		maxPlayers := cfg.MaxPlayers
		if maxPlayers == 0 {
			maxPlayers = 2
		}
		newRoom := &room{
			roomID:              cfg.RoomID,
			phase:                Lobby,
			private:              cfg.Private,
			maxPlayers:           maxPlayers,
			players:              append([]Player{}, cfg.SeedPlayers...),
			mainTimeMs:           cfg.MainTimeMs,
			bidDurationMs:        cfg.BidDurationMs,
			choiceDurationMs:     cfg.ChoiceDurationMs,
			bids:                 map[string]Bid{},
			colors:               map[string]Color{},
			rematchVotes:         map[string]bool{},
			disconnectTimeoutMs: disconnectTimeout,
			createdAt:            nowTs,
			updatedAt:            nowTs,
		}
		a.room = newRoom
		return a.room.snapshot(), nil
	})
	if err != nil {
		return State{}, err
	}
	return v.(State), nil
}

// roomAge is how long ago the room was created, used by Join's >5 minute
// room_too_old check.
func roomAge(r *room, t time.Time) time.Duration {
	return t.Sub(r.createdAt)
}
