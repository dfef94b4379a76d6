package server

import (
	"context"

	"github.com/bena618/Armageddon-Chess-Backend/config"
	"github.com/bena618/Armageddon-Chess-Backend/index"
	"github.com/bena618/Armageddon-Chess-Backend/room"
	"github.com/bena618/Armageddon-Chess-Backend/store"
)

// Server holds every dependency the route handlers need: the room
// registry (one Actor per live room), the singleton IndexActor, the
// durable store backing both, and the static config that seeds new
// rooms. It replaces the api server's Server{DB, SQL, JwtSecret,
// GameStorage} with the matchmaking domain's equivalents.
type Server struct {
	Config config.Config
	Store  store.Store
	Rooms  *room.Registry
	Index  *index.Actor

	// ctx governs every room/index actor's mailbox goroutine; cancelling it
	// (at graceful shutdown) stops them all.
	ctx context.Context
}

// New constructs a Server and starts the IndexActor's mailbox goroutine.
// Room actors are started lazily by the registry as rooms are created or
// resurrected from storage.
func New(ctx context.Context, cfg config.Config, st store.Store) *Server {
	idx := index.NewActor(st, cfg.TimeControlsMs)
	go idx.Run(ctx)

	return &Server{
		Config: cfg,
		Store:  st,
		Rooms:  room.NewRegistry(st, idx),
		Index:  idx,
		ctx:    ctx,
	}
}
