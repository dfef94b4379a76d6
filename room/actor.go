package room

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/store"
)

const storeKeyRoom = "room"
const actorKind = "room"

// command is one posted mailbox message: a closure over the room's private
// state plus a reply channel for the result. Every exported Actor method
// builds one of these, sends it, and blocks on the reply — the explicit
// channel handoff that replaces the source runtime's per-object method
// serialization.
type command struct {
	run    func(ctx context.Context, r *room) (any, error)
	reply  chan result
	commit bool
}

type result struct {
	value any
	err   error
}

// Actor owns one Room's mailbox goroutine, its durable persistence, and its
// live subscriber set.
type Actor struct {
	roomID  string
	mailbox chan command
	store   store.Store
	index   IndexPort

	subs *subscribers
	room *room // only ever touched inside run()
}

// NewActor constructs an actor for roomID. The caller must call Run in its
// own goroutine before sending any command.
func NewActor(roomID string, st store.Store, index IndexPort) *Actor {
	return &Actor{
		roomID:  roomID,
		mailbox: make(chan command, 32),
		store:   st,
		index:   index,
		subs:    newSubscribers(),
	}
}

// Run drains the mailbox until ctx is cancelled. Callers spawn this once
// per room, as `go actor.Run(ctx)`.
func (a *Actor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-a.mailbox:
			var value any
			var err error
			if cmd.commit {
				value, err = a.handle(ctx, cmd.run)
			} else {
				value, err = cmd.run(ctx, a.room)
			}
			cmd.reply <- result{value: value, err: err}
		}
	}
}

// handle runs one command's closure, persisting state on success and
// broadcasting the new snapshot. If the closure itself returns an error,
// nothing is persisted, broadcast, or rolled back. Closures check their
// preconditions before touching *room; the one exception is GetState's
// lobby-expiry path, which marks the room closed in memory before returning
// room_expired.
//
// A closure that does succeed mutates a.room in place before persist runs.
// If persist then fails, handle rolls a.room back to the snapshot taken
// before the closure ran, so a storage fault surfaces to the caller as an
// error without ever leaving the in-memory room ahead of what was durably
// saved.
func (a *Actor) handle(ctx context.Context, run func(context.Context, *room) (any, error)) (any, error) {
	var preSnap *State
	if a.room != nil {
		s := a.room.snapshot()
		preSnap = &s
	}
	value, err := run(ctx, a.room)
	if err != nil {
		return nil, err
	}
	if a.room != nil {
		if perr := a.persist(ctx); perr != nil {
			slog.Error("failed to persist room", "room_id", a.roomID, "error", perr)
			a.rollback(preSnap)
			return nil, perr
		}
		a.broadcast()
		a.syncIndex()
	}
	return value, nil
}

// rollback restores a.room to the state captured in preSnap before the
// failed closure ran, or to nil if the room did not exist yet.
func (a *Actor) rollback(preSnap *State) {
	if preSnap == nil {
		a.room = nil
		return
	}
	restored, err := fromState(*preSnap)
	if err != nil {
		slog.Error("failed to restore pre-commit room snapshot", "room_id", a.roomID, "error", err)
		return
	}
	a.room = restored
}

func (a *Actor) persist(ctx context.Context) error {
	snap := a.room.snapshot()
	blob, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return a.store.Put(ctx, actorKind, a.roomID, storeKeyRoom, blob)
}

func (a *Actor) broadcast() {
	a.subs.broadcast(a.roomID, Update{Type: "update", Room: a.room.snapshot()})
}

// syncIndex pushes the latest metadata to the IndexActor. Failures are
// logged and swallowed: matchmaking is a best-effort view and must never
// cause a room commit to fail.
func (a *Actor) syncIndex() {
	if a.index == nil {
		return
	}
	meta := RoomMeta{
		RoomID:     a.room.roomID,
		Phase:      a.room.phase,
		Players:    append([]Player{}, a.room.players...),
		Private:    a.room.private,
		MainTimeMs: a.room.mainTimeMs,
		UpdatedAt:  a.room.updatedAt,
		Clocks:     a.room.clocks,
	}
	if a.room.closed {
		// start_expired rooms stay visible in the directory for a grace
		// period before the IndexActor drops them, everything else is
		// removed as soon as it closes.
		if a.room.closeReason == "start_expired" && a.room.closedAt != nil &&
			time.Since(*a.room.closedAt) < startRequestGrace {
			if err := a.index.UpdateRoom(meta); err != nil {
				slog.Warn("index update failed, matchmaking view may be stale", "room_id", a.roomID, "error", err)
			}
			return
		}
		if err := a.index.RemoveRoom(a.room.roomID); err != nil {
			slog.Warn("index remove failed, matchmaking view may be stale", "room_id", a.roomID, "error", err)
		}
		return
	}
	// FINISHED rooms stay in the directory (the IndexActor's list() filters
	// them out of matchmaking results on its own) until the rematch window
	// expires and the room closes above.
	if err := a.index.UpdateRoom(meta); err != nil {
		slog.Warn("index update failed, matchmaking view may be stale", "room_id", a.roomID, "error", err)
	}
}

// send posts a command and waits for its reply. It is the single choke
// point every mutating operation funnels through: the closure's result is
// persisted, broadcast, and synced to the index on success.
func (a *Actor) send(fn func(ctx context.Context, r *room) (any, error)) (any, error) {
	reply := make(chan result, 1)
	a.mailbox <- command{run: fn, reply: reply, commit: true}
	res := <-reply
	return res.value, res.err
}

// sendReadOnly runs fn serialized on the mailbox goroutine like send, but
// skips persist/broadcast/syncIndex. Subscribe and Unsubscribe use this:
// attaching or detaching a sink is not a domain mutation and must not
// trigger a redundant persist or a spurious broadcast to every other
// subscriber.
func (a *Actor) sendReadOnly(fn func(ctx context.Context, r *room) (any, error)) (any, error) {
	reply := make(chan result, 1)
	a.mailbox <- command{run: fn, reply: reply, commit: false}
	res := <-reply
	return res.value, res.err
}

func now() time.Time {
	return time.Now().UTC()
}

// load restores the actor's in-memory room from the durable store, if a
// snapshot for roomID exists. Called once by the registry right after
// constructing an actor and before handing it out, so a process restart
// picks every room back up where it left off instead of silently
// resetting it to uninitialized.
func (a *Actor) load(ctx context.Context) error {
	blob, ok, err := a.store.Get(ctx, actorKind, a.roomID, storeKeyRoom)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var s State
	if err := json.Unmarshal(blob, &s); err != nil {
		return err
	}
	r, err := fromState(s)
	if err != nil {
		return err
	}
	a.room = r
	return nil
}
