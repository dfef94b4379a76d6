package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/room"
	"github.com/bena618/Armageddon-Chess-Backend/store"
)

const actorKind = "index"
const storeKeyRooms = "rooms"
const storeKeyQueues = "queues"

// Update is broadcast to every queue-status subscriber whenever a queue
// changes membership.
type Update struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink is anything that can receive a queue Update, implemented by the
// websocket writer in the server package.
type Sink interface {
	Send(Update) error
}

type command struct {
	run    func(ctx context.Context, a *state) (any, error)
	reply  chan result
	commit bool
}

type result struct {
	value any
	err   error
}

// state is the actor's private mutable data, touched only inside the
// mailbox goroutine.
type state struct {
	rooms        map[string]Entry
	queues       map[int64][]QueueEntry
	timeControls []int64
	anchors      map[int64]anchor
}

type anchor struct {
	roomID     string
	startedAt  time.Time
	durationMs int64
}

// Actor owns the index's single mailbox goroutine, persistence, and
// subscriber set.
type Actor struct {
	mailbox chan command
	store   store.Store
	subs    *subscribers

	data *state
}

// NewActor constructs an index actor for the given supported time
// controls. Run must be started before sending any command.
func NewActor(st store.Store, timeControls []int64) *Actor {
	return &Actor{
		mailbox: make(chan command, 64),
		store:   st,
		subs:    newSubscribers(),
		data: &state{
			rooms:        map[string]Entry{},
			queues:       map[int64][]QueueEntry{},
			timeControls: append([]int64{}, timeControls...),
			anchors:      map[int64]anchor{},
		},
	}
}

// Run drains the mailbox until ctx is cancelled.
func (a *Actor) Run(ctx context.Context) {
	a.load(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-a.mailbox:
			value, err := cmd.run(ctx, a.data)
			if err == nil && cmd.commit {
				if perr := a.persist(ctx); perr != nil {
					slog.Error("failed to persist index", "error", perr)
					value, err = nil, perr
				} else {
					a.subs.broadcast(Update{Type: "queue_update", Timestamp: now()})
				}
			}
			cmd.reply <- result{value: value, err: err}
		}
	}
}

func (a *Actor) send(fn func(ctx context.Context, s *state) (any, error)) (any, error) {
	reply := make(chan result, 1)
	a.mailbox <- command{run: fn, reply: reply, commit: true}
	res := <-reply
	return res.value, res.err
}

// sendReadOnly runs fn serialized on the mailbox goroutine without
// persisting afterward — used by read-only queries (List, CheckMatch,
// QueueLength, QueuePosition, Subscribe/Unsubscribe) that don't change
// directory or queue state.
func (a *Actor) sendReadOnly(fn func(ctx context.Context, s *state) (any, error)) (any, error) {
	reply := make(chan result, 1)
	a.mailbox <- command{run: fn, reply: reply, commit: false}
	res := <-reply
	return res.value, res.err
}

// persistedRooms and persistedQueues are the JSON-serializable snapshots
// written under the "rooms"/"queues" keys, matching the layout the spec's persisted-layout
// section names explicitly (separate keys rather than one blob, so a
// directory read doesn't need to also deserialize every queue).
type persistedRooms struct {
	Rooms map[string]Entry `json:"rooms"`
}

type persistedQueues struct {
	Queues map[int64][]QueueEntry `json:"queues"`
}

// persistedAnchor is the JSON form of one anchor, stored under its own
// "estimate_anchor_<timeControl>" key as the spec's persisted-layout
// section names it, rather than folded into the rooms/queues blobs.
type persistedAnchor struct {
	RoomID     string    `json:"roomId"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
}

func anchorKey(mainTimeMs int64) string {
	return fmt.Sprintf("estimate_anchor_%d", mainTimeMs)
}

func (a *Actor) persist(ctx context.Context) error {
	roomsBlob, err := json.Marshal(persistedRooms{Rooms: a.data.rooms})
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, actorKind, "index", storeKeyRooms, roomsBlob); err != nil {
		return err
	}
	queuesBlob, err := json.Marshal(persistedQueues{Queues: a.data.queues})
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, actorKind, "index", storeKeyQueues, queuesBlob); err != nil {
		return err
	}
	for tc, an := range a.data.anchors {
		blob, err := json.Marshal(persistedAnchor{RoomID: an.roomID, StartedAt: an.startedAt, DurationMs: an.durationMs})
		if err != nil {
			return err
		}
		if err := a.store.Put(ctx, actorKind, "index", anchorKey(tc), blob); err != nil {
			return err
		}
	}
	return nil
}

func (a *Actor) load(ctx context.Context) {
	if blob, ok, err := a.store.Get(ctx, actorKind, "index", storeKeyRooms); err == nil && ok {
		var p persistedRooms
		if err := json.Unmarshal(blob, &p); err == nil {
			a.data.rooms = p.Rooms
		}
	}
	if blob, ok, err := a.store.Get(ctx, actorKind, "index", storeKeyQueues); err == nil && ok {
		var p persistedQueues
		if err := json.Unmarshal(blob, &p); err == nil {
			a.data.queues = p.Queues
		}
	}
	if a.data.rooms == nil {
		a.data.rooms = map[string]Entry{}
	}
	if a.data.queues == nil {
		a.data.queues = map[int64][]QueueEntry{}
	}
	for _, tc := range a.data.timeControls {
		blob, ok, err := a.store.Get(ctx, actorKind, "index", anchorKey(tc))
		if err != nil || !ok {
			continue
		}
		var p persistedAnchor
		if err := json.Unmarshal(blob, &p); err == nil {
			a.data.anchors[tc] = anchor{roomID: p.RoomID, startedAt: p.StartedAt, durationMs: p.DurationMs}
		}
	}
}

// UpdateRoom implements room.IndexPort.
func (a *Actor) UpdateRoom(meta room.RoomMeta) error {
	_, err := a.send(func(ctx context.Context, s *state) (any, error) {
		s.rooms[meta.RoomID] = entryFromMeta(meta)
		return nil, nil
	})
	return err
}

// RemoveRoom implements room.IndexPort.
func (a *Actor) RemoveRoom(roomID string) error {
	_, err := a.send(func(ctx context.Context, s *state) (any, error) {
		delete(s.rooms, roomID)
		return nil, nil
	})
	return err
}

func now() time.Time {
	return time.Now().UTC()
}
