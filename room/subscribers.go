package room

import (
	"log/slog"

	"github.com/google/uuid"
)

// Update is one frame pushed to a live subscriber: the full state after a
// commit, or after the initial subscribe.
type Update struct {
	Type string `json:"type"` // "init" or "update"
	Room State  `json:"room"`
}

// Sink is a write-only destination for room updates, implemented by the
// websocket connection wrapper in the server package. A Sink that returns
// an error is dropped from the subscriber set, the same "dead socket
// removed from the set" policy the teacher's SSE handler got for free from
// its for-select loop breaking out on a write error.
type Sink interface {
	Send(Update) error
}

type subscriber struct {
	id   string
	sink Sink
}

// subscribers is the set of live sinks attached to one room actor.
type subscribers struct {
	byID map[string]subscriber
}

func newSubscribers() *subscribers {
	return &subscribers{byID: map[string]subscriber{}}
}

// add registers a new sink and returns an id that can later be passed to
// remove (e.g. when the HTTP handler's connection loop exits).
func (s *subscribers) add(sink Sink) string {
	id := uuid.NewString()
	s.byID[id] = subscriber{id: id, sink: sink}
	return id
}

func (s *subscribers) remove(id string) {
	delete(s.byID, id)
}

// broadcast pushes upd to every live sink, dropping any sink whose Send
// errors.
func (s *subscribers) broadcast(roomID string, upd Update) {
	for id, sub := range s.byID {
		if err := sub.sink.Send(upd); err != nil {
			slog.Warn("dropping dead room subscriber", "room_id", roomID, "subscriber_id", id, "error", err)
			delete(s.byID, id)
		}
	}
}
