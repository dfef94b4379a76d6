package index

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type queueSubscriber struct {
	id   string
	sink Sink
}

// subscribers is the set of live queue-status sockets, the IndexActor's
// analog of the RoomActor's subscriber set.
type subscribers struct {
	byID map[string]queueSubscriber
}

func newSubscribers() *subscribers {
	return &subscribers{byID: map[string]queueSubscriber{}}
}

func (s *subscribers) add(sink Sink) string {
	id := uuid.NewString()
	s.byID[id] = queueSubscriber{id: id, sink: sink}
	return id
}

func (s *subscribers) remove(id string) {
	delete(s.byID, id)
}

func (s *subscribers) broadcast(upd Update) {
	for id, sub := range s.byID {
		if err := sub.sink.Send(upd); err != nil {
			slog.Warn("dropping dead queue subscriber", "subscriber_id", id, "error", err)
			delete(s.byID, id)
		}
	}
}

// Subscribe attaches sink to the queue-update broadcast set and returns a
// subscription id to later pass to Unsubscribe.
func (a *Actor) Subscribe(sink Sink) (string, error) {
	v, err := a.sendReadOnly(func(ctx context.Context, s *state) (any, error) {
		return a.subs.add(sink), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Unsubscribe detaches a previously-added sink.
func (a *Actor) Unsubscribe(subscriptionID string) {
	_, _ = a.sendReadOnly(func(ctx context.Context, s *state) (any, error) {
		a.subs.remove(subscriptionID)
		return nil, nil
	})
}
