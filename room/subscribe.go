package room

import (
	"context"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
)

// Subscribe attaches sink to the room's live broadcast set and returns both
// the current snapshot (to be sent as the "init" frame by the caller) and a
// subscription id to later pass to Unsubscribe.
func (a *Actor) Subscribe(ctx context.Context, sink Sink) (State, string, error) {
	v, err := a.sendReadOnly(func(ctx context.Context, r *room) (any, error) {
		if sink == nil {
			return nil, errs.New(errs.InternalError)
		}
		if r == nil {
			return nil, errs.New(errs.NotFound)
		}
		id := a.subs.add(sink)
		return subscribeResult{snapshot: r.snapshot(), id: id}, nil
	})
	if err != nil {
		return State{}, "", err
	}
	res := v.(subscribeResult)
	return res.snapshot, res.id, nil
}

type subscribeResult struct {
	snapshot State
	id       string
}

// Unsubscribe detaches a previously-added sink.
func (a *Actor) Unsubscribe(ctx context.Context, subscriptionID string) {
	_, _ = a.sendReadOnly(func(ctx context.Context, r *room) (any, error) {
		a.subs.remove(subscriptionID)
		if r == nil {
			return State{}, nil
		}
		return r.snapshot(), nil
	})
}
