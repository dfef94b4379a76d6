package index

import "context"

// List returns every non-FINISHED room in the directory, for matchmaking
// and discovery (/rooms/available-count, join-next).
func (a *Actor) List() ([]Entry, error) {
	v, err := a.sendReadOnly(func(ctx context.Context, s *state) (any, error) {
		out := make([]Entry, 0, len(s.rooms))
		for _, e := range s.rooms {
			if e.Phase != finishedPhase {
				out = append(out, e)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Entry), nil
}

// Clear drops every room and queue entry. Test/admin only.
func (a *Actor) Clear() error {
	_, err := a.send(func(ctx context.Context, s *state) (any, error) {
		s.rooms = map[string]Entry{}
		s.queues = map[int64][]QueueEntry{}
		s.anchors = map[int64]anchor{}
		return nil, nil
	})
	return err
}
