package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Event
}

func NewEventRepository(events []pick.Event) *EventRepository {
	items := make(map[string]pick.Event, len(events))
	for _, e := range events {
		items[e.ID] = e
	}

	return &EventRepository{items: items}
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (pick.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[eventID]
	return e, ok, nil
}

func (r *EventRepository) ListByPhase(_ context.Context, phase int) ([]pick.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Event, 0)
	for _, e := range r.items {
		if e.Phase == phase {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *EventRepository) ListFinal(_ context.Context) ([]pick.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Event, 0)
	for _, e := range r.items {
		if e.Status == pick.EventStatusFinal {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// SetFinal marks an event final with a score. Dev/test helper.
func (r *EventRepository) SetFinal(eventID string, home, away int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.items[eventID]; ok {
		e.Status = pick.EventStatusFinal
		e.HomeScore = home
		e.AwayScore = away
		r.items[eventID] = e
	}
}
