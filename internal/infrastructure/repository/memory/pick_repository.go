package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

type pickKey struct {
	leagueID string
	userID   string
	eventID  string
}

type PickRepository struct {
	mu    sync.RWMutex
	items map[pickKey]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[pickKey]pick.Pick)}
}

func (r *PickRepository) UpsertPicks(_ context.Context, picks []pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range picks {
		key := pickKey{leagueID: p.LeagueID, userID: p.UserID, eventID: p.EventID}
		if existing, ok := r.items[key]; ok {
			p.CreatedAt = existing.CreatedAt
		}
		r.items[key] = p
	}

	return nil
}

func (r *PickRepository) ListByLeagueUserPhase(_ context.Context, leagueID, userID string, phase int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID && p.UserID == userID && p.Phase == phase {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PickRepository) ListByLeague(_ context.Context, leagueID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PickRepository) DeleteByLeagueUser(_ context.Context, leagueID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.leagueID == leagueID && key.userID == userID {
			delete(r.items, key)
		}
	}

	return nil
}
