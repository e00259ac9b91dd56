package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	leagues map[string]league.League
	members map[string][]league.Member
	order   []string
}

func NewLeagueRepository(leagues []league.League, members []league.Member) *LeagueRepository {
	r := &LeagueRepository{
		leagues: make(map[string]league.League, len(leagues)),
		members: make(map[string][]league.Member),
	}

	for _, l := range leagues {
		r.leagues[l.ID] = l
		r.order = append(r.order, l.ID)
	}
	for _, m := range members {
		r.members[m.LeagueID] = append(r.members[m.LeagueID], m)
	}

	return r
}

func (r *LeagueRepository) Create(_ context.Context, l league.League, founder league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leagues[l.ID]; exists {
		return fmt.Errorf("league %s already exists", l.ID)
	}

	r.leagues[l.ID] = l
	r.order = append(r.order, l.ID)
	r.members[l.ID] = []league.Member{founder}

	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leagues[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) Update(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leagues[l.ID]; !ok {
		return fmt.Errorf("league %s not found", l.ID)
	}
	r.leagues[l.ID] = l

	return nil
}

func (r *LeagueRepository) Delete(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.leagues, leagueID)
	delete(r.members, leagueID)
	for i, id := range r.order {
		if id == leagueID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *LeagueRepository) ListByUser(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, id := range r.order {
		for _, m := range r.members[id] {
			if m.UserID == userID {
				out = append(out, r.leagues[id])
				break
			}
		}
	}

	return out, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.members[leagueID]
	out := make([]league.Member, len(members))
	copy(out, members)

	return out, nil
}

func (r *LeagueRepository) GetMember(_ context.Context, leagueID, userID string) (league.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members[leagueID] {
		if m.UserID == userID {
			return m, true, nil
		}
	}

	return league.Member{}, false, nil
}

func (r *LeagueRepository) AddMember(_ context.Context, m league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leagues[m.LeagueID]; !ok {
		return fmt.Errorf("league %s not found", m.LeagueID)
	}
	for _, existing := range r.members[m.LeagueID] {
		if existing.UserID == m.UserID {
			return fmt.Errorf("duplicate key value violates unique constraint: league_members")
		}
	}
	r.members[m.LeagueID] = append(r.members[m.LeagueID], m)

	return nil
}

func (r *LeagueRepository) UpdateMemberRole(_ context.Context, leagueID, userID string, role league.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.members[leagueID]
	for i := range members {
		if members[i].UserID == userID {
			members[i].Role = role
			return nil
		}
	}

	return fmt.Errorf("member %s not found in league %s", userID, leagueID)
}

func (r *LeagueRepository) RemoveMember(_ context.Context, leagueID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.members[leagueID]
	for i := range members {
		if members[i].UserID == userID {
			r.members[leagueID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("member %s not found in league %s", userID, leagueID)
}
