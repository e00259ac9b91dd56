// Package cache wraps repositories with read-through caching. Write
// operations pass through and drop the keys they make stale.
package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func leagueKey(leagueID string) string {
	return basecache.Key("league", "id", leagueID)
}

func membersKey(leagueID string) string {
	return basecache.Key("league", "members", leagueID)
}

func userLeaguesKey(userID string) string {
	return basecache.Key("league", "by-user", userID)
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, founder league.Member) error {
	if err := r.next.Create(ctx, l, founder); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, leagueKey(l.ID), membersKey(l.ID), userLeaguesKey(founder.UserID))
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueKey(leagueID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	if err := r.next.Update(ctx, l); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, leagueKey(l.ID))
	r.cache.InvalidatePrefix(ctx, basecache.Key("league", "by-user"))
	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	if err := r.next.Delete(ctx, leagueID); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, leagueKey(leagueID), membersKey(leagueID))
	r.cache.InvalidatePrefix(ctx, basecache.Key("league", "by-user"))
	return nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, userLeaguesKey(userID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	v, err := r.cache.GetOrLoad(ctx, membersKey(leagueID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]league.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Member)
	return append([]league.Member(nil), items...), nil
}

func (r *LeagueRepository) GetMember(ctx context.Context, leagueID, userID string) (league.Member, bool, error) {
	// Membership gates permissions, so reads stay uncached.
	return r.next.GetMember(ctx, leagueID, userID)
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	if err := r.next.AddMember(ctx, m); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, membersKey(m.LeagueID), userLeaguesKey(m.UserID))
	return nil
}

func (r *LeagueRepository) UpdateMemberRole(ctx context.Context, leagueID, userID string, role league.Role) error {
	if err := r.next.UpdateMemberRole(ctx, leagueID, userID, role); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, membersKey(leagueID))
	return nil
}

func (r *LeagueRepository) RemoveMember(ctx context.Context, leagueID, userID string) error {
	if err := r.next.RemoveMember(ctx, leagueID, userID); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, membersKey(leagueID), userLeaguesKey(userID))
	return nil
}

type EventRepository struct {
	next  pick.EventRepository
	cache *basecache.Store
}

func NewEventRepository(next pick.EventRepository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (pick.Event, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("event", "id", eventID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return cachedEventByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return pick.Event{}, false, err
	}

	cached, _ := v.(cachedEventByID)
	return cached.value, cached.exists, nil
}

type cachedEventByID struct {
	value  pick.Event
	exists bool
}

func (r *EventRepository) ListByPhase(ctx context.Context, phase int) ([]pick.Event, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key("event", "phase", strconv.Itoa(phase)), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPhase(ctx, phase)
		if err != nil {
			return nil, err
		}
		return append([]pick.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pick.Event)
	return append([]pick.Event(nil), items...), nil
}

func (r *EventRepository) ListFinal(ctx context.Context) ([]pick.Event, error) {
	// Standings want fresh results as games resolve.
	return r.next.ListFinal(ctx)
}

