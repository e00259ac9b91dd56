package memory

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

const (
	LeagueIDOfficePool   = "office-pool-2026"
	LeagueIDNeighborhood = "maple-street-pickem"
)

func SeedLeagues() []league.League {
	createdAt := time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC)

	return []league.League{
		{
			ID:         LeagueIDOfficePool,
			Name:       "Office Pool",
			Size:       10,
			Visibility: league.VisibilityPrivate,
			Settings:   league.Settings{PicksPerPhase: 5, PickType: league.PickTypeSpread},
			IsInSeason: true,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		},
		{
			ID:         LeagueIDNeighborhood,
			Name:       "Maple Street Pick'em",
			Size:       8,
			Visibility: league.VisibilityPrivate,
			Settings:   league.Settings{PicksPerPhase: 3, PickType: league.PickTypeStraightUp},
			IsInSeason: false,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		},
	}
}

func SeedMembers() []league.Member {
	joinedAt := time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC)

	return []league.Member{
		{LeagueID: LeagueIDOfficePool, UserID: "user-avery", Role: league.RoleCommissioner, JoinedAt: joinedAt, UpdatedAt: joinedAt},
		{LeagueID: LeagueIDOfficePool, UserID: "user-blair", Role: league.RoleMember, JoinedAt: joinedAt, UpdatedAt: joinedAt},
		{LeagueID: LeagueIDOfficePool, UserID: "user-casey", Role: league.RoleMember, JoinedAt: joinedAt, UpdatedAt: joinedAt},
		{LeagueID: LeagueIDNeighborhood, UserID: "user-blair", Role: league.RoleCommissioner, JoinedAt: joinedAt, UpdatedAt: joinedAt},
	}
}

func SeedEvents() []pick.Event {
	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)

	return []pick.Event{
		{ID: "ev-2026-w1-jax-ten", Phase: 1, HomeTeam: "JAX", AwayTeam: "TEN", Spread: -3.5, StartsAt: kickoff, Status: pick.EventStatusFinal, HomeScore: 27, AwayScore: 17},
		{ID: "ev-2026-w1-kc-lv", Phase: 1, HomeTeam: "KC", AwayTeam: "LV", Spread: -7, StartsAt: kickoff.Add(3 * time.Hour), Status: pick.EventStatusFinal, HomeScore: 24, AwayScore: 17},
		{ID: "ev-2026-w2-dal-nyg", Phase: 2, HomeTeam: "DAL", AwayTeam: "NYG", Spread: -6, StartsAt: kickoff.Add(7 * 24 * time.Hour), Status: pick.EventStatusScheduled},
		{ID: "ev-2026-w2-phi-was", Phase: 2, HomeTeam: "PHI", AwayTeam: "WAS", Spread: -4.5, StartsAt: kickoff.Add(7*24*time.Hour + 3*time.Hour), Status: pick.EventStatusScheduled},
	}
}
