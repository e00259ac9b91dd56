package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
)

func seedStandingsPicks(t *testing.T, pickRepo *memory.PickRepository) {
	t.Helper()

	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	picks := []pick.Pick{
		// JAX covered -3.5 (27-17); KC -7 pushed (24-17).
		{LeagueID: memory.LeagueIDOfficePool, UserID: "user-blair", Phase: 1, EventID: "ev-2026-w1-jax-ten", Choice: pick.SideHome, PickType: league.PickTypeSpread, CreatedAt: now, UpdatedAt: now},
		{LeagueID: memory.LeagueIDOfficePool, UserID: "user-blair", Phase: 1, EventID: "ev-2026-w1-kc-lv", Choice: pick.SideHome, PickType: league.PickTypeSpread, CreatedAt: now, UpdatedAt: now},
		{LeagueID: memory.LeagueIDOfficePool, UserID: "user-casey", Phase: 1, EventID: "ev-2026-w1-jax-ten", Choice: pick.SideAway, PickType: league.PickTypeSpread, CreatedAt: now, UpdatedAt: now},
		{LeagueID: memory.LeagueIDOfficePool, UserID: "user-casey", Phase: 1, EventID: "ev-2026-w1-kc-lv", Choice: pick.SideAway, PickType: league.PickTypeSpread, CreatedAt: now, UpdatedAt: now},
	}
	if err := pickRepo.UpsertPicks(t.Context(), picks); err != nil {
		t.Fatalf("seed standings picks failed: %v", err)
	}
}

func TestStandingsService_GetStandings_GradesAndRanks(t *testing.T) {
	pickRepo := memory.NewPickRepository()
	svc := NewStandingsService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), pickRepo, memory.NewEventRepository(memory.SeedEvents()), nil)

	seedStandingsPicks(t, pickRepo)

	rows, err := svc.GetStandings(t.Context(), "user-avery", memory.LeagueIDOfficePool)
	if err != nil {
		t.Fatalf("get standings failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}

	byUser := make(map[string]int, len(rows))
	for i, row := range rows {
		byUser[row.UserID] = i
	}

	blair := rows[byUser["user-blair"]]
	if blair.Wins != 1 || blair.Pushes != 1 || blair.Losses != 0 || blair.Points != 1.5 || blair.Rank != 1 {
		t.Fatalf("unexpected blair row: %+v", blair)
	}

	casey := rows[byUser["user-casey"]]
	if casey.Wins != 0 || casey.Pushes != 1 || casey.Losses != 1 || casey.Points != 0.5 || casey.Rank != 2 {
		t.Fatalf("unexpected casey row: %+v", casey)
	}

	avery := rows[byUser["user-avery"]]
	if avery.Points != 0 || avery.Rank != 3 {
		t.Fatalf("unexpected avery row: %+v", avery)
	}
}

func TestStandingsService_GetStandings_SkipsUnresolvedEvents(t *testing.T) {
	pickRepo := memory.NewPickRepository()
	svc := NewStandingsService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), pickRepo, memory.NewEventRepository(memory.SeedEvents()), nil)

	now := time.Date(2026, 9, 19, 12, 0, 0, 0, time.UTC)
	err := pickRepo.UpsertPicks(t.Context(), []pick.Pick{
		{LeagueID: memory.LeagueIDOfficePool, UserID: "user-blair", Phase: 2, EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideHome, PickType: league.PickTypeSpread, CreatedAt: now, UpdatedAt: now},
	})
	if err != nil {
		t.Fatalf("seed pending pick failed: %v", err)
	}

	rows, err := svc.GetStandings(t.Context(), "user-blair", memory.LeagueIDOfficePool)
	if err != nil {
		t.Fatalf("get standings failed: %v", err)
	}
	for _, row := range rows {
		if row.Points != 0 || row.Wins != 0 || row.Losses != 0 {
			t.Fatalf("expected no graded results yet, got %+v", row)
		}
	}
}

func TestStandingsService_GetStandings_NonMemberForbidden(t *testing.T) {
	svc := NewStandingsService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), memory.NewPickRepository(), memory.NewEventRepository(memory.SeedEvents()), nil)

	if _, err := svc.GetStandings(t.Context(), "user-outsider", memory.LeagueIDOfficePool); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetStandings(t.Context(), "user-avery", "no-such-league"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
