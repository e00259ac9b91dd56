package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
)

func newPickService(leagueRepo league.Repository, pickRepo pick.Repository) *PickService {
	svc := NewPickService(leagueRepo, pickRepo, memory.NewEventRepository(memory.SeedEvents()), nil)
	// Between phase 1 finals and phase 2 kickoffs.
	svc.now = func() time.Time { return time.Date(2026, 9, 18, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestPickService_SubmitPicks_UpsertsPhase(t *testing.T) {
	pickRepo := memory.NewPickRepository()
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), pickRepo)

	picks, err := svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices: []PickChoice{
			{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideHome},
			{EventID: "ev-2026-w2-phi-was", Choice: pick.SideAway},
		},
	})
	if err != nil {
		t.Fatalf("submit picks failed: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("unexpected pick count: %d", len(picks))
	}
	for _, p := range picks {
		if p.PickType != league.PickTypeSpread {
			t.Fatalf("expected league pick type captured, got %s", p.PickType)
		}
	}

	// Resubmitting the same event replaces the choice instead of stacking.
	_, err = svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideAway}},
	})
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}

	stored, err := pickRepo.ListByLeagueUserPhase(t.Context(), memory.LeagueIDOfficePool, "user-blair", 2)
	if err != nil {
		t.Fatalf("list picks failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 picks after replace, got %d", len(stored))
	}
	for _, p := range stored {
		if p.EventID == "ev-2026-w2-dal-nyg" && p.Choice != pick.SideAway {
			t.Fatalf("expected replaced choice, got %s", p.Choice)
		}
	}
}

func TestPickService_SubmitPicks_NonMemberForbidden(t *testing.T) {
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), memory.NewPickRepository())

	_, err := svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-outsider",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideHome}},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPickService_SubmitPicks_OffSeasonRejected(t *testing.T) {
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), memory.NewPickRepository())

	_, err := svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDNeighborhood,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideHome}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPickService_SubmitPicks_StartedEventLocked(t *testing.T) {
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), memory.NewPickRepository())

	_, err := svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    1,
		Choices:  []PickChoice{{EventID: "ev-2026-w1-jax-ten", Choice: pick.SideHome}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for locked event, got %v", err)
	}
}

func TestPickService_SubmitPicks_RejectsDuplicateAndWrongPhase(t *testing.T) {
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), memory.NewPickRepository())

	_, err := svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices: []PickChoice{
			{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideHome},
			{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideAway},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate event, got %v", err)
	}

	_, err = svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w1-kc-lv", Choice: pick.SideHome}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for wrong phase, got %v", err)
	}

	_, err = svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-unknown", Choice: pick.SideHome}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown event, got %v", err)
	}
}

func TestPickService_SubmitPicks_EnforcesPerPhaseLimit(t *testing.T) {
	leagues := memory.SeedLeagues()
	for i := range leagues {
		if leagues[i].ID == memory.LeagueIDOfficePool {
			leagues[i].Settings.PicksPerPhase = 1
		}
	}
	svc := newPickService(memory.NewLeagueRepository(leagues, memory.SeedMembers()), memory.NewPickRepository())

	_, err := svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideHome}},
	})
	if err != nil {
		t.Fatalf("first pick failed: %v", err)
	}

	_, err = svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w2-phi-was", Choice: pick.SideHome}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput over the phase limit, got %v", err)
	}

	// Replacing the existing pick stays within the limit.
	_, err = svc.SubmitPicks(t.Context(), SubmitPicksInput{
		UserID:   "user-blair",
		LeagueID: memory.LeagueIDOfficePool,
		Phase:    2,
		Choices:  []PickChoice{{EventID: "ev-2026-w2-dal-nyg", Choice: pick.SideAway}},
	})
	if err != nil {
		t.Fatalf("replacement pick failed: %v", err)
	}
}

func TestPickService_ListMyPicks_MemberOnly(t *testing.T) {
	pickRepo := memory.NewPickRepository()
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), pickRepo)

	seedMemberPicks(t, pickRepo, memory.LeagueIDOfficePool, "user-casey")

	picks, err := svc.ListMyPicks(t.Context(), "user-casey", memory.LeagueIDOfficePool, 1)
	if err != nil {
		t.Fatalf("list my picks failed: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("unexpected pick count: %d", len(picks))
	}

	if _, err := svc.ListMyPicks(t.Context(), "user-outsider", memory.LeagueIDOfficePool, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPickService_ListPhaseEvents(t *testing.T) {
	svc := newPickService(memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()), memory.NewPickRepository())

	events, err := svc.ListPhaseEvents(t.Context(), 2)
	if err != nil {
		t.Fatalf("list phase events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
	for _, e := range events {
		if e.Phase != 2 {
			t.Fatalf("unexpected phase on %s: %d", e.ID, e.Phase)
		}
	}

	if _, err := svc.ListPhaseEvents(t.Context(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
