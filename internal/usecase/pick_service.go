package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type PickChoice struct {
	EventID string
	Choice  pick.Side
}

type SubmitPicksInput struct {
	UserID   string
	LeagueID string
	Phase    int
	Choices  []PickChoice
}

type PickService struct {
	leagueRepo league.Repository
	pickRepo   pick.Repository
	eventRepo  pick.EventRepository
	logger     *logging.Logger
	now        func() time.Time
}

func NewPickService(
	leagueRepo league.Repository,
	pickRepo pick.Repository,
	eventRepo pick.EventRepository,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickService{
		leagueRepo: leagueRepo,
		pickRepo:   pickRepo,
		eventRepo:  eventRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitPicks upserts the caller's picks for one phase. Picks lock per
// event at kickoff, and the phase total after the merge may not exceed
// the league's picks-per-phase setting.
func (s *PickService) SubmitPicks(ctx context.Context, input SubmitPicksInput) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPicks")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.UserID == "" || input.LeagueID == "" {
		return nil, fmt.Errorf("%w: user id and league id are required", ErrInvalidInput)
	}
	if input.Phase < 1 {
		return nil, fmt.Errorf("%w: phase must be positive", ErrInvalidInput)
	}
	if len(input.Choices) == 0 {
		return nil, fmt.Errorf("%w: at least one pick is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league not found", ErrNotFound)
	}
	if _, ok, err := s.leagueRepo.GetMember(ctx, input.LeagueID, input.UserID); err != nil {
		return nil, fmt.Errorf("get league member: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: only members can submit picks", ErrForbidden)
	}
	if !l.IsInSeason {
		return nil, fmt.Errorf("%w: the league season has not started", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(input.Choices))
	for _, choice := range input.Choices {
		if choice.EventID == "" {
			return nil, fmt.Errorf("%w: event id is required on every pick", ErrInvalidInput)
		}
		if choice.Choice != pick.SideHome && choice.Choice != pick.SideAway {
			return nil, fmt.Errorf("%w: pick side must be home or away", ErrInvalidInput)
		}
		if _, dup := seen[choice.EventID]; dup {
			return nil, fmt.Errorf("%w: duplicate pick for event %s", ErrInvalidInput, choice.EventID)
		}
		seen[choice.EventID] = struct{}{}
	}

	now := s.now().UTC()
	picks := make([]pick.Pick, 0, len(input.Choices))
	for _, choice := range input.Choices {
		event, ok, err := s.eventRepo.GetByID(ctx, choice.EventID)
		if err != nil {
			return nil, fmt.Errorf("get event %s: %w", choice.EventID, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: event %s not found", ErrNotFound, choice.EventID)
		}
		if event.Phase != input.Phase {
			return nil, fmt.Errorf("%w: event %s belongs to phase %d", ErrInvalidInput, event.ID, event.Phase)
		}
		if event.Started(now) {
			return nil, fmt.Errorf("%w: event %s has already started", ErrInvalidInput, event.ID)
		}

		picks = append(picks, pick.Pick{
			LeagueID:  input.LeagueID,
			UserID:    input.UserID,
			Phase:     input.Phase,
			EventID:   event.ID,
			Choice:    choice.Choice,
			PickType:  l.Settings.PickType,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	existing, err := s.pickRepo.ListByLeagueUserPhase(ctx, input.LeagueID, input.UserID, input.Phase)
	if err != nil {
		return nil, fmt.Errorf("list existing picks: %w", err)
	}
	merged := len(seen)
	for _, p := range existing {
		if _, replaced := seen[p.EventID]; !replaced {
			merged++
		}
	}
	if merged > l.Settings.PicksPerPhase {
		return nil, fmt.Errorf("%w: at most %d picks per phase", ErrInvalidInput, l.Settings.PicksPerPhase)
	}

	if err := s.pickRepo.UpsertPicks(ctx, picks); err != nil {
		return nil, fmt.Errorf("upsert picks: %w", err)
	}

	return picks, nil
}

func (s *PickService) ListMyPicks(ctx context.Context, userID, leagueID string, phase int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListMyPicks")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return nil, fmt.Errorf("%w: user id and league id are required", ErrInvalidInput)
	}
	if phase < 1 {
		return nil, fmt.Errorf("%w: phase must be positive", ErrInvalidInput)
	}

	if _, ok, err := s.leagueRepo.GetMember(ctx, leagueID, userID); err != nil {
		return nil, fmt.Errorf("get league member: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: only members can view picks", ErrForbidden)
	}

	picks, err := s.pickRepo.ListByLeagueUserPhase(ctx, leagueID, userID, phase)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	return picks, nil
}

func (s *PickService) ListPhaseEvents(ctx context.Context, phase int) ([]pick.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListPhaseEvents")
	defer span.End()

	if phase < 1 {
		return nil, fmt.Errorf("%w: phase must be positive", ErrInvalidInput)
	}

	events, err := s.eventRepo.ListByPhase(ctx, phase)
	if err != nil {
		return nil, fmt.Errorf("list events by phase: %w", err)
	}

	return events, nil
}
