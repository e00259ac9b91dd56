package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const standingsWorkerCount = 8

type StandingsService struct {
	leagueRepo league.Repository
	pickRepo   pick.Repository
	eventRepo  pick.EventRepository
	logger     *logging.Logger
}

func NewStandingsService(
	leagueRepo league.Repository,
	pickRepo pick.Repository,
	eventRepo pick.EventRepository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagueRepo: leagueRepo,
		pickRepo:   pickRepo,
		eventRepo:  eventRepo,
		logger:     logger,
	}
}

// GetStandings grades every member's picks against final events and
// returns the dense-ranked table. Grading fans out over a worker pool,
// one task per member.
func (s *StandingsService) GetStandings(ctx context.Context, userID, leagueID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetStandings")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return nil, fmt.Errorf("%w: user id and league id are required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league not found", ErrNotFound)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}
	if _, ok := findMember(userID, members); !ok {
		return nil, fmt.Errorf("%w: only members can view standings", ErrForbidden)
	}

	picks, err := s.pickRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list picks by league: %w", err)
	}
	finals, err := s.eventRepo.ListFinal(ctx)
	if err != nil {
		return nil, fmt.Errorf("list final events: %w", err)
	}

	eventByID := make(map[string]pick.Event, len(finals))
	for _, e := range finals {
		eventByID[e.ID] = e
	}
	picksByUser := make(map[string][]pick.Pick, len(members))
	for _, p := range picks {
		picksByUser[p.UserID] = append(picksByUser[p.UserID], p)
	}

	pool, err := ants.NewPool(standingsWorkerCount)
	if err != nil {
		return nil, fmt.Errorf("create grading worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan standing.Standing, len(members))
	var workers sync.WaitGroup
	for _, member := range members {
		member := member
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- gradeMember(leagueID, member.UserID, picksByUser[member.UserID], eventByID)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit grading task: %w", err)
		}
	}
	workers.Wait()
	close(results)

	items := make([]standing.Standing, 0, len(members))
	for row := range results {
		items = append(items, row)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })

	return standing.Rank(items), nil
}

func gradeMember(leagueID, userID string, picks []pick.Pick, eventByID map[string]pick.Event) standing.Standing {
	row := standing.Standing{LeagueID: leagueID, UserID: userID}
	for _, p := range picks {
		event, ok := eventByID[p.EventID]
		if !ok {
			continue
		}
		switch pick.Grade(p, event) {
		case pick.OutcomeWin:
			row.Wins++
			row.Points++
		case pick.OutcomeLoss:
			row.Losses++
		case pick.OutcomePush:
			row.Pushes++
			row.Points += 0.5
		}
	}
	return row
}
