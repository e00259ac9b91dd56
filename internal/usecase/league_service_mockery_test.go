package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	leaguemock "github.com/riskibarqy/pickem-league/internal/mocks/domain/league"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
)

func TestLeagueService_GetLeague_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)

	service := NewLeagueService(leagueRepo, memory.NewInviteRepository(), memory.NewPickRepository(), idgen.NewRandomGenerator(), nil)
	leagueID := "lg-mock-1"
	members := []league.Member{
		{LeagueID: leagueID, UserID: "user-avery", Role: league.RoleCommissioner},
		{LeagueID: leagueID, UserID: "user-blair", Role: league.RoleMember},
	}

	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{ID: leagueID, Name: "Mock Pool"}, true, nil).
		Once()
	leagueRepo.
		On("ListMembers", mock.Anything, leagueID).
		Return(members, nil).
		Once()

	view, err := service.GetLeague(ctx, "user-blair", leagueID)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if view.League.ID != leagueID {
		t.Fatalf("unexpected league id: %s", view.League.ID)
	}
	if len(view.Members) != len(members) {
		t.Fatalf("unexpected member count: got=%d want=%d", len(view.Members), len(members))
	}
}

func TestLeagueService_GetLeague_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)

	service := NewLeagueService(leagueRepo, memory.NewInviteRepository(), memory.NewPickRepository(), idgen.NewRandomGenerator(), nil)
	leagueID := "lg-mock-2"
	storeErr := errors.New("connection reset")

	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{}, false, storeErr).
		Once()
	leagueRepo.
		On("ListMembers", mock.Anything, leagueID).
		Return(nil, nil).
		Maybe()

	_, err := service.GetLeague(ctx, "user-avery", leagueID)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
