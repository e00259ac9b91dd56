package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type CreateLeagueInput struct {
	UserID        string
	Name          string
	ImageURL      string
	Size          int
	PicksPerPhase int
	PickType      league.PickType
}

type UpdateLeagueSettingsInput struct {
	UserID   string
	LeagueID string

	Name     *string
	ImageURL *string

	// Season-structural fields, frozen while the league is in season.
	Size          *int
	PicksPerPhase *int
	PickType      *league.PickType
}

type UpdateMemberRoleInput struct {
	ActorID      string
	LeagueID     string
	TargetUserID string
	Role         league.Role
}

// LeagueView bundles a league with its member list for read endpoints.
type LeagueView struct {
	League  league.League
	Members []league.Member
}

type LeagueService struct {
	leagueRepo league.Repository
	inviteRepo invite.Repository
	pickRepo   pick.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	inviteRepo invite.Repository,
	pickRepo pick.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		inviteRepo: inviteRepo,
		pickRepo:   pickRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	l := league.League{
		ID:         leagueID,
		Name:       input.Name,
		ImageURL:   strings.TrimSpace(input.ImageURL),
		Size:       input.Size,
		Visibility: league.VisibilityPrivate,
		Settings: league.Settings{
			PicksPerPhase: input.PicksPerPhase,
			PickType:      input.PickType,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	founder := league.Member{
		LeagueID:  leagueID,
		UserID:    input.UserID,
		Role:      league.RoleCommissioner,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := s.leagueRepo.Create(ctx, l, founder); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created", "league_id", leagueID, "user_id", input.UserID)

	return l, nil
}

// GetLeague returns a league with its members. Private leagues are only
// visible to their members.
func (s *LeagueService) GetLeague(ctx context.Context, userID, leagueID string) (LeagueView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	view, err := s.loadLeagueView(ctx, leagueID)
	if err != nil {
		return LeagueView{}, err
	}

	if _, ok := findMember(userID, view.Members); !ok {
		return LeagueView{}, fmt.Errorf("%w: you are not a member of this league", ErrForbidden)
	}

	return view, nil
}

func (s *LeagueService) ListMyLeagues(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMyLeagues")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	leagues, err := s.leagueRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) UpdateSettings(ctx context.Context, input UpdateLeagueSettingsInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateSettings")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.UserID == "" || input.LeagueID == "" {
		return league.League{}, fmt.Errorf("%w: user id and league id are required", ErrInvalidInput)
	}

	view, err := s.loadLeagueView(ctx, input.LeagueID)
	if err != nil {
		return league.League{}, err
	}

	if !league.CanEditSettings(input.UserID, view.Members) {
		return league.League{}, fmt.Errorf("%w: only commissioners can edit league settings", ErrForbidden)
	}

	structural := input.Size != nil || input.PicksPerPhase != nil || input.PickType != nil
	if structural && !league.CanEditAllSettings(input.UserID, view.League, view.Members) {
		return league.League{}, fmt.Errorf("%w: structural settings are frozen while the league is in season", ErrForbidden)
	}

	updated := view.League
	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
	}
	if input.ImageURL != nil {
		updated.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Size != nil {
		if *input.Size < len(view.Members) {
			return league.League{}, fmt.Errorf("%w: size cannot drop below current member count %d", ErrInvalidInput, len(view.Members))
		}
		updated.Size = *input.Size
	}
	if input.PicksPerPhase != nil {
		updated.Settings.PicksPerPhase = *input.PicksPerPhase
	}
	if input.PickType != nil {
		updated.Settings.PickType = *input.PickType
	}
	updated.UpdatedAt = s.now().UTC()

	if err := updated.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Update(ctx, updated); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return updated, nil
}

func (s *LeagueService) UpdateMemberRole(ctx context.Context, input UpdateMemberRoleInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateMemberRole")
	defer span.End()

	input.ActorID = strings.TrimSpace(input.ActorID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.TargetUserID = strings.TrimSpace(input.TargetUserID)
	if input.ActorID == "" || input.LeagueID == "" || input.TargetUserID == "" {
		return fmt.Errorf("%w: actor, league, and target user ids are required", ErrInvalidInput)
	}
	if !input.Role.Valid() {
		return fmt.Errorf("%w: role must be commissioner or member", ErrInvalidInput)
	}

	view, err := s.loadLeagueView(ctx, input.LeagueID)
	if err != nil {
		return err
	}

	if !league.CanManageMembers(input.ActorID, view.Members) {
		return fmt.Errorf("%w: only commissioners can manage members", ErrForbidden)
	}
	if _, ok := findMember(input.TargetUserID, view.Members); !ok {
		return fmt.Errorf("%w: member not found", ErrNotFound)
	}

	// A league with members must always keep a commissioner.
	if input.Role == league.RoleMember &&
		input.ActorID == input.TargetUserID &&
		league.IsSoleCommissioner(input.ActorID, view.Members) {
		return fmt.Errorf("%w: promote another commissioner before stepping down", ErrInvalidInput)
	}

	if err := s.leagueRepo.UpdateMemberRole(ctx, input.LeagueID, input.TargetUserID, input.Role); err != nil {
		return fmt.Errorf("update member role: %w", err)
	}

	return nil
}

func (s *LeagueService) RemoveMember(ctx context.Context, actorID, leagueID, targetUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RemoveMember")
	defer span.End()

	actorID = strings.TrimSpace(actorID)
	leagueID = strings.TrimSpace(leagueID)
	targetUserID = strings.TrimSpace(targetUserID)
	if actorID == "" || leagueID == "" || targetUserID == "" {
		return fmt.Errorf("%w: actor, league, and target user ids are required", ErrInvalidInput)
	}
	if actorID == targetUserID {
		return fmt.Errorf("%w: use leave league to remove yourself", ErrInvalidInput)
	}

	view, err := s.loadLeagueView(ctx, leagueID)
	if err != nil {
		return err
	}

	if !league.CanManageMembers(actorID, view.Members) {
		return fmt.Errorf("%w: only commissioners can remove members", ErrForbidden)
	}
	if _, ok := findMember(targetUserID, view.Members); !ok {
		return fmt.Errorf("%w: member not found", ErrNotFound)
	}

	if err := s.leagueRepo.RemoveMember(ctx, leagueID, targetUserID); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if err := s.pickRepo.DeleteByLeagueUser(ctx, leagueID, targetUserID); err != nil {
		return fmt.Errorf("delete picks for removed member: %w", err)
	}

	return nil
}

// LeaveLeague removes the caller's own membership. The last member out
// dissolves the league: membership is removed first, then invites, then
// the league record itself. A sole commissioner with remaining members
// must hand the role over before leaving.
func (s *LeagueService) LeaveLeague(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.LeaveLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return fmt.Errorf("%w: user id and league id are required", ErrInvalidInput)
	}

	view, err := s.loadLeagueView(ctx, leagueID)
	if err != nil {
		return err
	}

	if _, ok := findMember(userID, view.Members); !ok {
		return fmt.Errorf("%w: you are not a member of this league", ErrNotFound)
	}
	if league.IsSoleCommissioner(userID, view.Members) {
		return fmt.Errorf("%w: promote another commissioner before leaving", ErrInvalidInput)
	}

	if err := s.leagueRepo.RemoveMember(ctx, leagueID, userID); err != nil {
		return fmt.Errorf("remove own membership: %w", err)
	}
	if err := s.pickRepo.DeleteByLeagueUser(ctx, leagueID, userID); err != nil {
		return fmt.Errorf("delete picks on leave: %w", err)
	}

	if len(view.Members) == 1 {
		if err := s.inviteRepo.DeleteByLeague(ctx, leagueID); err != nil {
			return fmt.Errorf("delete invites on league dissolution: %w", err)
		}
		if err := s.leagueRepo.Delete(ctx, leagueID); err != nil {
			return fmt.Errorf("delete dissolved league: %w", err)
		}
		s.logger.InfoContext(ctx, "league dissolved by last member leaving", "league_id", leagueID, "user_id", userID)
	}

	return nil
}

// loadLeagueView fetches the league record and its member list
// concurrently.
func (s *LeagueService) loadLeagueView(ctx context.Context, leagueID string) (LeagueView, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueView{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	var (
		l          league.League
		exists     bool
		leagueErr  error
		members    []league.Member
		membersErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		l, exists, leagueErr = s.leagueRepo.GetByID(ctx, leagueID)
	})
	wg.Go(func() {
		members, membersErr = s.leagueRepo.ListMembers(ctx, leagueID)
	})
	wg.Wait()

	if leagueErr != nil {
		return LeagueView{}, fmt.Errorf("get league by id: %w", leagueErr)
	}
	if !exists {
		return LeagueView{}, fmt.Errorf("%w: league not found", ErrNotFound)
	}
	if membersErr != nil {
		return LeagueView{}, fmt.Errorf("list league members: %w", membersErr)
	}

	return LeagueView{League: l, Members: members}, nil
}

func findMember(userID string, members []league.Member) (league.Member, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m, true
		}
	}
	return league.Member{}, false
}
