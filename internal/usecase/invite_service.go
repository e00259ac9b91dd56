package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

type CreateInviteInput struct {
	ActorID string
	Request invite.CreateRequest
}

type RespondToInviteInput struct {
	UserID   string
	InviteID string
	Accept   bool
}

// InviteNotifier delivers out-of-band notification for freshly created
// invites (direct invite email fan-out). Delivery is best effort and
// must not fail the create flow.
type InviteNotifier interface {
	InviteCreated(ctx context.Context, inv invite.Invite, l league.League) error
}

type InviteService struct {
	leagueRepo league.Repository
	inviteRepo invite.Repository
	notifier   InviteNotifier
	cache      *cache.Store
	idGen      idgen.Generator
	logger     *logging.Logger
	flight     resilience.SingleFlight
	now        func() time.Time
}

func NewInviteService(
	leagueRepo league.Repository,
	inviteRepo invite.Repository,
	notifier InviteNotifier,
	store *cache.Store,
	idGen idgen.Generator,
	logger *logging.Logger,
) *InviteService {
	if logger == nil {
		logger = logging.Default()
	}

	return &InviteService{
		leagueRepo: leagueRepo,
		inviteRepo: inviteRepo,
		notifier:   notifier,
		cache:      store,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func inviteCacheKey(leagueID string) string {
	return cache.Key("invites", "league", leagueID)
}

func (s *InviteService) CreateInvite(ctx context.Context, input CreateInviteInput) (invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.CreateInvite")
	defer span.End()

	input.ActorID = strings.TrimSpace(input.ActorID)
	if input.ActorID == "" {
		return invite.Invite{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	req := input.Request.Normalize()
	if err := req.Validate(); err != nil {
		return invite.Invite{}, err
	}

	view, err := s.loadLeagueView(ctx, req.LeagueID)
	if err != nil {
		return invite.Invite{}, err
	}

	if !league.CanManageMembers(input.ActorID, view.Members) {
		return invite.Invite{}, fmt.Errorf("%w: only commissioners can create invites", ErrForbidden)
	}
	if view.League.IsInSeason {
		return invite.Invite{}, fmt.Errorf("%w: league composition is frozen while in season", ErrInvalidInput)
	}
	if view.League.IsFull(view.Members) {
		return invite.Invite{}, fmt.Errorf("%w: league is already full", ErrInvalidInput)
	}
	if req.Type == invite.TypeDirect {
		if _, ok := findMember(req.InviteeID, view.Members); ok {
			return invite.Invite{}, fmt.Errorf("%w: user is already a member", ErrInvalidInput)
		}
	}

	inviteID, err := s.idGen.NewID()
	if err != nil {
		return invite.Invite{}, fmt.Errorf("generate invite id: %w", err)
	}
	token, err := s.idGen.NewToken()
	if err != nil {
		return invite.Invite{}, fmt.Errorf("generate invite token: %w", err)
	}

	now := s.now().UTC()
	inv := invite.Invite{
		ID:        inviteID,
		Token:     token,
		LeagueID:  req.LeagueID,
		InviteeID: req.InviteeID,
		Role:      req.Role,
		Type:      req.Type,
		Status:    invite.StatusPending,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiryFrom(now),
		CreatedBy: input.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return invite.Invite{}, fmt.Errorf("create invite: %w", err)
	}

	s.cache.Invalidate(ctx, inviteCacheKey(inv.LeagueID))

	if s.notifier != nil {
		if err := s.notifier.InviteCreated(ctx, inv, view.League); err != nil {
			s.logger.WarnContext(ctx, "invite notification failed", "invite_id", inv.ID, "league_id", inv.LeagueID, "error", err)
		}
	}

	return inv, nil
}

// ListInvites returns the league's invites for commissioner tooling,
// served through the TTL cache.
func (s *InviteService) ListInvites(ctx context.Context, actorID, leagueID string) ([]invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.ListInvites")
	defer span.End()

	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	view, err := s.loadLeagueView(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !league.CanManageMembers(actorID, view.Members) {
		return nil, fmt.Errorf("%w: only commissioners can list invites", ErrForbidden)
	}

	value, err := s.cache.GetOrLoad(ctx, inviteCacheKey(view.League.ID), func(ctx context.Context) (any, error) {
		invites, listErr := s.inviteRepo.ListByLeague(ctx, view.League.ID)
		if listErr != nil {
			return nil, fmt.Errorf("list invites by league: %w", listErr)
		}
		return invites, nil
	})
	if err != nil {
		return nil, err
	}

	invites, _ := value.([]invite.Invite)
	return invites, nil
}

// ListMyInvites returns the caller's pending, unexpired direct invites.
func (s *InviteService) ListMyInvites(ctx context.Context, userID string) ([]invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.ListMyInvites")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	invites, err := s.inviteRepo.ListByInvitee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invites by invitee: %w", err)
	}

	now := s.now().UTC()
	out := make([]invite.Invite, 0, len(invites))
	for _, inv := range invites {
		if inv.Respondable(now) {
			out = append(out, inv)
		}
	}

	return out, nil
}

// RespondToInvite accepts or declines a direct invite. Concurrent
// duplicate submissions for the same (user, invite) pair collapse into a
// single execution. On failure the league's invite cache is still
// invalidated: the usual cause is the invite having been resolved or
// expired server-side, and the caller needs fresh state, not a retry.
func (s *InviteService) RespondToInvite(ctx context.Context, input RespondToInviteInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.RespondToInvite")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InviteID = strings.TrimSpace(input.InviteID)
	if input.UserID == "" || input.InviteID == "" {
		return fmt.Errorf("%w: user id and invite id are required", ErrInvalidInput)
	}

	key := cache.Key("invite-respond", input.UserID, input.InviteID)
	_, err, _ := s.flight.Do(key, func() (any, error) {
		return nil, s.respondToInvite(ctx, input)
	})

	return err
}

func (s *InviteService) respondToInvite(ctx context.Context, input RespondToInviteInput) error {
	inv, exists, err := s.inviteRepo.GetByID(ctx, input.InviteID)
	if err != nil {
		return fmt.Errorf("get invite by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: invite not found", ErrNotFound)
	}

	defer s.cache.Invalidate(ctx, inviteCacheKey(inv.LeagueID))

	if inv.Type != invite.TypeDirect {
		return fmt.Errorf("%w: link invites are redeemed by token", ErrInvalidInput)
	}
	if inv.InviteeID != input.UserID {
		return fmt.Errorf("%w: this invite is addressed to another user", ErrForbidden)
	}

	now := s.now().UTC()
	if inv.IsExpired(now) {
		return fmt.Errorf("%w: invite has expired", ErrInvalidInput)
	}
	if inv.Status != invite.StatusPending {
		return fmt.Errorf("%w: invite is already resolved", ErrNotFound)
	}

	if !input.Accept {
		if err := s.inviteRepo.UpdateStatus(ctx, inv.ID, invite.StatusDeclined); err != nil {
			return fmt.Errorf("decline invite: %w", err)
		}
		return nil
	}

	view, err := s.loadLeagueView(ctx, inv.LeagueID)
	if err != nil {
		return err
	}
	if _, ok := findMember(input.UserID, view.Members); ok {
		return fmt.Errorf("%w: you are already a member of this league", ErrInvalidInput)
	}
	if view.League.IsFull(view.Members) {
		return fmt.Errorf("%w: league is already full", ErrInvalidInput)
	}

	member := league.Member{
		LeagueID:  inv.LeagueID,
		UserID:    input.UserID,
		Role:      inv.Role,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := s.leagueRepo.AddMember(ctx, member); err != nil {
		return fmt.Errorf("add member from invite: %w", err)
	}
	if err := s.inviteRepo.UpdateStatus(ctx, inv.ID, invite.StatusAccepted); err != nil {
		return fmt.Errorf("mark invite accepted: %w", err)
	}

	s.logger.InfoContext(ctx, "invite accepted", "invite_id", inv.ID, "league_id", inv.LeagueID, "user_id", input.UserID)

	return nil
}

// JoinByToken redeems a link invite. The redeemer never observes a
// pending/accepted distinction: a valid token mints membership directly.
func (s *InviteService) JoinByToken(ctx context.Context, userID, token string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.JoinByToken")
	defer span.End()

	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if token == "" {
		return league.League{}, fmt.Errorf("%w: invite token is required", ErrInvalidInput)
	}

	key := cache.Key("invite-join", userID, token)
	value, err, _ := s.flight.Do(key, func() (any, error) {
		return s.joinByToken(ctx, userID, token)
	})
	if err != nil {
		return league.League{}, err
	}

	joined, _ := value.(league.League)
	return joined, nil
}

func (s *InviteService) joinByToken(ctx context.Context, userID, token string) (league.League, error) {
	inv, exists, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		return league.League{}, fmt.Errorf("get invite by token: %w", err)
	}
	if !exists || inv.Type != invite.TypeLink {
		return league.League{}, fmt.Errorf("%w: invite token is no longer valid", ErrNotFound)
	}

	now := s.now().UTC()
	if inv.IsExpired(now) {
		return league.League{}, fmt.Errorf("%w: invite has expired", ErrInvalidInput)
	}
	if !inv.Redeemable(now) {
		return league.League{}, fmt.Errorf("%w: invite can no longer be redeemed", ErrInvalidInput)
	}

	view, err := s.loadLeagueView(ctx, inv.LeagueID)
	if err != nil {
		return league.League{}, err
	}
	if _, ok := findMember(userID, view.Members); ok {
		return league.League{}, fmt.Errorf("%w: you are already a member of this league", ErrInvalidInput)
	}
	if view.League.IsFull(view.Members) {
		return league.League{}, fmt.Errorf("%w: league is already full", ErrInvalidInput)
	}

	member := league.Member{
		LeagueID:  inv.LeagueID,
		UserID:    userID,
		Role:      inv.Role,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := s.leagueRepo.AddMember(ctx, member); err != nil {
		return league.League{}, fmt.Errorf("add member from link invite: %w", err)
	}
	if err := s.inviteRepo.IncrementUses(ctx, inv.ID); err != nil {
		return league.League{}, fmt.Errorf("record link invite use: %w", err)
	}

	s.cache.Invalidate(ctx, inviteCacheKey(inv.LeagueID))
	s.logger.InfoContext(ctx, "link invite redeemed", "invite_id", inv.ID, "league_id", inv.LeagueID, "user_id", userID)

	return view.League, nil
}

// DeactivateInvite deletes an invite outright. Commissioners may do this
// at any time, whatever the invite's state, and it cannot be undone.
func (s *InviteService) DeactivateInvite(ctx context.Context, actorID, inviteID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.DeactivateInvite")
	defer span.End()

	actorID = strings.TrimSpace(actorID)
	inviteID = strings.TrimSpace(inviteID)
	if actorID == "" || inviteID == "" {
		return fmt.Errorf("%w: actor id and invite id are required", ErrInvalidInput)
	}

	inv, exists, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return fmt.Errorf("get invite by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: invite not found", ErrNotFound)
	}

	members, err := s.leagueRepo.ListMembers(ctx, inv.LeagueID)
	if err != nil {
		return fmt.Errorf("list league members: %w", err)
	}
	if !league.CanManageMembers(actorID, members) {
		return fmt.Errorf("%w: only commissioners can deactivate invites", ErrForbidden)
	}

	if err := s.inviteRepo.Delete(ctx, inviteID); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}

	s.cache.Invalidate(ctx, inviteCacheKey(inv.LeagueID))

	return nil
}

func (s *InviteService) loadLeagueView(ctx context.Context, leagueID string) (LeagueView, error) {
	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueView{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return LeagueView{}, fmt.Errorf("%w: league not found", ErrNotFound)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return LeagueView{}, fmt.Errorf("list league members: %w", err)
	}

	return LeagueView{League: l, Members: members}, nil
}
