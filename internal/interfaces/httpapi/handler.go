package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standing"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	inviteService    *usecase.InviteService
	pickService      *usecase.PickService
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	inviteService *usecase.InviteService,
	pickService *usecase.PickService,
	standingsService *usecase.StandingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		inviteService:    inviteService,
		pickService:      pickService,
		standingsService: standingsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type createLeagueRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	ImageURL      string `json:"image_url" validate:"omitempty,url,max=500"`
	Size          int    `json:"size" validate:"required,gte=2,lte=20"`
	PicksPerPhase int    `json:"picks_per_phase" validate:"required,gte=1,lte=16"`
	PickType      string `json:"pick_type" validate:"required,oneof=spread straight_up"`
}

type updateLeagueSettingsRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=100"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Size          *int    `json:"size,omitempty" validate:"omitempty,gte=2,lte=20"`
	PicksPerPhase *int    `json:"picks_per_phase,omitempty" validate:"omitempty,gte=1,lte=16"`
	PickType      *string `json:"pick_type,omitempty" validate:"omitempty,oneof=spread straight_up"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=commissioner member"`
}

type createInviteRequest struct {
	Type          string `json:"type" validate:"required,oneof=direct link"`
	InviteeID     string `json:"invitee_id" validate:"omitempty,max=100"`
	Role          string `json:"role" validate:"omitempty,oneof=commissioner member"`
	ExpiresInDays int    `json:"expires_in_days" validate:"omitempty,gte=1,lte=30"`
	MaxUses       int    `json:"max_uses" validate:"omitempty,gte=0"`
}

type respondToInviteRequest struct {
	Accept bool `json:"accept"`
}

type joinByTokenRequest struct {
	Token string `json:"token" validate:"required,max=200"`
}

type submitPicksRequest struct {
	Phase   int                 `json:"phase" validate:"required,gt=0"`
	Choices []pickChoiceRequest `json:"choices" validate:"required,min=1,dive"`
}

type pickChoiceRequest struct {
	EventID string `json:"event_id" validate:"required"`
	Choice  string `json:"choice" validate:"required,oneof=home away"`
}

type leagueDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url,omitempty"`
	Size          int    `json:"size"`
	Visibility    string `json:"visibility"`
	PicksPerPhase int    `json:"picks_per_phase"`
	PickType      string `json:"pick_type"`
	IsInSeason    bool   `json:"is_in_season"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type memberDTO struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type leagueViewDTO struct {
	League  leagueDTO   `json:"league"`
	Members []memberDTO `json:"members"`
}

type inviteDTO struct {
	ID        string `json:"id"`
	Token     string `json:"token,omitempty"`
	LeagueID  string `json:"league_id"`
	InviteeID string `json:"invitee_id,omitempty"`
	Role      string `json:"role"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	MaxUses   int    `json:"max_uses,omitempty"`
	Uses      int    `json:"uses"`
	ExpiresAt string `json:"expires_at"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type pickDTO struct {
	LeagueID  string `json:"league_id"`
	EventID   string `json:"event_id"`
	Phase     int    `json:"phase"`
	Choice    string `json:"choice"`
	PickType  string `json:"pick_type"`
	UpdatedAt string `json:"updated_at"`
}

type eventDTO struct {
	ID        string  `json:"id"`
	Phase     int     `json:"phase"`
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	Spread    float64 `json:"spread"`
	StartsAt  string  `json:"starts_at"`
	Status    string  `json:"status"`
	HomeScore int     `json:"home_score"`
	AwayScore int     `json:"away_score"`
}

type standingDTO struct {
	Rank   int     `json:"rank"`
	UserID string  `json:"user_id"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Pushes int     `json:"pushes"`
	Points float64 `json:"points"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:            l.ID,
		Name:          l.Name,
		ImageURL:      l.ImageURL,
		Size:          l.Size,
		Visibility:    string(l.Visibility),
		PicksPerPhase: l.Settings.PicksPerPhase,
		PickType:      string(l.Settings.PickType),
		IsInSeason:    l.IsInSeason,
		CreatedAt:     formatTime(l.CreatedAt),
		UpdatedAt:     formatTime(l.UpdatedAt),
	}
}

func memberToDTO(m league.Member) memberDTO {
	return memberDTO{
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: formatTime(m.JoinedAt),
	}
}

func leagueViewToDTO(view usecase.LeagueView) leagueViewDTO {
	members := make([]memberDTO, 0, len(view.Members))
	for _, m := range view.Members {
		members = append(members, memberToDTO(m))
	}

	return leagueViewDTO{
		League:  leagueToDTO(view.League),
		Members: members,
	}
}

func inviteToDTO(inv invite.Invite) inviteDTO {
	dto := inviteDTO{
		ID:        inv.ID,
		LeagueID:  inv.LeagueID,
		InviteeID: inv.InviteeID,
		Role:      string(inv.Role),
		Type:      string(inv.Type),
		Status:    string(inv.Status),
		MaxUses:   inv.MaxUses,
		Uses:      inv.Uses,
		ExpiresAt: formatTime(inv.ExpiresAt),
		CreatedBy: inv.CreatedBy,
		CreatedAt: formatTime(inv.CreatedAt),
	}
	// Direct invites are responded to by id, never redeemed by token.
	if inv.Type == invite.TypeLink {
		dto.Token = inv.Token
	}

	return dto
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		LeagueID:  p.LeagueID,
		EventID:   p.EventID,
		Phase:     p.Phase,
		Choice:    string(p.Choice),
		PickType:  string(p.PickType),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func eventToDTO(e pick.Event) eventDTO {
	return eventDTO{
		ID:        e.ID,
		Phase:     e.Phase,
		HomeTeam:  e.HomeTeam,
		AwayTeam:  e.AwayTeam,
		Spread:    e.Spread,
		StartsAt:  formatTime(e.StartsAt),
		Status:    string(e.Status),
		HomeScore: e.HomeScore,
		AwayScore: e.AwayScore,
	}
}

func standingToDTO(s standing.Standing) standingDTO {
	return standingDTO{
		Rank:   s.Rank,
		UserID: s.UserID,
		Wins:   s.Wins,
		Losses: s.Losses,
		Pushes: s.Pushes,
		Points: s.Points,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
