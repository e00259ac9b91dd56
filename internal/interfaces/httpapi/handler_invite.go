package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req createInviteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.inviteService.CreateInvite(ctx, usecase.CreateInviteInput{
		ActorID: principal.UserID,
		Request: invite.CreateRequest{
			LeagueID:      leagueID,
			Type:          invite.Type(req.Type),
			InviteeID:     req.InviteeID,
			Role:          league.Role(req.Role),
			ExpiresInDays: req.ExpiresInDays,
			MaxUses:       req.MaxUses,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create invite failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, inviteToDTO(created))
}

func (h *Handler) ListInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInvites")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	invites, err := h.inviteService.ListInvites(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list invites failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]inviteDTO, 0, len(invites))
	for _, inv := range invites {
		items = append(items, inviteToDTO(inv))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMyInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvites")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	invites, err := h.inviteService.ListMyInvites(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my invites failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]inviteDTO, 0, len(invites))
	for _, inv := range invites {
		items = append(items, inviteToDTO(inv))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondToInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	inviteID := strings.TrimSpace(r.PathValue("inviteID"))

	var req respondToInviteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.inviteService.RespondToInvite(ctx, usecase.RespondToInviteInput{
		UserID:   principal.UserID,
		InviteID: inviteID,
		Accept:   req.Accept,
	}); err != nil {
		h.logger.WarnContext(ctx, "respond to invite failed", "user_id", principal.UserID, "invite_id", inviteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"accepted": req.Accept})
}

func (h *Handler) DeactivateInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeactivateInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	inviteID := strings.TrimSpace(r.PathValue("inviteID"))

	if err := h.inviteService.DeactivateInvite(ctx, principal.UserID, inviteID); err != nil {
		h.logger.WarnContext(ctx, "deactivate invite failed", "user_id", principal.UserID, "invite_id", inviteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) JoinByToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinByToken")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinByTokenRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.inviteService.JoinByToken(ctx, principal.UserID, req.Token)
	if err != nil {
		h.logger.WarnContext(ctx, "join by token failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(joined))
}
