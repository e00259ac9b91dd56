package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
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

	created, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		UserID:        principal.UserID,
		Name:          req.Name,
		ImageURL:      req.ImageURL,
		Size:          req.Size,
		PicksPerPhase: req.PicksPerPhase,
		PickType:      league.PickType(req.PickType),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(created))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagues, err := h.leagueService.ListMyLeagues(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	view, err := h.leagueService.GetLeague(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueViewToDTO(view))
}

func (h *Handler) UpdateLeagueSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeagueSettings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req updateLeagueSettingsRequest
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

	input := usecase.UpdateLeagueSettingsInput{
		UserID:        principal.UserID,
		LeagueID:      leagueID,
		Name:          req.Name,
		ImageURL:      req.ImageURL,
		Size:          req.Size,
		PicksPerPhase: req.PicksPerPhase,
	}
	if req.PickType != nil {
		pickType := league.PickType(*req.PickType)
		input.PickType = &pickType
	}

	updated, err := h.leagueService.UpdateSettings(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update league settings failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}

func (h *Handler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMemberRole")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	targetUserID := strings.TrimSpace(r.PathValue("userID"))

	var req updateMemberRoleRequest
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

	if err := h.leagueService.UpdateMemberRole(ctx, usecase.UpdateMemberRoleInput{
		ActorID:      principal.UserID,
		LeagueID:     leagueID,
		TargetUserID: targetUserID,
		Role:         league.Role(req.Role),
	}); err != nil {
		h.logger.WarnContext(ctx, "update member role failed", "user_id", principal.UserID, "league_id", leagueID, "target_user_id", targetUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMember")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	targetUserID := strings.TrimSpace(r.PathValue("userID"))

	if err := h.leagueService.RemoveMember(ctx, principal.UserID, leagueID, targetUserID); err != nil {
		h.logger.WarnContext(ctx, "remove member failed", "user_id", principal.UserID, "league_id", leagueID, "target_user_id", targetUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"removed": true})
}

func (h *Handler) LeaveLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	if err := h.leagueService.LeaveLeague(ctx, principal.UserID, leagueID); err != nil {
		h.logger.WarnContext(ctx, "leave league failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"left": true})
}
