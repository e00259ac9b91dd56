package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req submitPicksRequest
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

	choices := make([]usecase.PickChoice, 0, len(req.Choices))
	for _, choice := range req.Choices {
		choices = append(choices, usecase.PickChoice{
			EventID: choice.EventID,
			Choice:  pick.Side(choice.Choice),
		})
	}

	picks, err := h.pickService.SubmitPicks(ctx, usecase.SubmitPicksInput{
		UserID:   principal.UserID,
		LeagueID: leagueID,
		Phase:    req.Phase,
		Choices:  choices,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user_id", principal.UserID, "league_id", leagueID, "phase", req.Phase, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	phase := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("phase")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: phase must be an integer", usecase.ErrInvalidInput))
			return
		}
		phase = parsed
	}

	picks, err := h.pickService.ListMyPicks(ctx, principal.UserID, leagueID, phase)
	if err != nil {
		h.logger.WarnContext(ctx, "list my picks failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPhaseEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPhaseEvents")
	defer span.End()

	phase, err := strconv.Atoi(strings.TrimSpace(r.PathValue("phase")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: phase must be an integer", usecase.ErrInvalidInput))
		return
	}

	events, err := h.pickService.ListPhaseEvents(ctx, phase)
	if err != nil {
		h.logger.WarnContext(ctx, "list phase events failed", "phase", phase, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
