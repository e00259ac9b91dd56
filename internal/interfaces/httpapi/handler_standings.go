package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	standings, err := h.standingsService.GetStandings(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
