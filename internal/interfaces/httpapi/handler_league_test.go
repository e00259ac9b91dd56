package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// staticVerifier resolves any bearer token of the form "token-<userID>"
// to that user, so router tests can authenticate as seeded members.
type staticVerifier struct{}

func (staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	userID, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: userID}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers())
	inviteRepo := memory.NewInviteRepository()
	pickRepo := memory.NewPickRepository()
	eventRepo := memory.NewEventRepository(memory.SeedEvents())

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, inviteRepo, pickRepo, idgen.NewRandomGenerator(), nil),
		usecase.NewInviteService(leagueRepo, inviteRepo, nil, cache.NewStore(time.Minute), idgen.NewRandomGenerator(), nil),
		usecase.NewPickService(leagueRepo, pickRepo, eventRepo, nil),
		usecase.NewStandingsService(leagueRepo, pickRepo, eventRepo, nil),
		nil,
	)

	return NewRouter(handler, staticVerifier{}, nil, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal response body: %v", err)
		}
	}

	return rec, decoded
}

func TestRouter_GetLeague_MemberSeesView(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDOfficePool, "token-user-avery", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	members, ok := data["members"].([]any)
	if !ok || len(members) != 3 {
		t.Fatalf("expected 3 members, got %v", data["members"])
	}
}

func TestRouter_GetLeague_NonMemberForbidden(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDOfficePool, "token-user-dana", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if got, _ := errorObj["status"].(string); got != "PERMISSION_DENIED" {
		t.Fatalf("expected PERMISSION_DENIED, got %v", errorObj["status"])
	}
}

func TestRouter_GetLeague_MissingTokenUnauthorized(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDOfficePool, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_GetLeague_UnknownLeagueNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/leagues/no-such-league", "token-user-avery", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_CreateLeague_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/leagues", "token-user-avery",
		`{"name":"Sunday Pool","size":8,"picks_per_phase":5,"pick_type":"spread","bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_CreateLeague_Created(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/v1/leagues", "token-user-dana",
		`{"name":"Sunday Pool","size":8,"picks_per_phase":5,"pick_type":"spread"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["pick_type"].(string); got != "spread" {
		t.Fatalf("expected pick_type=spread, got %v", data["pick_type"])
	}
}

func TestRouter_CreateInvite_FieldErrorsRenderPerField(t *testing.T) {
	router := newTestRouter(t)

	// Direct invite without an invitee yields a field-level validation error.
	rec, body := doJSON(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDNeighborhood+"/invites", "token-user-blair",
		`{"type":"direct"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected field error items, got %v", errorObj["errors"])
	}
}
