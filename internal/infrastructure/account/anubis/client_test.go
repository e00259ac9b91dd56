package anubis

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func TestClientVerifyAccessToken_ParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"active":       true,
			"user_id":      "user-123",
			"email":        "avery@example.com",
			"display_name": "Avery",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{BaseURL: srv.URL, IntrospectPath: "/v1/auth/introspect"}, nil, nil)

	principal, err := client.VerifyAccessToken(t.Context(), "token-abc")
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.DisplayName != "Avery" {
		t.Fatalf("unexpected display name: %s", principal.DisplayName)
	}
}

func TestClientVerifyAccessToken_DeniedAndInactive(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)

		switch req["token"] {
		case "denied":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"active": false})
		}
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{BaseURL: srv.URL, IntrospectPath: "/v1/auth/introspect"}, nil, nil)

	if _, err := client.VerifyAccessToken(t.Context(), "denied"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for denied token, got %v", err)
	}
	if _, err := client.VerifyAccessToken(t.Context(), "inactive"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for inactive token, got %v", err)
	}
	if _, err := client.VerifyAccessToken(t.Context(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for blank token, got %v", err)
	}
}

func TestClientVerifyAccessToken_CachesVerifiedPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"active": true, "user_id": "user-123"})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{BaseURL: srv.URL, IntrospectPath: "/v1/auth/introspect"}, cache.NewStore(time.Minute), nil)

	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); err != nil {
			t.Fatalf("verify access token: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one introspection call, got %d", got)
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); err == nil {
			t.Fatal("expected introspection failure")
		}
	}

	_, err := client.VerifyAccessToken(t.Context(), "token-abc")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, path, want string
	}{
		{"https://auth.internal/", "/v1/auth/introspect", "https://auth.internal/v1/auth/introspect"},
		{"https://auth.internal", "v1/auth/introspect", "https://auth.internal/v1/auth/introspect"},
		{"https://auth.internal", "", "https://auth.internal"},
		{"https://auth.internal", "https://other.internal/introspect", "https://other.internal/introspect"},
	}
	for _, tc := range cases {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
