// Package leagueclient is the Go SDK for the pick'em league API.
package leagueclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	// BaseURL points at the API root, e.g. https://api.example.com.
	BaseURL string
	// Token is the bearer token attached to every request.
	Token      string
	HTTPClient *http.Client
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
	}, nil
}

func (c *Client) CreateLeague(ctx context.Context, req CreateLeagueRequest) (League, error) {
	var out League
	err := c.do(ctx, http.MethodPost, "/v1/leagues", req, &out)
	return out, err
}

func (c *Client) ListMyLeagues(ctx context.Context) ([]League, error) {
	var out []League
	err := c.do(ctx, http.MethodGet, "/v1/leagues", nil, &out)
	return out, err
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (LeagueView, error) {
	var out LeagueView
	err := c.do(ctx, http.MethodGet, "/v1/leagues/"+url.PathEscape(leagueID), nil, &out)
	return out, err
}

func (c *Client) UpdateLeagueSettings(ctx context.Context, leagueID string, req UpdateLeagueSettingsRequest) (League, error) {
	var out League
	err := c.do(ctx, http.MethodPatch, "/v1/leagues/"+url.PathEscape(leagueID), req, &out)
	return out, err
}

func (c *Client) UpdateMemberRole(ctx context.Context, leagueID, userID, role string) error {
	path := "/v1/leagues/" + url.PathEscape(leagueID) + "/members/" + url.PathEscape(userID) + "/role"
	return c.do(ctx, http.MethodPut, path, map[string]string{"role": role}, nil)
}

func (c *Client) RemoveMember(ctx context.Context, leagueID, userID string) error {
	path := "/v1/leagues/" + url.PathEscape(leagueID) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) LeaveLeague(ctx context.Context, leagueID string) error {
	return c.do(ctx, http.MethodPost, "/v1/leagues/"+url.PathEscape(leagueID)+"/leave", nil, nil)
}

func (c *Client) CreateInvite(ctx context.Context, leagueID string, req CreateInviteRequest) (Invite, error) {
	var out Invite
	err := c.do(ctx, http.MethodPost, "/v1/leagues/"+url.PathEscape(leagueID)+"/invites", req, &out)
	return out, err
}

func (c *Client) ListInvites(ctx context.Context, leagueID string) ([]Invite, error) {
	var out []Invite
	err := c.do(ctx, http.MethodGet, "/v1/leagues/"+url.PathEscape(leagueID)+"/invites", nil, &out)
	return out, err
}

func (c *Client) ListMyInvites(ctx context.Context) ([]Invite, error) {
	var out []Invite
	err := c.do(ctx, http.MethodGet, "/v1/invites/me", nil, &out)
	return out, err
}

// RespondToInvite accepts or declines a direct invite addressed to the
// authenticated user.
func (c *Client) RespondToInvite(ctx context.Context, inviteID string, accept bool) error {
	path := "/v1/invites/" + url.PathEscape(inviteID) + "/respond"
	return c.do(ctx, http.MethodPost, path, map[string]bool{"accept": accept}, nil)
}

func (c *Client) DeactivateInvite(ctx context.Context, inviteID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/invites/"+url.PathEscape(inviteID), nil, nil)
}

// JoinByToken redeems a link invite token and returns the joined league.
func (c *Client) JoinByToken(ctx context.Context, token string) (League, error) {
	var out League
	err := c.do(ctx, http.MethodPost, "/v1/invites/join", map[string]string{"token": token}, &out)
	return out, err
}

func (c *Client) SubmitPicks(ctx context.Context, leagueID string, req SubmitPicksRequest) ([]Pick, error) {
	var out []Pick
	err := c.do(ctx, http.MethodPut, "/v1/leagues/"+url.PathEscape(leagueID)+"/picks", req, &out)
	return out, err
}

func (c *Client) ListMyPicks(ctx context.Context, leagueID string, phase int) ([]Pick, error) {
	path := "/v1/leagues/" + url.PathEscape(leagueID) + "/picks/me"
	if phase > 0 {
		path += "?phase=" + strconv.Itoa(phase)
	}
	var out []Pick
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ListPhaseEvents(ctx context.Context, phase int) ([]Event, error) {
	var out []Event
	err := c.do(ctx, http.MethodGet, "/v1/phases/"+strconv.Itoa(phase)+"/events", nil, &out)
	return out, err
}

func (c *Client) GetStandings(ctx context.Context, leagueID string) ([]Standing, error) {
	var out []Standing
	err := c.do(ctx, http.MethodGet, "/v1/leagues/"+url.PathEscape(leagueID)+"/standings", nil, &out)
	return out, err
}

type responseEnvelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call league api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	// 204 and empty 2xx bodies are success, the target stays zero.
	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}

	var envelope responseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("response envelope has no data")
	}
	if err := sonic.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}

	return nil
}
