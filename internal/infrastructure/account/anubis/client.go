package anubis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// errAnubisTransient marks failures that should count against the circuit
// breaker: network errors and 5xx responses. Denied tokens are normal
// operation, not dependency failure.
var errAnubisTransient = errors.New("anubis transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies access tokens against the anubis introspection
// endpoint. Verified principals are cached briefly, keyed by a hash of
// the token so raw tokens never sit in the cache.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, principals *cache.Store, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		breaker:       breaker,
		principals:    principals,
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := cache.Key("anubis", "principal", hashToken(token))
	if c.principals != nil {
		if value, ok := c.principals.Get(ctx, cacheKey); ok {
			if principal, ok := value.(user.Principal); ok {
				return principal, nil
			}
		}
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, fmt.Errorf("anubis introspection unavailable: %w", err)
		}
	}

	principal, err := c.introspect(ctx, token)
	if c.breaker != nil {
		if isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return user.Principal{}, err
	}

	if c.principals != nil {
		c.principals.Set(ctx, cacheKey, principal)
	}

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	payload := introspectRequest{Token: token}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, errors.Mark(fmt.Errorf("request introspection to anubis: %w", err), errAnubisTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, errors.Mark(fmt.Errorf("read introspect response: %w", err), errAnubisTransient)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		err := fmt.Errorf("anubis introspection failed with status %d", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			err = errors.Mark(err, errAnubisTransient)
		}
		return user.Principal{}, err
	}

	var decoded introspectResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID:      decoded.UserID,
		Email:       decoded.Email,
		DisplayName: decoded.DisplayName,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
