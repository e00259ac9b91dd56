package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookNotifier posts invite lifecycle events to a configured endpoint
// (the mailer service in production). Delivery is best effort: callers
// treat failures as log-and-continue.
type WebhookNotifier struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookNotifier(cfg WebhookConfig, logger *logging.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookNotifier{
		client:         &fasthttp.Client{},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type inviteCreatedPayload struct {
	Event      string `json:"event"`
	InviteID   string `json:"inviteId"`
	Token      string `json:"token,omitempty"`
	LeagueID   string `json:"leagueId"`
	LeagueName string `json:"leagueName"`
	Type       string `json:"type"`
	InviteeID  string `json:"inviteeId,omitempty"`
	ExpiresAt  string `json:"expiresAt"`
}

func (n *WebhookNotifier) InviteCreated(ctx context.Context, inv invite.Invite, l league.League) error {
	if n.url == "" {
		return nil
	}
	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", n.breaker.State())
			return fmt.Errorf("webhook endpoint is temporarily unavailable: %w", err)
		}
	}

	payload := inviteCreatedPayload{
		Event:      "invite.created",
		InviteID:   inv.ID,
		LeagueID:   inv.LeagueID,
		LeagueName: l.Name,
		Type:       string(inv.Type),
		InviteeID:  inv.InviteeID,
		ExpiresAt:  inv.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if inv.Type == invite.TypeLink {
		payload.Token = inv.Token
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal invite webhook payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", n.url),
			attribute.String("webhook.event", payload.Event),
			attribute.String("webhook.invite_id", inv.ID),
		)
	}
	n.logger.InfoContext(ctx, "invite webhook request", "url", n.url, "invite_id", inv.ID, "preview", buildRequestPreview(n.url, payload.Event, len(body)))

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if n.token != "" {
		req.Header.Set("X-Webhook-Token", n.token)
	}
	req.SetBody(body)

	if err := n.client.DoTimeout(req, resp, n.timeout); err != nil {
		callErr := fmt.Errorf("%w: post invite webhook url=%s: %v", errWebhookTransient, n.url, err)
		n.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := strings.TrimSpace(string(resp.Body()))
		if len(raw) > 4096 {
			raw = raw[:4096]
		}
		callErr := fmt.Errorf("post invite webhook status=%d url=%s body=%s", status, n.url, raw)
		if isRetryableStatus(status) {
			callErr = crerr.Mark(callErr, errWebhookTransient)
		}
		n.recordCircuitResult(callErr)
		return callErr
	}

	n.recordCircuitResult(nil)
	return nil
}

func (n *WebhookNotifier) recordCircuitResult(err error) {
	if !n.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errWebhookTransient) {
		n.breaker.RecordFailure()
		return
	}
	n.breaker.RecordSuccess()
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError
}

func buildRequestPreview(url, event string, bodyLen int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("POST ")
	_, _ = buf.WriteString(url)
	_, _ = buf.WriteString(" event=")
	_, _ = buf.WriteString(event)
	_, _ = buf.WriteString(fmt.Sprintf(" body_bytes=%d", bodyLen))

	return buf.String()
}
