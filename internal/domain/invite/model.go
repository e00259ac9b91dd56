package invite

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

const (
	MinExpiresInDays = 1
	MaxExpiresInDays = 30

	// DefaultDirectExpiresInDays applies when a direct invite is created
	// without an explicit expiry window.
	DefaultDirectExpiresInDays = 30
)

type Type string

const (
	TypeDirect Type = "direct"
	TypeLink   Type = "link"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Invite is a pending offer of league membership. Direct invites target
// one user id; link invites are redeemable by any authenticated holder of
// the token. Expiry is passive: an invite past ExpiresAt is unusable even
// before any cleanup deletes it.
type Invite struct {
	ID        string
	Token     string
	LeagueID  string
	InviteeID string
	Role      league.Role
	Type      Type
	Status    Status
	MaxUses   int
	Uses      int
	ExpiresAt time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Respondable reports whether the invite can still be accepted or
// declined: pending and not past its expiry.
func (i Invite) Respondable(now time.Time) bool {
	return i.Status == StatusPending && !i.IsExpired(now)
}

// Redeemable reports whether a link invite token can still mint a
// membership.
func (i Invite) Redeemable(now time.Time) bool {
	if i.Type != TypeLink {
		return false
	}
	if !i.Respondable(now) {
		return false
	}
	if i.MaxUses > 0 && i.Uses >= i.MaxUses {
		return false
	}

	return true
}

// FieldErrors carries validation failures keyed by field path.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid invite request"
	}

	parts := make([]string, 0, len(e))
	for _, k := range e.SortedKeys() {
		parts = append(parts, k+": "+e[k])
	}

	return strings.Join(parts, "; ")
}

// SortedKeys returns the failed field paths in stable order.
func (e FieldErrors) SortedKeys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CreateRequest is the validated shape for creating an invite.
//
// The original product shipped two conflicting link-invite rules (one
// required maxUses, one dropped it). The canonical rule here: maxUses is
// optional and 0 means unlimited, for both forms.
type CreateRequest struct {
	LeagueID      string
	Type          Type
	InviteeID     string
	Role          league.Role
	ExpiresInDays int
	MaxUses       int
}

// Normalize fills defaults prior to validation: direct invites default to
// the maximum expiry window, empty roles default to plain membership.
func (r CreateRequest) Normalize() CreateRequest {
	r.LeagueID = strings.TrimSpace(r.LeagueID)
	r.InviteeID = strings.TrimSpace(r.InviteeID)
	if r.Role == "" {
		r.Role = league.RoleMember
	}
	if r.Type == TypeDirect && r.ExpiresInDays == 0 {
		r.ExpiresInDays = DefaultDirectExpiresInDays
	}

	return r
}

func (r CreateRequest) Validate() error {
	errs := FieldErrors{}

	if r.LeagueID == "" {
		errs["leagueId"] = "league id is required"
	}

	switch r.Type {
	case TypeDirect:
		if r.InviteeID == "" {
			errs["inviteeId"] = "invitee id is required for direct invites"
		}
	case TypeLink:
		if r.InviteeID != "" {
			errs["inviteeId"] = "invitee id is not allowed for link invites"
		}
		if r.MaxUses < 0 {
			errs["maxUses"] = "max uses cannot be negative"
		}
	default:
		errs["type"] = "invite type must be direct or link"
	}

	if r.ExpiresInDays < MinExpiresInDays || r.ExpiresInDays > MaxExpiresInDays {
		errs["expiresInDays"] = "expiry window must be between 1 and 30 days"
	}

	if !r.Role.Valid() {
		errs["role"] = "role must be commissioner or member"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ExpiryFrom computes the invite expiry as whole calendar days after the
// creation instant, in UTC. AddDate keeps the wall-clock delta at exactly
// N days regardless of the local zone the clock came from.
func (r CreateRequest) ExpiryFrom(createdAt time.Time) time.Time {
	return createdAt.UTC().AddDate(0, 0, r.ExpiresInDays)
}
