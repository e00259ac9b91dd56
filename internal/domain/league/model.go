package league

import (
	"fmt"
	"time"
)

const (
	MinSize = 2
	MaxSize = 20

	MinPicksPerPhase = 1
	MaxPicksPerPhase = 16
)

type PickType string

const (
	PickTypeSpread     PickType = "spread"
	PickTypeStraightUp PickType = "straight_up"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
)

type Role string

const (
	RoleCommissioner Role = "commissioner"
	RoleMember       Role = "member"
)

// Settings holds the pick'em configuration of a league. Size and
// PicksPerPhase are season-structural: frozen once play starts.
type Settings struct {
	PicksPerPhase int
	PickType      PickType
}

// League is a private pick'em league with a bounded member list.
type League struct {
	ID         string
	Name       string
	ImageURL   string
	Size       int
	Visibility Visibility
	Settings   Settings
	IsInSeason bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Member is a user's membership in a league, keyed by (LeagueID, UserID).
type Member struct {
	LeagueID  string
	UserID    string
	Role      Role
	JoinedAt  time.Time
	UpdatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Size < MinSize || l.Size > MaxSize {
		return fmt.Errorf("league size must be between %d and %d", MinSize, MaxSize)
	}
	if l.Visibility != VisibilityPrivate {
		return fmt.Errorf("league visibility %q is not supported", l.Visibility)
	}

	return l.Settings.Validate()
}

func (s Settings) Validate() error {
	if s.PicksPerPhase < MinPicksPerPhase || s.PicksPerPhase > MaxPicksPerPhase {
		return fmt.Errorf("picks per phase must be between %d and %d", MinPicksPerPhase, MaxPicksPerPhase)
	}
	switch s.PickType {
	case PickTypeSpread, PickTypeStraightUp:
	default:
		return fmt.Errorf("pick type %q is not supported", s.PickType)
	}

	return nil
}

func (r Role) Valid() bool {
	return r == RoleCommissioner || r == RoleMember
}

// IsFull reports whether the league has reached its member capacity.
func (l League) IsFull(members []Member) bool {
	return len(members) >= l.Size
}
