package pick

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusFinal     EventStatus = "final"
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Event is a single game within a phase. Spread is quoted from the home
// side: -3.5 means home favored by 3.5.
type Event struct {
	ID        string
	Phase     int
	HomeTeam  string
	AwayTeam  string
	Spread    float64
	StartsAt  time.Time
	Status    EventStatus
	HomeScore int
	AwayScore int
}

// Pick is one member's call on one event. PickType is captured at
// submission time so regrading stays stable if league settings change
// between seasons.
type Pick struct {
	LeagueID  string
	UserID    string
	Phase     int
	EventID   string
	Choice    Side
	PickType  league.PickType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Started reports whether picks against the event are locked.
func (e Event) Started(now time.Time) bool {
	return !now.Before(e.StartsAt)
}

type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomePush    Outcome = "push"
	OutcomePending Outcome = "pending"
)

// Grade resolves a pick against a final event. Straight-up ties and
// exact spread covers are pushes.
func Grade(p Pick, e Event) Outcome {
	if e.Status != EventStatusFinal {
		return OutcomePending
	}

	switch p.PickType {
	case league.PickTypeStraightUp:
		return gradeStraightUp(p.Choice, e)
	case league.PickTypeSpread:
		return gradeAgainstSpread(p.Choice, e)
	default:
		return OutcomePending
	}
}

func gradeStraightUp(choice Side, e Event) Outcome {
	switch {
	case e.HomeScore == e.AwayScore:
		return OutcomePush
	case e.HomeScore > e.AwayScore:
		return sideOutcome(choice, SideHome)
	default:
		return sideOutcome(choice, SideAway)
	}
}

func gradeAgainstSpread(choice Side, e Event) Outcome {
	adjusted := float64(e.HomeScore) + e.Spread
	switch {
	case adjusted == float64(e.AwayScore):
		return OutcomePush
	case adjusted > float64(e.AwayScore):
		return sideOutcome(choice, SideHome)
	default:
		return sideOutcome(choice, SideAway)
	}
}

func sideOutcome(choice, winner Side) Outcome {
	if choice == winner {
		return OutcomeWin
	}
	return OutcomeLoss
}
