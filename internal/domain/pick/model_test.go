package pick

import (
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

func finalEvent(home, away int, spread float64) Event {
	return Event{
		ID:        "ev-1",
		Phase:     3,
		HomeTeam:  "JAX",
		AwayTeam:  "TEN",
		Spread:    spread,
		Status:    EventStatusFinal,
		HomeScore: home,
		AwayScore: away,
	}
}

func TestGradeStraightUp(t *testing.T) {
	cases := []struct {
		name   string
		home   int
		away   int
		choice Side
		want   Outcome
	}{
		{"home win picked home", 24, 17, SideHome, OutcomeWin},
		{"home win picked away", 24, 17, SideAway, OutcomeLoss},
		{"away win picked away", 13, 20, SideAway, OutcomeWin},
		{"tie is a push", 21, 21, SideHome, OutcomePush},
	}

	for _, tc := range cases {
		p := Pick{Choice: tc.choice, PickType: league.PickTypeStraightUp}
		if got := Grade(p, finalEvent(tc.home, tc.away, 0)); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestGradeAgainstSpread(t *testing.T) {
	cases := []struct {
		name   string
		home   int
		away   int
		spread float64
		choice Side
		want   Outcome
	}{
		{"favorite covers", 27, 17, -6.5, SideHome, OutcomeWin},
		{"favorite wins but fails to cover", 20, 17, -6.5, SideHome, OutcomeLoss},
		{"underdog covers in a loss", 20, 17, -6.5, SideAway, OutcomeWin},
		{"exact cover is a push", 23, 17, -6, SideHome, OutcomePush},
		{"road favorite covers", 14, 24, 3.5, SideAway, OutcomeWin},
	}

	for _, tc := range cases {
		p := Pick{Choice: tc.choice, PickType: league.PickTypeSpread}
		if got := Grade(p, finalEvent(tc.home, tc.away, tc.spread)); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestGradePendingUntilFinal(t *testing.T) {
	e := finalEvent(24, 17, -3)
	e.Status = EventStatusScheduled

	p := Pick{Choice: SideHome, PickType: league.PickTypeSpread}
	if got := Grade(p, e); got != OutcomePending {
		t.Fatalf("expected pending grade for unfinished event, got %s", got)
	}
}

func TestEventStarted(t *testing.T) {
	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	e := Event{StartsAt: kickoff}

	if e.Started(kickoff.Add(-time.Second)) {
		t.Fatalf("expected event not started before kickoff")
	}
	if !e.Started(kickoff) {
		t.Fatalf("expected event started at kickoff")
	}
}
