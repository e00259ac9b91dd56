package pick

import "context"

// Repository describes pick persistence needs from use cases.
type Repository interface {
	UpsertPicks(ctx context.Context, picks []Pick) error
	ListByLeagueUserPhase(ctx context.Context, leagueID, userID string, phase int) ([]Pick, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Pick, error)
	DeleteByLeagueUser(ctx context.Context, leagueID, userID string) error
}

// EventRepository describes the schedule data picks are made against.
type EventRepository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	ListByPhase(ctx context.Context, phase int) ([]Event, error)
	ListFinal(ctx context.Context) ([]Event, error)
}
