package invite

import "context"

// Repository describes invite persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, inv Invite) error
	GetByID(ctx context.Context, inviteID string) (Invite, bool, error)
	GetByToken(ctx context.Context, token string) (Invite, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Invite, error)
	ListByInvitee(ctx context.Context, inviteeID string) ([]Invite, error)
	UpdateStatus(ctx context.Context, inviteID string, status Status) error
	IncrementUses(ctx context.Context, inviteID string) error
	Delete(ctx context.Context, inviteID string) error
	DeleteByLeague(ctx context.Context, leagueID string) error
}
