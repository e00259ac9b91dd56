package league

import "context"

// Repository describes league and membership persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, l League, founder Member) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	Update(ctx context.Context, l League) error
	Delete(ctx context.Context, leagueID string) error
	ListByUser(ctx context.Context, userID string) ([]League, error)

	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
	GetMember(ctx context.Context, leagueID, userID string) (Member, bool, error)
	AddMember(ctx context.Context, m Member) error
	UpdateMemberRole(ctx context.Context, leagueID, userID string, role Role) error
	RemoveMember(ctx context.Context, leagueID, userID string) error
}
