package postgres

import (
	"database/sql"
	"time"
)

type inviteTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Token          string         `db:"token"`
	LeaguePublicID string         `db:"league_public_id"`
	InviteeID      sql.NullString `db:"invitee_id"`
	Role           string         `db:"role"`
	Type           string         `db:"type"`
	Status         string         `db:"status"`
	MaxUses        int            `db:"max_uses"`
	Uses           int            `db:"uses"`
	ExpiresAt      time.Time      `db:"expires_at"`
	CreatedBy      string         `db:"created_by"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}
