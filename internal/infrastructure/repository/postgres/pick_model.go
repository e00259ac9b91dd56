package postgres

import "time"

type pickTableModel struct {
	ID             int64      `db:"id"`
	LeaguePublicID string     `db:"league_public_id"`
	UserID         string     `db:"user_id"`
	Phase          int        `db:"phase"`
	EventPublicID  string     `db:"event_public_id"`
	Choice         string     `db:"choice"`
	PickType       string     `db:"pick_type"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
