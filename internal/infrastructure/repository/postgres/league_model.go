package postgres

import "time"

type leagueTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	Name          string     `db:"name"`
	ImageURL      string     `db:"image_url"`
	Size          int        `db:"size"`
	Visibility    string     `db:"visibility"`
	PicksPerPhase int        `db:"picks_per_phase"`
	PickType      string     `db:"pick_type"`
	IsInSeason    bool       `db:"is_in_season"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type memberTableModel struct {
	ID             int64      `db:"id"`
	LeaguePublicID string     `db:"league_public_id"`
	UserID         string     `db:"user_id"`
	Role           string     `db:"role"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
