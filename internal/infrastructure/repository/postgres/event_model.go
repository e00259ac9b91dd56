package postgres

import "time"

type eventTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Phase     int       `db:"phase"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	Spread    float64   `db:"spread"`
	StartsAt  time.Time `db:"starts_at"`
	Status    string    `db:"status"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
