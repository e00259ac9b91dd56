package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo leagues, members, and events into an empty
// database so a fresh install has something to play with.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (public_id, name, image_url, size, visibility, picks_per_phase, pick_type, is_in_season)
VALUES (:public_id, :name, :image_url, :size, :visibility, :picks_per_phase, :pick_type, :is_in_season)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       l.ID,
			"name":            l.Name,
			"image_url":       l.ImageURL,
			"size":            l.Size,
			"visibility":      string(l.Visibility),
			"picks_per_phase": l.Settings.PicksPerPhase,
			"pick_type":       string(l.Settings.PickType),
			"is_in_season":    l.IsInSeason,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, m := range memory.SeedMembers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO league_members (league_public_id, user_id, role)
VALUES (:league_public_id, :user_id, :role)
ON CONFLICT (league_public_id, user_id) DO NOTHING`, map[string]any{
			"league_public_id": m.LeagueID,
			"user_id":          m.UserID,
			"role":             string(m.Role),
		})
		if err != nil {
			return fmt.Errorf("bind seed member %s query: %w", m.UserID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed member %s: %w", m.UserID, err)
		}
	}

	for _, e := range memory.SeedEvents() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO events (public_id, phase, home_team, away_team, spread, starts_at, status, home_score, away_score)
VALUES (:public_id, :phase, :home_team, :away_team, :spread, :starts_at, :status, :home_score, :away_score)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  e.ID,
			"phase":      e.Phase,
			"home_team":  e.HomeTeam,
			"away_team":  e.AwayTeam,
			"spread":     e.Spread,
			"starts_at":  e.StartsAt,
			"status":     string(e.Status),
			"home_score": e.HomeScore,
			"away_score": e.AwayScore,
		})
		if err != nil {
			return fmt.Errorf("bind seed event %s query: %w", e.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
