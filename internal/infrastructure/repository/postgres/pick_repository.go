package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) UpsertPicks(ctx context.Context, picks []pick.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for pick upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
INSERT INTO picks (league_public_id, user_id, phase, event_public_id, choice, pick_type)
VALUES (:league_public_id, :user_id, :phase, :event_public_id, :choice, :pick_type)
ON CONFLICT (league_public_id, user_id, event_public_id)
DO UPDATE SET
    choice = EXCLUDED.choice,
    pick_type = EXCLUDED.pick_type,
    updated_at = NOW(),
    deleted_at = NULL`

	for _, p := range picks {
		pickSQL, args, err := sqlx.Named(query, map[string]any{
			"league_public_id": p.LeagueID,
			"user_id":          p.UserID,
			"phase":            p.Phase,
			"event_public_id":  p.EventID,
			"choice":           string(p.Choice),
			"pick_type":        string(p.PickType),
		})
		if err != nil {
			return fmt.Errorf("bind upsert pick event=%s query: %w", p.EventID, err)
		}
		pickSQL = tx.Rebind(pickSQL)
		if _, err := tx.ExecContext(ctx, pickSQL, args...); err != nil {
			return fmt.Errorf("upsert pick event=%s: %w", p.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pick upsert tx: %w", err)
	}

	return nil
}

func (r *PickRepository) ListByLeagueUserPhase(ctx context.Context, leagueID, userID string, phase int) ([]pick.Pick, error) {
	return r.list(ctx,
		qb.Eq("league_public_id", leagueID),
		qb.Eq("user_id", userID),
		qb.Eq("phase", phase),
	)
}

func (r *PickRepository) ListByLeague(ctx context.Context, leagueID string) ([]pick.Pick, error) {
	return r.list(ctx, qb.Eq("league_public_id", leagueID))
}

func (r *PickRepository) list(ctx context.Context, match ...qb.Condition) ([]pick.Pick, error) {
	conditions := append(match, qb.IsNull("deleted_at"))
	query, args, err := qb.Select("*").From("picks").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.Pick{
			LeagueID:  row.LeaguePublicID,
			UserID:    row.UserID,
			Phase:     row.Phase,
			EventID:   row.EventPublicID,
			Choice:    pick.Side(row.Choice),
			PickType:  league.PickType(row.PickType),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return out, nil
}

func (r *PickRepository) DeleteByLeagueUser(ctx context.Context, leagueID, userID string) error {
	query, args, err := qb.Update("picks").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete picks query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete picks: %w", err)
	}

	return nil
}
