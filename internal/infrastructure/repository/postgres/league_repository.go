package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, founder league.Member) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for league create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertLeagueQuery = `
INSERT INTO leagues (public_id, name, image_url, size, visibility, picks_per_phase, pick_type, is_in_season)
VALUES (:public_id, :name, :image_url, :size, :visibility, :picks_per_phase, :pick_type, :is_in_season)`

	leagueSQL, leagueArgs, err := sqlx.Named(insertLeagueQuery, map[string]any{
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
		return fmt.Errorf("bind insert league query: %w", err)
	}
	leagueSQL = tx.Rebind(leagueSQL)
	if _, err := tx.ExecContext(ctx, leagueSQL, leagueArgs...); err != nil {
		return fmt.Errorf("insert league: %w", err)
	}

	const insertFounderQuery = `
INSERT INTO league_members (league_public_id, user_id, role)
VALUES (:league_public_id, :user_id, :role)`

	founderSQL, founderArgs, err := sqlx.Named(insertFounderQuery, map[string]any{
		"league_public_id": founder.LeagueID,
		"user_id":          founder.UserID,
		"role":             string(founder.Role),
	})
	if err != nil {
		return fmt.Errorf("bind insert founder query: %w", err)
	}
	founderSQL = tx.Rebind(founderSQL)
	if _, err := tx.ExecContext(ctx, founderSQL, founderArgs...); err != nil {
		return fmt.Errorf("insert founding member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit league create tx: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	query, args, err := qb.Update("leagues").
		Set("name", l.Name).
		Set("image_url", l.ImageURL).
		Set("size", l.Size).
		Set("picks_per_phase", l.Settings.PicksPerPhase).
		Set("pick_type", string(l.Settings.PickType)).
		Set("is_in_season", l.IsInSeason).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", l.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("leagues").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	const query = `
SELECT l.*
FROM leagues l
JOIN league_members m ON m.league_public_id = l.public_id
WHERE m.user_id = $1
  AND m.deleted_at IS NULL
  AND l.deleted_at IS NULL
ORDER BY l.id`

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select leagues by user: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetMember(ctx context.Context, leagueID, userID string) (league.Member, bool, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.Member{}, false, fmt.Errorf("build get member query: %w", err)
	}

	var row memberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Member{}, false, nil
		}
		return league.Member{}, false, fmt.Errorf("get league member: %w", err)
	}

	return memberFromRow(row), true, nil
}

// AddMember reactivates a soft-deleted membership row when the user
// rejoins, instead of stacking a second row for the same pair.
func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	const query = `
INSERT INTO league_members (league_public_id, user_id, role)
VALUES (:league_public_id, :user_id, :role)
ON CONFLICT (league_public_id, user_id)
DO UPDATE SET
    role = EXCLUDED.role,
    updated_at = NOW(),
    deleted_at = NULL
WHERE league_members.deleted_at IS NOT NULL`

	memberSQL, args, err := sqlx.Named(query, map[string]any{
		"league_public_id": m.LeagueID,
		"user_id":          m.UserID,
		"role":             string(m.Role),
	})
	if err != nil {
		return fmt.Errorf("bind add member query: %w", err)
	}
	memberSQL = r.db.Rebind(memberSQL)

	res, err := r.db.ExecContext(ctx, memberSQL, args...)
	if err != nil {
		return fmt.Errorf("add league member: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("add league member: duplicate key value violates unique constraint")
	}

	return nil
}

func (r *LeagueRepository) UpdateMemberRole(ctx context.Context, leagueID, userID string, role league.Role) error {
	query, args, err := qb.Update("league_members").
		Set("role", string(role)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update member role query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update member role: %w", err)
	}

	return nil
}

func (r *LeagueRepository) RemoveMember(ctx context.Context, leagueID, userID string) error {
	query, args, err := qb.Update("league_members").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove member query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove league member: %w", err)
	}

	return nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:         row.PublicID,
		Name:       row.Name,
		ImageURL:   row.ImageURL,
		Size:       row.Size,
		Visibility: league.Visibility(row.Visibility),
		Settings: league.Settings{
			PicksPerPhase: row.PicksPerPhase,
			PickType:      league.PickType(row.PickType),
		},
		IsInSeason: row.IsInSeason,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func memberFromRow(row memberTableModel) league.Member {
	return league.Member{
		LeagueID:  row.LeaguePublicID,
		UserID:    row.UserID,
		Role:      league.Role(row.Role),
		JoinedAt:  row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
