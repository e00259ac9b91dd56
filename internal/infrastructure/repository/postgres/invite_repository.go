package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type InviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, inv invite.Invite) error {
	const query = `
INSERT INTO invites (public_id, token, league_public_id, invitee_id, role, type, status, max_uses, uses, expires_at, created_by)
VALUES (:public_id, :token, :league_public_id, :invitee_id, :role, :type, :status, :max_uses, :uses, :expires_at, :created_by)`

	inviteSQL, args, err := sqlx.Named(query, map[string]any{
		"public_id":        inv.ID,
		"token":            inv.Token,
		"league_public_id": inv.LeagueID,
		"invitee_id":       nullableString(inv.InviteeID),
		"role":             string(inv.Role),
		"type":             string(inv.Type),
		"status":           string(inv.Status),
		"max_uses":         inv.MaxUses,
		"uses":             inv.Uses,
		"expires_at":       inv.ExpiresAt,
		"created_by":       inv.CreatedBy,
	})
	if err != nil {
		return fmt.Errorf("bind insert invite query: %w", err)
	}
	inviteSQL = r.db.Rebind(inviteSQL)

	if _, err := r.db.ExecContext(ctx, inviteSQL, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invite %s already exists", inv.ID)
		}
		return fmt.Errorf("insert invite: %w", err)
	}

	return nil
}

func (r *InviteRepository) GetByID(ctx context.Context, inviteID string) (invite.Invite, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", inviteID))
}

func (r *InviteRepository) GetByToken(ctx context.Context, token string) (invite.Invite, bool, error) {
	return r.getOne(ctx, qb.Eq("token", token))
}

func (r *InviteRepository) getOne(ctx context.Context, match qb.Condition) (invite.Invite, bool, error) {
	query, args, err := qb.Select("*").From("invites").
		Where(match, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return invite.Invite{}, false, fmt.Errorf("build get invite query: %w", err)
	}

	var row inviteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return invite.Invite{}, false, nil
		}
		return invite.Invite{}, false, fmt.Errorf("get invite: %w", err)
	}

	return inviteFromRow(row), true, nil
}

func (r *InviteRepository) ListByLeague(ctx context.Context, leagueID string) ([]invite.Invite, error) {
	return r.list(ctx, qb.Eq("league_public_id", leagueID))
}

func (r *InviteRepository) ListByInvitee(ctx context.Context, userID string) ([]invite.Invite, error) {
	return r.list(ctx, qb.Eq("invitee_id", userID))
}

func (r *InviteRepository) list(ctx context.Context, match qb.Condition) ([]invite.Invite, error) {
	query, args, err := qb.Select("*").From("invites").
		Where(match, qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list invites query: %w", err)
	}

	var rows []inviteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select invites: %w", err)
	}

	out := make([]invite.Invite, 0, len(rows))
	for _, row := range rows {
		out = append(out, inviteFromRow(row))
	}

	return out, nil
}

func (r *InviteRepository) UpdateStatus(ctx context.Context, inviteID string, status invite.Status) error {
	query, args, err := qb.Update("invites").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", inviteID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update invite status query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update invite status: %w", err)
	}

	return nil
}

func (r *InviteRepository) IncrementUses(ctx context.Context, inviteID string) error {
	query, args, err := qb.Update("invites").
		SetExpr("uses", "uses + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", inviteID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build increment invite uses query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment invite uses: %w", err)
	}

	return nil
}

func (r *InviteRepository) Delete(ctx context.Context, inviteID string) error {
	return r.softDelete(ctx, qb.Eq("public_id", inviteID))
}

func (r *InviteRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	return r.softDelete(ctx, qb.Eq("league_public_id", leagueID))
}

func (r *InviteRepository) softDelete(ctx context.Context, match qb.Condition) error {
	query, args, err := qb.Update("invites").
		SetExpr("deleted_at", "NOW()").
		Where(match, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete invites query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete invites: %w", err)
	}

	return nil
}

func inviteFromRow(row inviteTableModel) invite.Invite {
	return invite.Invite{
		ID:        row.PublicID,
		Token:     row.Token,
		LeagueID:  row.LeaguePublicID,
		InviteeID: row.InviteeID.String,
		Role:      league.Role(row.Role),
		Type:      invite.Type(row.Type),
		Status:    invite.Status(row.Status),
		MaxUses:   row.MaxUses,
		Uses:      row.Uses,
		ExpiresAt: row.ExpiresAt,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
