package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (pick.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return pick.Event{}, false, fmt.Errorf("build get event by id query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Event{}, false, nil
		}
		return pick.Event{}, false, fmt.Errorf("get event by id: %w", err)
	}

	return eventFromRow(row), true, nil
}

func (r *EventRepository) ListByPhase(ctx context.Context, phase int) ([]pick.Event, error) {
	return r.list(ctx, qb.Eq("phase", phase))
}

func (r *EventRepository) ListFinal(ctx context.Context) ([]pick.Event, error) {
	return r.list(ctx, qb.Eq("status", string(pick.EventStatusFinal)))
}

func (r *EventRepository) list(ctx context.Context, match qb.Condition) ([]pick.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(match).
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]pick.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}

	return out, nil
}

func eventFromRow(row eventTableModel) pick.Event {
	return pick.Event{
		ID:        row.PublicID,
		Phase:     row.Phase,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		Spread:    row.Spread,
		StartsAt:  row.StartsAt,
		Status:    pick.EventStatus(row.Status),
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
	}
}
