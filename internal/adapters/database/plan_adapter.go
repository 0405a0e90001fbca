package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tripwise/pkg/errors"
)

// PlanAdapter implements PlanRepository
type PlanAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlanAdapter creates a new plan adapter
func NewPlanAdapter(client *postgres.Client) repositories.PlanRepository {
	return &PlanAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListAll retrieves every plan with its selected places in position order.
// plan_places rows whose place was deleted come back with a nil PlaceID.
func (a *PlanAdapter) ListAll(ctx context.Context) ([]*entities.Plan, error) {
	query, args, err := a.db.Select(
		goqu.I("p.id"),
		goqu.I("p.user_id"),
		goqu.I("p.title"),
		goqu.I("p.created_at"),
		goqu.I("pp.position"),
		goqu.I("pl.id"),
	).From(goqu.T("plans").As("p")).
		LeftJoin(
			goqu.T("plan_places").As("pp"),
			goqu.On(goqu.I("pp.plan_id").Eq(goqu.I("p.id"))),
		).
		LeftJoin(
			goqu.T("places").As("pl"),
			goqu.On(goqu.I("pl.id").Eq(goqu.I("pp.place_id"))),
		).
		Order(goqu.I("p.created_at").Asc(), goqu.I("p.id").Asc(), goqu.I("pp.position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list plans", err)
	}
	defer rows.Close()

	plans := make([]*entities.Plan, 0)
	byID := make(map[string]*entities.Plan)

	for rows.Next() {
		var (
			planID, userID string
			title          sql.NullString
			createdAt      sql.NullTime
			position       sql.NullInt64
			placeID        sql.NullString
		)
		if err := rows.Scan(&planID, &userID, &title, &createdAt, &position, &placeID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan plan", err)
		}

		plan, ok := byID[planID]
		if !ok {
			plan = &entities.Plan{
				ID:             planID,
				UserID:         userID,
				Title:          title.String,
				CreatedAt:      createdAt.Time,
				SelectedPlaces: []entities.PlanEntry{},
			}
			byID[planID] = plan
			plans = append(plans, plan)
		}

		// No plan_places row at all: an empty plan.
		if !position.Valid {
			continue
		}

		entry := entities.PlanEntry{Position: int(position.Int64)}
		if placeID.Valid {
			id := placeID.String
			entry.PlaceID = &id
		}
		plan.SelectedPlaces = append(plan.SelectedPlaces, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate plans", err)
	}

	return plans, nil
}
