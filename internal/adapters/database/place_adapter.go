package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tripwise/pkg/errors"
)

// upsertBatchSize bounds the number of rows per INSERT statement
const upsertBatchSize = 200

var placeColumns = []interface{}{
	"id", "name", "address", "latitude", "longitude", "categories",
	"rating", "review_count", "photo_url", "cost", "duration_minutes",
	"city", "created_at", "updated_at",
}

// PlaceAdapter implements PlaceRepository
type PlaceAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewPlaceAdapter creates a new place adapter. metrics may be nil.
func NewPlaceAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.PlaceRepository {
	return &PlaceAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// ListAll retrieves the whole catalog ordered by ID
func (a *PlaceAdapter) ListAll(ctx context.Context) ([]*entities.Place, error) {
	defer a.observe(ctx, "places.list_all", time.Now())

	query, args, err := a.db.Select(placeColumns...).
		From("places").
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	places := make([]*entities.Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate places", err)
	}

	return places, nil
}

// UpsertMany inserts places in one transaction. Rows whose ID already exists
// are overwritten, except for their creation time.
func (a *PlaceAdapter) UpsertMany(ctx context.Context, places []*entities.Place) error {
	if len(places) == 0 {
		return nil
	}
	defer a.observe(ctx, "places.upsert_many", time.Now())

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(places); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(places) {
			end = len(places)
		}

		query, args, err := a.upsertQuery(places[start:end])
		if err != nil {
			return apperrors.NewInternalError("failed to build upsert query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to upsert places", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit places", err)
	}
	return nil
}

func (a *PlaceAdapter) upsertQuery(places []*entities.Place) (string, []interface{}, error) {
	rows := make([]interface{}, 0, len(places))
	for _, p := range places {
		if p == nil {
			continue
		}
		var photo sql.NullString
		if p.PhotoURL != nil {
			photo = sql.NullString{String: *p.PhotoURL, Valid: true}
		}
		rows = append(rows, goqu.Record{
			"id":               p.ID,
			"name":             p.Name,
			"address":          p.Address,
			"latitude":         p.Location.Latitude,
			"longitude":        p.Location.Longitude,
			"categories":       pq.Array(p.Categories),
			"rating":           p.Rating,
			"review_count":     p.ReviewCount,
			"photo_url":        photo,
			"cost":             p.Cost,
			"duration_minutes": p.DurationMinutes,
			"city":             p.City,
			"created_at":       p.CreatedAt,
			"updated_at":       p.UpdatedAt,
		})
	}

	return a.db.Insert("places").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"name":             goqu.L("EXCLUDED.name"),
			"address":          goqu.L("EXCLUDED.address"),
			"latitude":         goqu.L("EXCLUDED.latitude"),
			"longitude":        goqu.L("EXCLUDED.longitude"),
			"categories":       goqu.L("EXCLUDED.categories"),
			"rating":           goqu.L("EXCLUDED.rating"),
			"review_count":     goqu.L("EXCLUDED.review_count"),
			"photo_url":        goqu.L("EXCLUDED.photo_url"),
			"cost":             goqu.L("EXCLUDED.cost"),
			"duration_minutes": goqu.L("EXCLUDED.duration_minutes"),
			"city":             goqu.L("EXCLUDED.city"),
			"updated_at":       goqu.L("EXCLUDED.updated_at"),
		})).
		ToSQL()
}

func (a *PlaceAdapter) observe(ctx context.Context, operation string, start time.Time) {
	observability.RecordDBMetric(ctx, a.metrics, operation, time.Since(start))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(row rowScanner) (*entities.Place, error) {
	place := &entities.Place{}
	var address, photo, city sql.NullString

	err := row.Scan(
		&place.ID,
		&place.Name,
		&address,
		&place.Location.Latitude,
		&place.Location.Longitude,
		pq.Array(&place.Categories),
		&place.Rating,
		&place.ReviewCount,
		&photo,
		&place.Cost,
		&place.DurationMinutes,
		&city,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	place.Address = address.String
	place.City = city.String
	if photo.Valid {
		place.PhotoURL = &photo.String
	}
	if place.Categories == nil {
		place.Categories = []string{}
	}

	return place, nil
}
