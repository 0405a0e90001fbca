package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/zatekoja/tripwise/internal/domain/entities"
	"github.com/zatekoja/tripwise/internal/domain/repositories"
	"github.com/zatekoja/tripwise/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tripwise/pkg/errors"
)

// UserAdapter implements UserRepository
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "preferences", "latitude", "longitude",
		"city", "created_at", "updated_at",
	).From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	var email, city sql.NullString
	var lat, lng sql.NullFloat64

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&email,
		pq.Array(&user.Preferences),
		&lat,
		&lng,
		&city,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	user.Email = email.String
	user.City = city.String
	if lat.Valid && lng.Valid {
		user.Location = &entities.Location{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if user.Preferences == nil {
		user.Preferences = []string{}
	}

	return user, nil
}

// Upsert creates the user or replaces the stored profile
func (a *UserAdapter) Upsert(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	var lat, lng sql.NullFloat64
	if user.Location != nil {
		lat = sql.NullFloat64{Float64: user.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: user.Location.Longitude, Valid: true}
	}

	record := goqu.Record{
		"id":          user.ID,
		"name":        user.Name,
		"email":       sql.NullString{String: user.Email, Valid: user.Email != ""},
		"preferences": pq.Array(user.Preferences),
		"latitude":    lat,
		"longitude":   lng,
		"city":        sql.NullString{String: user.City, Valid: user.City != ""},
		"created_at":  user.CreatedAt,
		"updated_at":  user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"name":        goqu.L("EXCLUDED.name"),
			"email":       goqu.L("EXCLUDED.email"),
			"preferences": goqu.L("EXCLUDED.preferences"),
			"latitude":    goqu.L("EXCLUDED.latitude"),
			"longitude":   goqu.L("EXCLUDED.longitude"),
			"city":        goqu.L("EXCLUDED.city"),
			"updated_at":  goqu.L("EXCLUDED.updated_at"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert user", err)
	}
	return nil
}
