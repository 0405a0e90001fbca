package repositories

import (
	"context"

	"github.com/zatekoja/tripwise/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID. Unknown IDs yield a NOT_FOUND AppError.
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// Upsert creates the user or replaces an existing one with the same ID
	Upsert(ctx context.Context, user *entities.User) error
}
