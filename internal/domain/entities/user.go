package entities

import (
	"time"
)

// User represents a traveler with stated category preferences
type User struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Preferences []string  `json:"preferences" db:"-"`
	Location    *Location `json:"location,omitempty" db:"-"`
	City        string    `json:"city,omitempty" db:"city"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// HasLocation reports whether the user has a stored home location.
func (u *User) HasLocation() bool {
	return u != nil && u.Location != nil
}
