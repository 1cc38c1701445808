package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// FindByID retrieves a user by their unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by their unique email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user with optimistic locking.
	Update(ctx context.Context, u *User) error
}
