package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lodgeworks/service-rentals/internal/domain"
)

// User is the aggregate root for a marketplace account.
type User struct {
	id        uuid.UUID
	email     string
	name      string
	image     string
	role      Role
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates an account from a verified identity assertion. The role
// starts unassigned; it is never derived from provider data.
func NewUser(email, name, image string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		email:     email,
		name:      name,
		image:     image,
		role:      RoleUnassigned,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence data (no validation).
func ReconstructUser(
	id uuid.UUID,
	email, name, image string,
	role Role,
	version int64,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:        id,
		email:     email,
		name:      name,
		image:     image,
		role:      role,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Image returns the user's avatar URL.
func (u *User) Image() string { return u.image }

// Role returns the user's current role.
func (u *User) Role() Role { return u.role }

// Version returns the entity version for optimistic locking.
func (u *User) Version() int64 { return u.version }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// AssignRole performs the one-time role selection. Assigning the role a user
// already holds is a no-op so the operation stays idempotent.
func (u *User) AssignRole(target Role) error {
	if !target.IsAssignable() {
		return domain.NewValidationError("role must be RENTER or HOST")
	}
	if u.role == target {
		return nil
	}
	if !u.role.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(u.role), string(target))
	}
	u.role = target
	u.updatedAt = time.Now().UTC()
	return nil
}

// RefreshProfile updates the mutable profile fields from a fresh sign-in.
func (u *User) RefreshProfile(name, image string) {
	changed := false
	if name != "" && name != u.name {
		u.name = name
		changed = true
	}
	if image != "" && image != u.image {
		u.image = image
		changed = true
	}
	if changed {
		u.updatedAt = time.Now().UTC()
	}
}

// IncrementVersion bumps the version for optimistic locking.
func (u *User) IncrementVersion() {
	u.version++
	u.updatedAt = time.Now().UTC()
}
