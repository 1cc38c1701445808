package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindConfirmedByPropertyID retrieves all confirmed bookings for a
	// property. This is the read side of the availability check.
	FindConfirmedByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*Booking, error)

	// FindByRenterID retrieves bookings created by a renter with pagination.
	FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByHostID retrieves bookings on a host's properties, optionally
	// filtered by status, with pagination.
	FindByHostID(ctx context.Context, hostID uuid.UUID, status *BookingStatus, page, limit int) ([]*Booking, int64, error)

	// CountActiveByPropertyID returns the number of pending or confirmed
	// bookings on a property. Used to block property deletion.
	CountActiveByPropertyID(ctx context.Context, propertyID uuid.UUID) (int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, b *Booking) error
}
