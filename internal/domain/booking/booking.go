package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lodgeworks/service-rentals/internal/domain"
)

// Booking is the aggregate root for a date-ranged reservation of a property.
// The host ID is denormalized from the property at creation time so
// authorization decisions never need a second lookup.
type Booking struct {
	id         uuid.UUID
	propertyID uuid.UUID
	renterID   uuid.UUID
	hostID     uuid.UUID
	stay       Stay
	status     BookingStatus
	totalPrice decimal.Decimal

	confirmedAt *time.Time
	canceledAt  *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking admits a validated booking intent as a pending booking.
func NewBooking(
	propertyID, renterID, hostID uuid.UUID,
	stay Stay,
	totalPrice decimal.Decimal,
) (*Booking, error) {
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError("property ID is required")
	}
	if renterID == uuid.Nil {
		return nil, domain.NewValidationError("renter ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if renterID == hostID {
		return nil, domain.NewValidationError("hosts cannot book their own property")
	}
	if totalPrice.IsNegative() || totalPrice.IsZero() {
		return nil, domain.NewValidationError("total price must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:         uuid.New(),
		propertyID: propertyID,
		renterID:   renterID,
		hostID:     hostID,
		stay:       stay,
		status:     StatusPending,
		totalPrice: totalPrice,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, propertyID, renterID, hostID uuid.UUID,
	stay Stay,
	status BookingStatus,
	totalPrice decimal.Decimal,
	confirmedAt, canceledAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		propertyID:  propertyID,
		renterID:    renterID,
		hostID:      hostID,
		stay:        stay,
		status:      status,
		totalPrice:  totalPrice,
		confirmedAt: confirmedAt,
		canceledAt:  canceledAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// PropertyID returns the booked property's ID.
func (b *Booking) PropertyID() uuid.UUID { return b.propertyID }

// RenterID returns the renter's user ID.
func (b *Booking) RenterID() uuid.UUID { return b.renterID }

// HostID returns the host's user ID as of booking creation.
func (b *Booking) HostID() uuid.UUID { return b.hostID }

// Stay returns the booked date interval.
func (b *Booking) Stay() Stay { return b.stay }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// TotalPrice returns the total price for the stay.
func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }

// ConfirmedAt returns the time the booking was confirmed, or nil.
func (b *Booking) ConfirmedAt() *time.Time { return b.confirmedAt }

// CanceledAt returns the time the booking was canceled, or nil.
func (b *Booking) CanceledAt() *time.Time { return b.canceledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Confirm transitions a pending booking to confirmed. Only the host may
// confirm. The availability re-check against other confirmed bookings is the
// application service's responsibility.
func (b *Booking) Confirm(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host may confirm a booking")
	}
	if b.stay.ElapsedAt(time.Now().UTC()) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	now := time.Now().UTC()
	b.status = StatusConfirmed
	b.confirmedAt = &now
	b.updatedAt = now
	return nil
}

// Cancel transitions a pending or confirmed booking to canceled. Either party
// to the booking may cancel; an elapsed stay is immutable.
func (b *Booking) Cancel(actorID uuid.UUID) error {
	if actorID != b.hostID && actorID != b.renterID {
		return domain.NewForbiddenError("only the host or the renter may cancel a booking")
	}
	if b.stay.ElapsedAt(time.Now().UTC()) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCanceled))
	}
	if !b.status.CanTransitionTo(StatusCanceled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCanceled))
	}
	now := time.Now().UTC()
	b.status = StatusCanceled
	b.canceledAt = &now
	b.updatedAt = now
	return nil
}

// IsParty reports whether the given user is the host or the renter.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return userID == b.hostID || userID == b.renterID
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
