package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic and event type names for the rentals event stream.
const (
	TopicRentalEvents = "rental.events"

	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	BookingCanceled  = "booking.canceled"
	PropertyCreated  = "property.created"
	PropertyDeleted  = "property.deleted"
)

// BookingRequestedEvent is published when a booking is admitted as pending.
type BookingRequestedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	RenterID   uuid.UUID `json:"renter_id"`
	HostID     uuid.UUID `json:"host_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalPrice string    `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingConfirmedEvent is published when a host confirms a pending booking.
type BookingConfirmedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	RenterID   uuid.UUID `json:"renter_id"`
	HostID     uuid.UUID `json:"host_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCanceledEvent is published when either party cancels a booking.
type BookingCanceledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	PropertyID uuid.UUID `json:"property_id"`
	CanceledBy uuid.UUID `json:"canceled_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PropertyCreatedEvent is published when a host lists a new property.
type PropertyCreatedEvent struct {
	PropertyID uuid.UUID `json:"property_id"`
	HostID     uuid.UUID `json:"host_id"`
	Location   string    `json:"location"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PropertyDeletedEvent is published when a host removes a listing.
type PropertyDeletedEvent struct {
	PropertyID uuid.UUID `json:"property_id"`
	HostID     uuid.UUID `json:"host_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
