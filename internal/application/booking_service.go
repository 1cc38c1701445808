package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lodgeworks/service-rentals/internal/domain"
	bookingDomain "github.com/lodgeworks/service-rentals/internal/domain/booking"
	propertyDomain "github.com/lodgeworks/service-rentals/internal/domain/property"
	"github.com/lodgeworks/service-rentals/internal/events"
)

// CreateBookingRequest holds a raw booking intent.
type CreateBookingRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  uuid.UUID  `json:"property_id"`
	RenterID    uuid.UUID  `json:"renter_id"`
	HostID      uuid.UUID  `json:"host_id"`
	CheckIn     time.Time  `json:"check_in"`
	CheckOut    time.Time  `json:"check_out"`
	Status      string     `json:"status"`
	TotalPrice  string     `json:"total_price"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BookingService orchestrates booking admission and lifecycle transitions.
type BookingService struct {
	bookings   bookingDomain.BookingRepository
	properties propertyDomain.PropertyRepository
	pricing    bookingDomain.PricingStrategy
	producer   *events.Producer
	locks      *propertyLocks
	logger     *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	properties propertyDomain.PropertyRepository,
	pricing bookingDomain.PricingStrategy,
	producer *events.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		pricing:    pricing,
		producer:   producer,
		locks:      newPropertyLocks(),
		logger:     logger,
	}
}

// CreateBooking validates a booking intent, checks availability against
// confirmed bookings and admits it as pending. Pending bookings do not block
// one another; competing requests are resolved at confirmation time.
func (s *BookingService) CreateBooking(ctx context.Context, renterID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, domain.NewValidationError("invalid property ID")
	}

	stay, err := bookingDomain.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if conflict, err := s.findConflict(ctx, propertyID, stay, uuid.Nil); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, domain.NewAvailabilityConflictError(
			propertyID.String(), conflict.Stay().CheckIn(), conflict.Stay().CheckOut())
	}

	totalPrice, err := s.pricing.Quote(stay, prop.NightlyPrice())
	if err != nil {
		return nil, domain.NewValidationError("pricing error: " + err.Error())
	}

	bk, err := bookingDomain.NewBooking(propertyID, renterID, prop.HostID(), stay, totalPrice)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingRequested, bk.ID().String(), events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		PropertyID: bk.PropertyID(),
		RenterID:   bk.RenterID(),
		HostID:     bk.HostID(),
		CheckIn:    bk.Stay().CheckIn(),
		CheckOut:   bk.Stay().CheckOut(),
		TotalPrice: bk.TotalPrice().StringFixed(2),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking transitions a pending booking to confirmed. The availability
// re-check and the status write are serialized per property, so of two
// overlapping pending bookings only the first confirmation can succeed.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(bk.PropertyID())
	defer unlock()

	// Re-read under the lock so a confirmation that just committed is visible.
	bk, err = s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Authorization and state guards run first so re-confirming an
	// already-confirmed booking reports InvalidState rather than a conflict
	// with itself.
	if err := bk.Confirm(actorID); err != nil {
		return nil, err
	}

	if conflict, err := s.findConflict(ctx, bk.PropertyID(), bk.Stay(), bk.ID()); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, domain.NewAvailabilityConflictError(
			bk.PropertyID().String(), conflict.Stay().CheckIn(), conflict.Stay().CheckOut())
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingConfirmed, bk.ID().String(), events.BookingConfirmedEvent{
		BookingID:  bk.ID(),
		PropertyID: bk.PropertyID(),
		RenterID:   bk.RenterID(),
		HostID:     bk.HostID(),
		CheckIn:    bk.Stay().CheckIn(),
		CheckOut:   bk.Stay().CheckOut(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking transitions a pending or confirmed booking to canceled.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Cancel(actorID); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingCanceled, bk.ID().String(), events.BookingCanceledEvent{
		BookingID:  bk.ID(),
		PropertyID: bk.PropertyID(),
		CanceledBy: actorID,
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// CheckAvailability reports whether the date range is free of confirmed
// bookings on the property.
func (s *BookingService) CheckAvailability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut string) (bool, error) {
	stay, err := bookingDomain.ParseStay(checkIn, checkOut)
	if err != nil {
		return false, err
	}

	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return false, err
	}

	conflict, err := s.findConflict(ctx, propertyID, stay, uuid.Nil)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// GetBooking retrieves a single booking. Only the parties to the booking may
// see it.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsParty(actorID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetRenterBookings retrieves paginated bookings created by the renter.
func (s *BookingService) GetRenterBookings(ctx context.Context, renterID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByRenterID(ctx, renterID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetHostBookings retrieves paginated booking requests on the host's
// properties, optionally filtered by status.
func (s *BookingService) GetHostBookings(ctx context.Context, hostID uuid.UUID, status string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	var statusFilter *bookingDomain.BookingStatus
	if status != "" {
		parsed, err := bookingDomain.ParseBookingStatus(status)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		statusFilter = &parsed
	}

	bookings, total, err := s.bookings.FindByHostID(ctx, hostID, statusFilter, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

// findConflict returns the first confirmed booking whose stay overlaps the
// candidate, or nil if the range is free. Bookings matching excludeID are
// skipped so a booking never conflicts with itself.
func (s *BookingService) findConflict(ctx context.Context, propertyID uuid.UUID, stay bookingDomain.Stay, excludeID uuid.UUID) (*bookingDomain.Booking, error) {
	confirmed, err := s.bookings.FindConfirmedByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	for _, existing := range confirmed {
		if existing.ID() == excludeID {
			continue
		}
		if stay.Overlaps(existing.Stay()) {
			return existing, nil
		}
	}
	return nil, nil
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := events.NewCloudEvent("service-rentals", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicRentalEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:          b.ID(),
		PropertyID:  b.PropertyID(),
		RenterID:    b.RenterID(),
		HostID:      b.HostID(),
		CheckIn:     b.Stay().CheckIn(),
		CheckOut:    b.Stay().CheckOut(),
		Status:      string(b.Status()),
		TotalPrice:  b.TotalPrice().StringFixed(2),
		ConfirmedAt: b.ConfirmedAt(),
		CanceledAt:  b.CanceledAt(),
		Version:     b.Version(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos
}
