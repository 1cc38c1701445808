package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lodgeworks/service-rentals/internal/domain"
	bookingDomain "github.com/lodgeworks/service-rentals/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	RenterID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	HostID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	CheckIn     time.Time       `gorm:"type:date;not null"`
	CheckOut    time.Time       `gorm:"type:date;not null"`
	Status      string          `gorm:"not null;size:20;index:idx_bookings_property_status,priority:2"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ConfirmedAt *time.Time      `gorm:""`
	CanceledAt  *time.Time      `gorm:""`
	Version     int64           `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, domain.NewUnavailableError("failed to find booking by ID", err)
	}
	return toDomainBooking(&model)
}

// FindConfirmedByPropertyID retrieves all confirmed bookings for a property.
func (r *GormBookingRepository) FindConfirmedByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, string(bookingDomain.StatusConfirmed)).
		Order("check_in ASC").
		Find(&models).Error; err != nil {
		return nil, domain.NewUnavailableError("failed to find confirmed bookings", err)
	}
	return toDomainBookings(models)
}

// FindByRenterID retrieves bookings created by a renter with pagination.
func (r *GormBookingRepository) FindByRenterID(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("renter_id = ?", renterID).Count(&total).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to count renter bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to find renter bookings", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindByHostID retrieves bookings on a host's properties, optionally filtered
// by status, with pagination.
func (r *GormBookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, status *bookingDomain.BookingStatus, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{}).Where("host_id = ?", hostID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to count host bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to find host bookings", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountActiveByPropertyID returns the number of pending or confirmed bookings
// on a property.
func (r *GormBookingRepository) CountActiveByPropertyID(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("property_id = ? AND status IN ?", propertyID,
			[]string{string(bookingDomain.StatusPending), string(bookingDomain.StatusConfirmed)}).
		Count(&count).Error; err != nil {
		return 0, domain.NewUnavailableError("failed to count active bookings", err)
	}
	return count, nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to count bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to list bookings", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, domain.NewUnavailableError("failed to count by status", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewUnavailableError("failed to save booking", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)

	// IncrementVersion ran before Update, so the stored row must still hold
	// the previous version.
	expectedVersion := b.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"total_price":  model.TotalPrice,
			"confirmed_at": model.ConfirmedAt,
			"canceled_at":  model.CanceledAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewUnavailableError("failed to update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:          b.ID(),
		PropertyID:  b.PropertyID(),
		RenterID:    b.RenterID(),
		HostID:      b.HostID(),
		CheckIn:     b.Stay().CheckIn(),
		CheckOut:    b.Stay().CheckOut(),
		Status:      string(b.Status()),
		TotalPrice:  b.TotalPrice(),
		ConfirmedAt: b.ConfirmedAt(),
		CanceledAt:  b.CanceledAt(),
		Version:     b.Version(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	stay, err := bookingDomain.NewStay(m.CheckIn, m.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("corrupt stay interval on booking %s: %w", m.ID, err)
	}

	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.PropertyID,
		m.RenterID,
		m.HostID,
		stay,
		status,
		m.TotalPrice,
		m.ConfirmedAt,
		m.CanceledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}
