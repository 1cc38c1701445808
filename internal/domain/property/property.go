package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lodgeworks/service-rentals/internal/domain"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	TypeHouse     PropertyType = "house"
	TypeApartment PropertyType = "apartment"
	TypeVilla     PropertyType = "villa"
	TypeCabin     PropertyType = "cabin"
	TypeCottage   PropertyType = "cottage"
)

// IsValid returns true if the property type is recognized.
func (t PropertyType) IsValid() bool {
	switch t {
	case TypeHouse, TypeApartment, TypeVilla, TypeCabin, TypeCottage:
		return true
	}
	return false
}

// Property is the aggregate root for a rental listing.
type Property struct {
	id           uuid.UUID
	hostID       uuid.UUID
	title        string
	description  string
	location     string
	nightlyPrice decimal.Decimal
	images       []string
	amenities    []string
	propertyType PropertyType
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewProperty creates a listing owned by the given host.
func NewProperty(
	hostID uuid.UUID,
	title, description, location string,
	nightlyPrice decimal.Decimal,
	images, amenities []string,
	propertyType PropertyType,
) (*Property, error) {
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("description is required")
	}
	if location == "" {
		return nil, domain.NewValidationError("location is required")
	}
	if !nightlyPrice.IsPositive() {
		return nil, domain.NewValidationError("nightly price must be positive")
	}
	if propertyType == "" {
		propertyType = TypeHouse
	}
	if !propertyType.IsValid() {
		return nil, domain.NewValidationError("invalid property type: " + string(propertyType))
	}

	now := time.Now().UTC()
	return &Property{
		id:           uuid.New(),
		hostID:       hostID,
		title:        title,
		description:  description,
		location:     location,
		nightlyPrice: nightlyPrice,
		images:       images,
		amenities:    amenities,
		propertyType: propertyType,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructProperty rebuilds a Property from persistence data (no validation).
func ReconstructProperty(
	id, hostID uuid.UUID,
	title, description, location string,
	nightlyPrice decimal.Decimal,
	images, amenities []string,
	propertyType PropertyType,
	version int64,
	createdAt, updatedAt time.Time,
) *Property {
	return &Property{
		id:           id,
		hostID:       hostID,
		title:        title,
		description:  description,
		location:     location,
		nightlyPrice: nightlyPrice,
		images:       images,
		amenities:    amenities,
		propertyType: propertyType,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the property's unique identifier.
func (p *Property) ID() uuid.UUID { return p.id }

// HostID returns the owning host's user ID.
func (p *Property) HostID() uuid.UUID { return p.hostID }

// Title returns the listing title.
func (p *Property) Title() string { return p.title }

// Description returns the listing description.
func (p *Property) Description() string { return p.description }

// Location returns the listing location.
func (p *Property) Location() string { return p.location }

// NightlyPrice returns the price per night.
func (p *Property) NightlyPrice() decimal.Decimal { return p.nightlyPrice }

// Images returns the ordered image URIs.
func (p *Property) Images() []string { return p.images }

// Amenities returns the amenity tags.
func (p *Property) Amenities() []string { return p.amenities }

// PropertyType returns the listing classification.
func (p *Property) PropertyType() PropertyType { return p.propertyType }

// Version returns the entity version for optimistic locking.
func (p *Property) Version() int64 { return p.version }

// CreatedAt returns the creation timestamp.
func (p *Property) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

// UpdateDetails applies a host's edit to the listing. Zero values leave the
// corresponding field unchanged; the price must stay positive.
func (p *Property) UpdateDetails(
	title, description, location string,
	nightlyPrice *decimal.Decimal,
	images, amenities []string,
	propertyType PropertyType,
) error {
	if nightlyPrice != nil && !nightlyPrice.IsPositive() {
		return domain.NewValidationError("nightly price must be positive")
	}
	if propertyType != "" && !propertyType.IsValid() {
		return domain.NewValidationError("invalid property type: " + string(propertyType))
	}

	if title != "" {
		p.title = title
	}
	if description != "" {
		p.description = description
	}
	if location != "" {
		p.location = location
	}
	if nightlyPrice != nil {
		p.nightlyPrice = *nightlyPrice
	}
	if images != nil {
		p.images = images
	}
	if amenities != nil {
		p.amenities = amenities
	}
	if propertyType != "" {
		p.propertyType = propertyType
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// IsOwnedBy reports whether the given user owns this listing.
func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.hostID == userID
}

// IncrementVersion bumps the version for optimistic locking.
func (p *Property) IncrementVersion() {
	p.version++
	p.updatedAt = time.Now().UTC()
}
