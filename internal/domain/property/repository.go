package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter narrows the public listing query. Nil or zero fields are ignored.
type ListFilter struct {
	// Location matches as a case-insensitive substring.
	Location string
	// MinPrice and MaxPrice bound the nightly price inclusively.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// PropertyType matches exactly.
	PropertyType PropertyType
	// Amenities requires every listed tag to be present.
	Amenities []string
}

// PropertyRepository defines the persistence contract for property aggregates.
type PropertyRepository interface {
	// FindByID retrieves a property by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByHostID retrieves all properties owned by a host, newest first.
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*Property, error)

	// List retrieves properties matching the filter, newest first, paginated.
	List(ctx context.Context, filter ListFilter, page, limit int) ([]*Property, int64, error)

	// Save persists a new property.
	Save(ctx context.Context, p *Property) error

	// Update persists changes to an existing property with optimistic locking.
	Update(ctx context.Context, p *Property) error

	// Delete removes a property.
	Delete(ctx context.Context, id uuid.UUID) error
}
