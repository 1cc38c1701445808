package application

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lodgeworks/service-rentals/internal/cache"
	"github.com/lodgeworks/service-rentals/internal/domain"
	bookingDomain "github.com/lodgeworks/service-rentals/internal/domain/booking"
	propertyDomain "github.com/lodgeworks/service-rentals/internal/domain/property"
	"github.com/lodgeworks/service-rentals/internal/events"
)

const (
	listingCachePrefix = "properties:list"
	listingCacheTTL    = 2 * time.Minute
)

// CreatePropertyRequest is the request DTO for listing a property.
type CreatePropertyRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	NightlyPrice string   `json:"nightly_price" binding:"required"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	PropertyType string   `json:"property_type"`
}

// UpdatePropertyRequest is the request DTO for editing a listing. Absent
// fields leave the listing unchanged.
type UpdatePropertyRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	NightlyPrice string   `json:"nightly_price"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	PropertyType string   `json:"property_type"`
}

// ListPropertiesQuery carries the public listing filters.
type ListPropertiesQuery struct {
	Location     string
	MinPrice     string
	MaxPrice     string
	PropertyType string
	Amenities    []string
	Page         int
	Limit        int
}

// PropertyDTO is the response representation of a listing.
type PropertyDTO struct {
	ID           uuid.UUID `json:"id"`
	HostID       uuid.UUID `json:"host_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	NightlyPrice string    `json:"nightly_price"`
	Images       []string  `json:"images"`
	Amenities    []string  `json:"amenities"`
	PropertyType string    `json:"property_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookedInterval is a confirmed stay exposed on the detail view so clients
// can grey out unavailable dates.
type BookedInterval struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// PropertyDetailDTO is the listing detail view with its confirmed intervals.
type PropertyDetailDTO struct {
	PropertyDTO
	BookedIntervals []BookedInterval `json:"booked_intervals"`
}

// PropertyService orchestrates listing management use cases.
type PropertyService struct {
	properties propertyDomain.PropertyRepository
	bookings   bookingDomain.BookingRepository
	cache      *cache.Cache
	producer   *events.Producer
	logger     *zap.Logger
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(
	properties propertyDomain.PropertyRepository,
	bookings bookingDomain.BookingRepository,
	c *cache.Cache,
	producer *events.Producer,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		bookings:   bookings,
		cache:      c,
		producer:   producer,
		logger:     logger,
	}
}

// CreateProperty lists a new property for the host.
func (s *PropertyService) CreateProperty(ctx context.Context, hostID uuid.UUID, req CreatePropertyRequest) (*PropertyDTO, error) {
	price, err := decimal.NewFromString(req.NightlyPrice)
	if err != nil {
		return nil, domain.NewValidationError("invalid nightly price")
	}

	prop, err := propertyDomain.NewProperty(
		hostID,
		req.Title,
		req.Description,
		req.Location,
		price,
		req.Images,
		req.Amenities,
		propertyDomain.PropertyType(req.PropertyType),
	)
	if err != nil {
		return nil, err
	}

	if err := s.properties.Save(ctx, prop); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.publishEvent(ctx, events.PropertyCreated, prop.ID().String(), events.PropertyCreatedEvent{
		PropertyID: prop.ID(),
		HostID:     hostID,
		Location:   prop.Location(),
		OccurredAt: time.Now().UTC(),
	})

	result := toPropertyDTO(prop)
	return &result, nil
}

// UpdateProperty applies a host's edit to their own listing.
func (s *PropertyService) UpdateProperty(ctx context.Context, propertyID, actorID uuid.UUID, req UpdatePropertyRequest) (*PropertyDTO, error) {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("property does not belong to this host")
	}

	var price *decimal.Decimal
	if req.NightlyPrice != "" {
		parsed, err := decimal.NewFromString(req.NightlyPrice)
		if err != nil {
			return nil, domain.NewValidationError("invalid nightly price")
		}
		price = &parsed
	}

	if err := prop.UpdateDetails(
		req.Title,
		req.Description,
		req.Location,
		price,
		req.Images,
		req.Amenities,
		propertyDomain.PropertyType(req.PropertyType),
	); err != nil {
		return nil, err
	}

	prop.IncrementVersion()
	if err := s.properties.Update(ctx, prop); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	result := toPropertyDTO(prop)
	return &result, nil
}

// DeleteProperty removes a host's listing. Deletion is blocked while any
// pending or confirmed booking exists.
func (s *PropertyService) DeleteProperty(ctx context.Context, propertyID, actorID uuid.UUID) error {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if !prop.IsOwnedBy(actorID) {
		return domain.NewForbiddenError("property does not belong to this host")
	}

	active, err := s.bookings.CountActiveByPropertyID(ctx, propertyID)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.NewConflictError("property has pending or confirmed bookings")
	}

	if err := s.properties.Delete(ctx, propertyID); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	s.publishEvent(ctx, events.PropertyDeleted, propertyID.String(), events.PropertyDeletedEvent{
		PropertyID: propertyID,
		HostID:     actorID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// GetProperty retrieves the listing detail view, including the confirmed
// stays on the property.
func (s *PropertyService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDetailDTO, error) {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.bookings.FindConfirmedByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	intervals := make([]BookedInterval, len(confirmed))
	for i, b := range confirmed {
		intervals[i] = BookedInterval{
			CheckIn:  b.Stay().CheckIn(),
			CheckOut: b.Stay().CheckOut(),
		}
	}

	return &PropertyDetailDTO{
		PropertyDTO:     toPropertyDTO(prop),
		BookedIntervals: intervals,
	}, nil
}

// GetHostProperties retrieves all listings owned by the host.
func (s *PropertyService) GetHostProperties(ctx context.Context, hostID uuid.UUID) ([]PropertyDTO, error) {
	properties, err := s.properties.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return toPropertyDTOs(properties), nil
}

// ListProperties runs the public listing query through the read-through cache.
func (s *PropertyService) ListProperties(ctx context.Context, query ListPropertiesQuery) (*domain.PaginatedResult[PropertyDTO], error) {
	filter, err := buildListFilter(query)
	if err != nil {
		return nil, err
	}

	key := listingCacheKey(query)
	if s.cache != nil {
		var cached domain.PaginatedResult[PropertyDTO]
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	properties, total, err := s.properties.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(toPropertyDTOs(properties), total, query.Page, query.Limit)
	if s.cache != nil {
		s.cache.Set(ctx, key, result, listingCacheTTL)
	}
	return &result, nil
}

// --- Helpers ---

func buildListFilter(query ListPropertiesQuery) (propertyDomain.ListFilter, error) {
	filter := propertyDomain.ListFilter{
		Location:  query.Location,
		Amenities: query.Amenities,
	}

	if query.MinPrice != "" {
		min, err := decimal.NewFromString(query.MinPrice)
		if err != nil {
			return filter, domain.NewValidationError("invalid min price")
		}
		filter.MinPrice = &min
	}
	if query.MaxPrice != "" {
		max, err := decimal.NewFromString(query.MaxPrice)
		if err != nil {
			return filter, domain.NewValidationError("invalid max price")
		}
		filter.MaxPrice = &max
	}
	if query.PropertyType != "" && query.PropertyType != "all" {
		filter.PropertyType = propertyDomain.PropertyType(query.PropertyType)
	}
	return filter, nil
}

func listingCacheKey(query ListPropertiesQuery) string {
	params := map[string]string{
		"location": query.Location,
		"min":      query.MinPrice,
		"max":      query.MaxPrice,
		"type":     query.PropertyType,
		"page":     strconv.Itoa(query.Page),
		"limit":    strconv.Itoa(query.Limit),
	}
	for i, a := range query.Amenities {
		params["amenity"+strconv.Itoa(i)] = a
	}
	return cache.QueryKey(listingCachePrefix, params)
}

func (s *PropertyService) invalidateListings(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, listingCachePrefix)
	}
}

func (s *PropertyService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
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

func toPropertyDTO(p *propertyDomain.Property) PropertyDTO {
	return PropertyDTO{
		ID:           p.ID(),
		HostID:       p.HostID(),
		Title:        p.Title(),
		Description:  p.Description(),
		Location:     p.Location(),
		NightlyPrice: p.NightlyPrice().StringFixed(2),
		Images:       p.Images(),
		Amenities:    p.Amenities(),
		PropertyType: string(p.PropertyType()),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func toPropertyDTOs(properties []*propertyDomain.Property) []PropertyDTO {
	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		dtos[i] = toPropertyDTO(p)
	}
	return dtos
}
