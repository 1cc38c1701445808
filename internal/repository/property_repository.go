package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lodgeworks/service-rentals/internal/domain"
	propertyDomain "github.com/lodgeworks/service-rentals/internal/domain/property"
)

// PropertyModel is the GORM model for the properties table.
type PropertyModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HostID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text;not null"`
	Location     string          `gorm:"type:varchar(200);not null;index"`
	NightlyPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Images       json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	Amenities    json.RawMessage `gorm:"type:jsonb;not null;default:'[]'"`
	PropertyType string          `gorm:"type:varchar(30);not null;index"`
	Version      int64           `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PropertyModel) TableName() string { return "properties" }

// GormPropertyRepository implements PropertyRepository using GORM.
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository.
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID retrieves a property by its unique identifier.
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	var model PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Property", id.String())
		}
		return nil, domain.NewUnavailableError("failed to find property by ID", err)
	}
	return toDomainProperty(&model)
}

// FindByHostID retrieves all properties owned by a host, newest first.
func (r *GormPropertyRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*propertyDomain.Property, error) {
	var models []PropertyModel
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, domain.NewUnavailableError("failed to find host properties", err)
	}
	return toDomainProperties(models)
}

// List retrieves properties matching the filter, newest first, paginated.
func (r *GormPropertyRepository) List(ctx context.Context, filter propertyDomain.ListFilter, page, limit int) ([]*propertyDomain.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&PropertyModel{})

	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("nightly_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("nightly_price <= ?", *filter.MaxPrice)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", string(filter.PropertyType))
	}
	if len(filter.Amenities) > 0 {
		tags, err := json.Marshal(filter.Amenities)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal amenity filter: %w", err)
		}
		// jsonb containment: the listing's amenities must include every tag.
		query = query.Where("amenities @> ?", string(tags))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to count properties", err)
	}

	var models []PropertyModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to list properties", err)
	}

	properties, err := toDomainProperties(models)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// Save persists a new property.
func (r *GormPropertyRepository) Save(ctx context.Context, p *propertyDomain.Property) error {
	model, err := toPropertyModel(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewUnavailableError("failed to save property", err)
	}
	return nil
}

// Update persists changes to an existing property with optimistic locking.
func (r *GormPropertyRepository) Update(ctx context.Context, p *propertyDomain.Property) error {
	model, err := toPropertyModel(p)
	if err != nil {
		return err
	}

	expectedVersion := p.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&PropertyModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":         model.Title,
			"description":   model.Description,
			"location":      model.Location,
			"nightly_price": model.NightlyPrice,
			"images":        model.Images,
			"amenities":     model.Amenities,
			"property_type": model.PropertyType,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewUnavailableError("failed to update property", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("property was modified by another transaction")
	}
	return nil
}

// Delete removes a property.
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PropertyModel{}).Error; err != nil {
		return domain.NewUnavailableError("failed to delete property", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toPropertyModel(p *propertyDomain.Property) (*PropertyModel, error) {
	images, err := json.Marshal(orEmpty(p.Images()))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	amenities, err := json.Marshal(orEmpty(p.Amenities()))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amenities: %w", err)
	}

	return &PropertyModel{
		ID:           p.ID(),
		HostID:       p.HostID(),
		Title:        p.Title(),
		Description:  p.Description(),
		Location:     p.Location(),
		NightlyPrice: p.NightlyPrice(),
		Images:       images,
		Amenities:    amenities,
		PropertyType: string(p.PropertyType()),
		Version:      p.Version(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}, nil
}

func toDomainProperty(m *PropertyModel) (*propertyDomain.Property, error) {
	var images []string
	if err := json.Unmarshal(m.Images, &images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	var amenities []string
	if err := json.Unmarshal(m.Amenities, &amenities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal amenities: %w", err)
	}

	return propertyDomain.ReconstructProperty(
		m.ID,
		m.HostID,
		m.Title,
		m.Description,
		m.Location,
		m.NightlyPrice,
		images,
		amenities,
		propertyDomain.PropertyType(m.PropertyType),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainProperties(models []PropertyModel) ([]*propertyDomain.Property, error) {
	properties := make([]*propertyDomain.Property, len(models))
	for i, m := range models {
		p, err := toDomainProperty(&m)
		if err != nil {
			return nil, err
		}
		properties[i] = p
	}
	return properties, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
