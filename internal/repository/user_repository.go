package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lodgeworks/service-rentals/internal/domain"
	userDomain "github.com/lodgeworks/service-rentals/internal/domain/user"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(320);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(200)"`
	Image     string    `gorm:"type:text"`
	Role      string    `gorm:"type:varchar(20);not null;default:'UNASSIGNED'"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by their unique identifier.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, domain.NewUnavailableError("failed to find user by ID", err)
	}
	return toDomainUser(&model)
}

// FindByEmail retrieves a user by their unique email address.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, domain.NewUnavailableError("failed to find user by email", err)
	}
	return toDomainUser(&model)
}

// Save persists a new user.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewUnavailableError("failed to save user", err)
	}
	return nil
}

// Update persists changes to an existing user with optimistic locking.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)

	expectedVersion := u.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"image":      model.Image,
			"role":       model.Role,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewUnavailableError("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("user was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Image:     u.Image(),
		Role:      string(u.Role()),
		Version:   u.Version(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) (*userDomain.User, error) {
	role, err := userDomain.ParseRole(m.Role)
	if err != nil {
		return nil, err
	}
	return userDomain.ReconstructUser(
		m.ID,
		m.Email,
		m.Name,
		m.Image,
		role,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
