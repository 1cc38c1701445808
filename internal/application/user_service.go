package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lodgeworks/service-rentals/internal/auth"
	"github.com/lodgeworks/service-rentals/internal/domain"
	userDomain "github.com/lodgeworks/service-rentals/internal/domain/user"
)

// SignInRequest carries a verified identity assertion from the identity
// provider boundary. The provider never supplies a role.
type SignInRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SetRoleRequest is the one-time role selection payload.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserDTO is the response representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SignInResult bundles the account with its issued tokens.
type SignInResult struct {
	User   UserDTO         `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// UserService orchestrates account use cases.
type UserService struct {
	users      userDomain.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *UserService {
	return &UserService{users: users, jwtManager: jwtManager, logger: logger}
}

// SignIn upserts the account for a verified identity and issues tokens.
// First sign-in creates the user with an unassigned role; later sign-ins
// refresh the profile fields.
func (s *UserService) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}

		u, err = userDomain.NewUser(email, req.Name, req.Image)
		if err != nil {
			return nil, err
		}
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}
		s.logger.Info("new account created", zap.String("user_id", u.ID().String()))
	} else {
		u.RefreshProfile(req.Name, req.Image)
		u.IncrementVersion()
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
	}

	tokens, err := s.jwtManager.GenerateTokenPair(u.ID(), string(u.Role()))
	if err != nil {
		return nil, err
	}

	return &SignInResult{User: toUserDTO(u), Tokens: tokens}, nil
}

// SetRole performs the one-time role selection and reissues tokens carrying
// the new role.
func (s *UserService) SetRole(ctx context.Context, userID uuid.UUID, req SetRoleRequest) (*SignInResult, error) {
	role, err := userDomain.ParseRole(strings.ToUpper(req.Role))
	if err != nil {
		return nil, domain.NewValidationError("role must be RENTER or HOST")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.AssignRole(role); err != nil {
		return nil, err
	}

	u.IncrementVersion()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	tokens, err := s.jwtManager.GenerateTokenPair(u.ID(), string(u.Role()))
	if err != nil {
		return nil, err
	}

	return &SignInResult{User: toUserDTO(u), Tokens: tokens}, nil
}

// GetProfile retrieves the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Image:     u.Image(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}
