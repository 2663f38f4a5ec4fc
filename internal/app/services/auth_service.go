package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
	"github.com/yigit/uniplan/internal/pkg/auth"
)

// UserRepository is the storage collaborator for user accounts.
// Implemented by repositories.UserRepository.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService handles authentication
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, int, error)
}

type authService struct {
	userRepo   UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials and issues an access token.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, int, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same response as a wrong password, credentials are not probed
			return nil, "", 0, apperrors.ErrInvalidCredentials
		}
		return nil, "", 0, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", 0, err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, token, expiresIn, nil
}
