package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
	"github.com/yigit/uniplan/internal/pkg/auth"
)

// memUserRepo serves users by email for auth tests.
type memUserRepo struct {
	users map[string]*models.User
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (AuthService, *auth.JWTService) {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &memUserRepo{users: map[string]*models.User{
		"scheduler@uniplan.app": {
			ID:       3,
			Email:    "scheduler@uniplan.app",
			Password: hash,
			RoleType: models.RoleScheduler,
		},
	}}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uniplan.test",
	})

	return NewAuthService(repo, jwtService, zerolog.Nop()), jwtService
}

func TestLoginSuccess(t *testing.T) {
	svc, jwtService := newAuthFixture(t)

	user, token, expiresIn, err := svc.Login(context.Background(), "scheduler@uniplan.app", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, 3600, expiresIn)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "scheduler@uniplan.app", claims.Email)
	assert.Equal(t, string(models.RoleScheduler), claims.RoleType)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "scheduler@uniplan.app", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	// Unknown account and wrong password are indistinguishable
	_, _, _, err := svc.Login(context.Background(), "nobody@uniplan.app", "whatever")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}
