package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/uniplan/internal/app/models"
	appRepos "github.com/yigit/uniplan/internal/app/repositories"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
	"github.com/yigit/uniplan/internal/pkg/auth"
)

// Default admin credentials, intended for first login only
const (
	defaultAdminEmail    = "admin@uniplan.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin user)...")

	passwordHash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: passwordHash,
		FullName: "UniPlan Admin",
		RoleType: appModels.RoleAdmin,
	}

	err = userRepo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin user created, change the password after first login")
	return nil
}
