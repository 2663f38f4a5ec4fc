package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniplan/internal/app/models"
	"github.com/yigit/uniplan/internal/app/models/dto"
	"github.com/yigit/uniplan/internal/pkg/apperrors"
	"github.com/yigit/uniplan/internal/pkg/logger"
)

// HandleAPIError maps domain errors to HTTP responses. Every recoverable
// outcome of the core is an explicit error value; anything unrecognized is a
// storage or infrastructure failure and surfaces as a 500.
func HandleAPIError(c *gin.Context, err error) {
	// Conflicts carry both session ids and the conflict type
	var conflictErr *models.ConflictError
	if errors.As(err, &conflictErr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeSessionConflict, conflictErr.Error()).
			WithDetails(dto.NewConflictResponses([]models.SessionConflict{conflictErr.Conflict}))
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrScheduleNotFound, apperrors.ErrSessionNotFound, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrDuplicateSchedule):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDuplicateSchedule, err.Error())))
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, err.Error())))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
