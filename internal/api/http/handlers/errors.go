package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/validation"
	apperrors "github.com/spec-kit/freelance-directory/pkg/util/errorutil"
)

// mapServiceError converts domain errors into HTTP errors. Rejected
// activation and reset tokens share one generic response.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrActivationRejected):
		return apperrors.NewBadRequest("invalid or expired activation link")
	case errors.Is(err, domain.ErrResetRejected):
		return apperrors.NewBadRequest("invalid or expired password reset link")
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, domain.ErrUsernameTaken):
		return apperrors.NewConflict("username already taken", map[string]any{"field": "username"})
	case errors.Is(err, domain.ErrValueTooLong):
		return apperrors.NewValidationError("a field exceeds its maximum length", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("invalid credentials")
	}
	return apperrors.MapError(err)
}

// bindAndValidate parses the JSON body into dst and runs struct validation.
func bindAndValidate(c *fiber.Ctx, v *validation.Validator, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := v.Struct(dst); err != nil {
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			details := make(map[string]any, len(fields))
			for k, msg := range fields {
				details[k] = msg
			}
			return apperrors.NewValidationError("validation failed", details)
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// userIDParam returns the :id route parameter, answering 404 for values that
// cannot name a user.
func userIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.NewNotFound("user", nil)
	}
	return id, nil
}
