package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freelance-directory/internal/domain"
	apperrors "github.com/spec-kit/freelance-directory/pkg/util/errorutil"
)

// RequireSelfOrSuperuser lets a request through only when the caller owns the
// account named by the route parameter or is a superuser.
func RequireSelfOrSuperuser(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		target := &domain.User{ID: c.Params(param)}
		if !domain.CanViewOrEdit(principal, target) {
			return apperrors.NewForbidden("not allowed to access this account")
		}
		return c.Next()
	}
}
