package middleware

import (
	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/domain"
)

var ErrInsufficientRole = domain.NewForbiddenError("Insufficient permissions for this operation")

// RequireRole must run after AuthRequired.
func RequireRole(requiredRole domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return domain.ErrNotAuthenticated
		}

		if user.Role != requiredRole {
			if requiredRole == domain.RoleAdmin {
				return domain.ErrAdminRequired
			}
			return ErrInsufficientRole
		}

		return c.Next()
	}
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetCurrentUser(c).IsAdmin()
}
