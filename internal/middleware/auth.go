package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"symptra-health/internal/domain"
	"symptra-health/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

var (
	ErrNoToken      = domain.NewUnauthenticatedError("Not authorized to access this route (no token)")
	ErrUserNotFound = domain.NewUnauthenticatedError("Not authorized, user not found")
)

// AuthRequired rejects the request unless it carries a valid session
// credential, read from the cookie first and the Authorization header second.
func AuthRequired(authService auth.Service, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c, cookieName)
		if token == "" {
			return ErrNoToken
		}

		user, err := resolveUser(c, authService, token)
		if err != nil {
			return err
		}

		setCurrentUser(c, user)
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a valid credential is present and
// lets anonymous or invalid credentials through untouched.
func OptionalAuth(authService auth.Service, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := extractToken(c, cookieName); token != "" {
			if user, err := resolveUser(c, authService, token); err == nil {
				setCurrentUser(c, user)
			}
		}
		return c.Next()
	}
}

func resolveUser(c *fiber.Ctx, authService auth.Service, token string) (*domain.User, error) {
	claims, err := authService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func extractToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setCurrentUser(c *fiber.Ctx, user *domain.User) {
	c.Locals(UserContextKey, user)
	c.Locals(UserIDContextKey, user.ID)
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserID returns the caller's id or an authentication error.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID := GetCurrentUserID(c)
	if userID == uuid.Nil {
		return uuid.Nil, domain.ErrNotAuthenticated
	}
	return userID, nil
}
