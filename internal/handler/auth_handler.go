package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/config"
	"symptra-health/internal/domain"
	"symptra-health/internal/service/auth"
	"symptra-health/pkg/response"
)

type AuthHandler struct {
	authService  auth.Service
	cookieName   string
	cookieSecure bool
}

func NewAuthHandler(authService auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure && !cfg.IsDevelopment(),
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, time.Now().Add(h.authService.TokenTTL()))
	return response.JSON(c, fiber.StatusCreated, response.Success(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, time.Now().Add(h.authService.TokenTTL()))
	return response.JSON(c, fiber.StatusOK, response.Success(user))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setSessionCookie(c, "", time.Now().Add(-time.Hour))
	return response.JSON(c, fiber.StatusOK, response.WithMessage(nil, "Logged out successfully"))
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
