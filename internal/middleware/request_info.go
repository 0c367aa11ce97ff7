package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/domain"
)

func GetIPAddress(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.IP()
}

func GetUserAgent(c *fiber.Ctx) string {
	return c.Get(fiber.HeaderUserAgent)
}

// GetRequestMeta captures the client details recorded with audited actions.
func GetRequestMeta(c *fiber.Ctx) *domain.RequestMeta {
	return &domain.RequestMeta{
		IPAddress: GetIPAddress(c),
		UserAgent: GetUserAgent(c),
	}
}
