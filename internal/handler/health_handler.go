package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"activeStatus": true,
		"error":        false,
	})
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unavailable",
				"database": err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
