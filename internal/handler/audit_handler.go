package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service/audit"
	"symptra-health/pkg/response"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListForEntity returns the reviewer trail of one request or article.
func (h *AuditHandler) ListForEntity(c *fiber.Ctx) error {
	entityType := strings.ToUpper(c.Params("entityType"))
	if entityType != domain.AuditEntityRequest && entityType != domain.AuditEntityArticle {
		return middleware.BadRequest("Invalid entity type")
	}

	entityID, err := uuid.Parse(c.Params("entityId"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	logs, err := h.auditService.ListForEntity(c.UserContext(), entityType, entityID)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(logs, len(logs)))
}
