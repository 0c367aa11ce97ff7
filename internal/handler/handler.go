package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"symptra-health/internal/config"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service"
)

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Request  *RequestHandler
	Article  *ArticleHandler
	FAQ      *FAQHandler
	Analysis *AnalysisHandler
	Audit    *AuditHandler
	Health   *HealthHandler
}

func NewHandlers(services *service.Services, db *sqlx.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(services.Auth, cfg),
		User:     NewUserHandler(services.User),
		Request:  NewRequestHandler(services.Request),
		Article:  NewArticleHandler(services.Article),
		FAQ:      NewFAQHandler(services.FAQ),
		Analysis: NewAnalysisHandler(services.Analysis),
		Audit:    NewAuditHandler(services.Audit),
		Health:   NewHealthHandler(db),
	}
}

// parseID reads a uuid route parameter. Malformed ids cannot reference a
// stored row, so they are reported with notFound.
func parseID(c *fiber.Ctx, param string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}
