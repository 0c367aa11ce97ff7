package handler

import (
	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service/auth"
)

func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service, cookieName string) {
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.Health)

	authenticate := middleware.AuthRequired(authService, cookieName)
	optionalAuth := middleware.OptionalAuth(authService, cookieName)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Get("/logout", h.Auth.Logout)

	users := api.Group("/users", authenticate)
	users.Get("/profile", h.User.GetProfile)
	users.Put("/profile", h.User.UpdateProfile)
	users.Get("/", adminOnly, h.User.List)
	users.Delete("/:id", adminOnly, h.User.Delete)

	requests := api.Group("/requests", authenticate)
	requests.Post("/", h.Request.Create)
	requests.Get("/", adminOnly, h.Request.ListAll)
	requests.Get("/pending", adminOnly, h.Request.ListPending)
	requests.Get("/user", h.Request.ListMine)
	requests.Put("/:id/process", adminOnly, h.Request.Process)
	requests.Post("/bulk-process", adminOnly, h.Request.BulkProcess)

	articles := api.Group("/articles")
	articles.Get("/", h.Article.ListPublished)
	articles.Get("/admin/all", authenticate, adminOnly, h.Article.ListAll)
	articles.Get("/:id", optionalAuth, h.Article.Get)
	articles.Post("/", authenticate, h.Article.Create)
	articles.Put("/:id", authenticate, h.Article.Update)
	articles.Delete("/:id", authenticate, adminOnly, h.Article.Delete)
	articles.Post("/:id/submit", authenticate, h.Article.Submit)
	articles.Put("/:id/review", authenticate, adminOnly, h.Article.Review)

	faqs := api.Group("/faqs")
	faqs.Get("/", h.FAQ.List)
	faqs.Post("/", authenticate, adminOnly, h.FAQ.Create)
	faqs.Put("/:id", authenticate, adminOnly, h.FAQ.Update)
	faqs.Delete("/:id", authenticate, adminOnly, h.FAQ.Delete)

	reports := api.Group("/analysis", authenticate)
	reports.Post("/report", h.Analysis.Analyze)
	reports.Get("/my-reports", h.Analysis.ListMine)
	reports.Delete("/report/:id", h.Analysis.Delete)

	api.Get("/audit/:entityType/:entityId", authenticate, adminOnly, h.Audit.ListForEntity)
}
