package handler

import (
	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service/article"
	"symptra-health/pkg/response"
)

type ArticleHandler struct {
	articleService article.Service
}

func NewArticleHandler(articleService article.Service) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) ListPublished(c *fiber.Ctx) error {
	articles, err := h.articleService.ListPublished(c.UserContext())
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(articles, len(articles)))
}

func (h *ArticleHandler) ListAll(c *fiber.Ctx) error {
	articles, err := h.articleService.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(articles, len(articles)))
}

// Get runs behind OptionalAuth so authors and admins can preview
// unpublished articles.
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrArticleNotFound)
	if err != nil {
		return err
	}

	a, err := h.articleService.Get(c.UserContext(), id, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.Success(a))
}

func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var input domain.ArticleInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.articleService.Create(c.UserContext(), middleware.GetCurrentUser(c), input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusCreated, response.Success(a))
}

func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrArticleNotFound)
	if err != nil {
		return err
	}

	var input domain.ArticleInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.articleService.Update(c.UserContext(), id, middleware.GetCurrentUser(c), input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.Success(a))
}

func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrArticleNotFound)
	if err != nil {
		return err
	}

	if err := h.articleService.Delete(c.UserContext(), id, middleware.GetCurrentUser(c), middleware.GetRequestMeta(c)); err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(nil, "Article deleted successfully"))
}

func (h *ArticleHandler) Submit(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrArticleNotFound)
	if err != nil {
		return err
	}

	a, err := h.articleService.Submit(c.UserContext(), id, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(a, "Article submitted for approval"))
}

func (h *ArticleHandler) Review(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrArticleNotFound)
	if err != nil {
		return err
	}

	var input domain.ReviewArticleInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.articleService.Review(c.UserContext(), id, middleware.GetCurrentUser(c), input, middleware.GetRequestMeta(c))
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(a, "Article "+string(input.Status)))
}
