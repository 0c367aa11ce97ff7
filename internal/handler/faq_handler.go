package handler

import (
	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/domain"
	"symptra-health/internal/service/faq"
	"symptra-health/pkg/response"
)

type FAQHandler struct {
	faqService faq.Service
}

func NewFAQHandler(faqService faq.Service) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

func (h *FAQHandler) List(c *fiber.Ctx) error {
	faqs, err := h.faqService.List(c.UserContext())
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(faqs, len(faqs)))
}

func (h *FAQHandler) Create(c *fiber.Ctx) error {
	var input domain.FAQInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.faqService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusCreated, response.Success(created))
}

func (h *FAQHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrFAQNotFound)
	if err != nil {
		return err
	}

	var input domain.FAQInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.faqService.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.Success(updated))
}

func (h *FAQHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrFAQNotFound)
	if err != nil {
		return err
	}

	if err := h.faqService.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(nil, "FAQ deleted successfully"))
}
