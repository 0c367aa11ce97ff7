package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service/request"
	"symptra-health/pkg/response"
)

type RequestHandler struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

type bulkProcessResponse struct {
	response.Envelope
	ProcessedRequests []uuid.UUID `json:"processedRequests"`
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateRequestInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Create(c.UserContext(), &userID, input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusCreated, response.WithMessage(req, "Request submitted successfully"))
}

func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	requests, err := h.requestService.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(requests, len(requests)))
}

func (h *RequestHandler) ListPending(c *fiber.Ctx) error {
	requests, err := h.requestService.ListPending(c.UserContext())
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(requests, len(requests)))
}

func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	requests, err := h.requestService.ListMine(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(requests, len(requests)))
}

func (h *RequestHandler) Process(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrRequestNotFound)
	if err != nil {
		return err
	}

	var input domain.ProcessRequestInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Process(c.UserContext(), id, input, middleware.GetCurrentUserID(c), middleware.GetRequestMeta(c))
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(req, fmt.Sprintf("Request %s successfully", req.Status)))
}

func (h *RequestHandler) BulkProcess(c *fiber.Ctx) error {
	var input domain.BulkProcessInput
	if err := c.BodyParser(&input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "requestIds" {
			return domain.ErrRequestIDsRequired
		}
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.requestService.BulkProcess(c.UserContext(), input, middleware.GetCurrentUserID(c), middleware.GetRequestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(bulkProcessResponse{
		Envelope: response.Envelope{
			Success: true,
			Message: fmt.Sprintf("%d requests processed successfully", result.Count),
			Count:   &result.Count,
		},
		ProcessedRequests: result.ProcessedRequests,
	})
}
