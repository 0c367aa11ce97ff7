package handler

import (
	"github.com/gofiber/fiber/v2"

	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/service/user"
	"symptra-health/pkg/response"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.Success(profile))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	profile, err := h.userService.UpdateProfile(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(profile, "Profile updated successfully"))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext())
	if err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.List(users, len(users)))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return response.JSON(c, fiber.StatusOK, response.WithMessage(nil, "User deleted successfully"))
}
