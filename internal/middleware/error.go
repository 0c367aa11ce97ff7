package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"symptra-health/internal/domain"
	"symptra-health/pkg/response"
)

const serverErrorMessage = "Server Error"

// ErrorHandler renders every error returned by a handler as a failed
// envelope. Internal failures are logged and their detail is only echoed
// back when exposeDetail is set.
func ErrorHandler(logger *zap.Logger, exposeDetail bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := serverErrorMessage

		var appErr *domain.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			code = StatusFor(appErr.Kind)
			if code != fiber.StatusInternalServerError {
				message = appErr.Message
			}
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		}

		env := response.Error(message)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			if exposeDetail {
				env.Error = err.Error()
			}
		}

		return response.JSON(c, code, env)
	}
}

// StatusFor maps an error kind onto its HTTP status code.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindInvalidState:
		return fiber.StatusBadRequest
	case domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func BadRequest(message string) error {
	return domain.NewValidationError(message)
}
