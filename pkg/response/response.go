package response

import "github.com/gofiber/fiber/v2"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// WithMessage wraps data and a human readable message.
func WithMessage(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// List wraps a collection together with its size.
func List(data interface{}, count int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count}
}

// Error returns a failed envelope carrying message.
func Error(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// JSON writes env with the given status code.
func JSON(c *fiber.Ctx, status int, env Envelope) error {
	return c.Status(status).JSON(env)
}
