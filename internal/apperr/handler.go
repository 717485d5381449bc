package apperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler returns the app-wide fiber error handler. Classified errors
// surface their own status and message; everything else is logged in full and
// reported as a generic 500 so internal error text never reaches a client.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var appErr *Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status
			message = appErr.Message
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			if status != fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
		}

		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"error", err.Error(),
		)

		return c.Status(status).JSON(fiber.Map{"message": message})
	}
}
