package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"duckstore/internal/apperrors"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler turns any error returned by a handler or middleware into the
// {"error": "..."} envelope. Only messages of application errors reach the
// client; everything else is logged and answered with an opaque 500.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.As(err); ok {
			if appErr.Status() >= fiber.StatusInternalServerError {
				logger.ErrorContext(c.UserContext(), "request failed",
					"method", c.Method(), "path", c.Path(), "code", appErr.Code(), "error", err)
			}
			return c.Status(appErr.Status()).JSON(ErrorResponse{Error: appErr.Message()})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
		}

		logger.ErrorContext(c.UserContext(), "unhandled error",
			"method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: apperrors.ErrPersistence.Message()})
	}
}

func invalidBody(err error) error {
	return apperrors.Validation("invalid request body: " + err.Error())
}
