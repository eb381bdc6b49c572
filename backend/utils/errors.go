package utils

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

// SendServiceError maps a gold service error onto an HTTP response.
func SendServiceError(c *fiber.Ctx, err error) error {
	var typeErr *gold.ModifierTypeNotFoundError
	switch {
	case errors.As(err, &typeErr):
		var details map[string]string
		if len(typeErr.Suggestions) > 0 {
			details = map[string]string{"suggestions": strings.Join(typeErr.Suggestions, ",")}
		}
		return SendNotFound(c, typeErr.Error(), details)

	case gold.IsNotFound(err):
		return SendNotFound(c, err.Error(), nil)

	case gold.IsRetryable(err):
		return SendConflict(c, "The account was modified concurrently, please retry")

	case errors.Is(err, gold.ErrInsufficientBalance):
		return SendError(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", err.Error(), nil)

	case errors.Is(err, gold.ErrInvalidAmount),
		errors.Is(err, gold.ErrInvalidLevel),
		errors.Is(err, gold.ErrInvalidDuration),
		errors.Is(err, gold.ErrInvalidAccountID),
		errors.Is(err, gold.ErrInvalidModifierType),
		errors.Is(err, gold.ErrInvalidUpdate):
		return SendBadRequest(c, err.Error(), nil)
	}

	slog.Error("Request failed",
		slog.String("type", "http"),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return SendInternalServerError(c, "Internal server error")
}
