package handler

import (
	"errors"

	"go-shopify-sync/internal/service"
	"go-shopify-sync/internal/shopify"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError translates service and gateway errors into HTTP status
// codes. Anything unrecognized is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var precondition *service.PreconditionError
	var validation *service.ValidationError
	var userErrs *shopify.ValidationError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case errors.As(err, &precondition):
		return c.Status(422).JSON(fiber.Map{"error": precondition.Message})
	case errors.As(err, &validation):
		return c.Status(422).JSON(fiber.Map{"error": "Validation failed", "errors": validation.Fields})
	case errors.As(err, &userErrs):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
