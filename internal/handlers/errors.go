package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prakoso/catalog-manager-be/internal/catalog"
	"github.com/prakoso/catalog-manager-be/internal/media"
)

// catalogFailure maps store errors to responses instead of letting them
// escape as unhandled failures.
func catalogFailure(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	case errors.Is(err, catalog.ErrVariantNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Variant not found",
		})
	case errors.Is(err, catalog.ErrDuplicateID):
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "A product with this id already exists",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": fallback,
		})
	}
}

func imageFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, media.ErrUnsupportedImage), errors.Is(err, media.ErrImageTooLarge), errors.Is(err, media.ErrNotDataURI):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	default:
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Failed to upload image",
		})
	}
}
