package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/prakoso/catalog-manager-be/internal/media"
)

type ImageHandler struct {
	Media    *media.Client
	validate *validator.Validate
}

func NewImageHandler(mediaClient *media.Client) *ImageHandler {
	return &ImageHandler{Media: mediaClient, validate: newValidator()}
}

func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	if !h.Media.Configured() {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "No media host configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Image file not found",
		})
	}

	if file.Size <= 0 || file.Size > media.MaxImageFileSize {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": media.ErrImageTooLarge.Error(),
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": media.ErrUnsupportedImage.Error(),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read image file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read image file",
		})
	}

	result, err := h.Media.Upload(c.Context(), file.Filename, data)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Failed to upload image",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	if !h.Media.Configured() {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "No media host configured",
		})
	}

	var req DeleteImageReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Body request is not valid",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No public_id provided",
		})
	}

	if err := h.Media.Delete(c.Context(), req.PublicID); err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Error deleting file",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image deleted",
	})
}
