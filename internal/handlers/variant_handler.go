package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prakoso/catalog-manager-be/internal/catalog"
	"github.com/prakoso/catalog-manager-be/internal/realtime"
	"github.com/prakoso/catalog-manager-be/internal/session"
)

type VariantHandler struct {
	Hub      *realtime.Hub
	validate *validator.Validate
}

func NewVariantHandler(hub *realtime.Hub) *VariantHandler {
	return &VariantHandler{Hub: hub, validate: newValidator()}
}

func (h *VariantHandler) Create(c *fiber.Ctx) error {
	sess := session.FromCtx(c)

	var req VariantReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Body request is not valid",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  fieldErrors(err),
		})
	}

	variant, err := sess.Catalog.AddVariant(c.Context(), catalog.Variant{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		Name:      req.Name,
		SKU:       req.SKU,
		Size:      req.Size,
		Color:     req.Color,
		Price:     req.Price,
		Stock:     req.Stock,
	})
	if err != nil {
		return catalogFailure(c, err, "Failed to save variant")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{
		Kind:      "variant.added",
		ProductID: variant.ProductID,
		VariantID: variant.ID,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Variant has been added successfully.",
		"data":    variant,
	})
}

func (h *VariantHandler) Update(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	id := c.Params("id")

	var req VariantReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Body request is not valid",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  fieldErrors(err),
		})
	}

	variant, err := sess.Catalog.UpdateVariant(c.Context(), catalog.Variant{
		ID:        id,
		ProductID: req.ProductID,
		Name:      req.Name,
		SKU:       req.SKU,
		Size:      req.Size,
		Color:     req.Color,
		Price:     req.Price,
		Stock:     req.Stock,
	})
	if err != nil {
		return catalogFailure(c, err, "Failed to update variant")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{
		Kind:      "variant.updated",
		ProductID: variant.ProductID,
		VariantID: variant.ID,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Variant has been updated successfully.",
		"data":    variant,
	})
}

func (h *VariantHandler) Delete(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	id := c.Params("id")

	if err := sess.Catalog.DeleteVariant(c.Context(), id); err != nil {
		return catalogFailure(c, err, "Failed to delete variant")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{Kind: "variant.deleted", VariantID: id})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Variant has been deleted successfully.",
	})
}
