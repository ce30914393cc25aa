package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prakoso/catalog-manager-be/internal/catalog"
	"github.com/prakoso/catalog-manager-be/internal/media"
	"github.com/prakoso/catalog-manager-be/internal/realtime"
	"github.com/prakoso/catalog-manager-be/internal/session"
)

type ProductHandler struct {
	Hub      *realtime.Hub
	Media    *media.Client
	validate *validator.Validate
}

func NewProductHandler(hub *realtime.Hub, mediaClient *media.Client) *ProductHandler {
	return &ProductHandler{
		Hub:      hub,
		Media:    mediaClient,
		validate: newValidator(),
	}
}

// resolveImage uploads a pending data-URI to the media host, returning the
// resolved URL and public id. Without a configured host the data-URI stays
// in the catalog as-is.
func (h *ProductHandler) resolveImage(ctx context.Context, image, filename string) (string, string, error) {
	if !h.Media.Configured() || !media.IsDataURI(image) {
		return image, "", nil
	}

	_, data, err := media.DecodeDataURI(image)
	if err != nil {
		return "", "", err
	}

	result, err := h.Media.Upload(ctx, filename, data)
	if err != nil {
		return "", "", err
	}
	return result.SecureURL, result.PublicID, nil
}

// dropImage best-effort deletes a replaced or orphaned media host image.
func (h *ProductHandler) dropImage(ctx context.Context, publicID string) {
	if !h.Media.Configured() || publicID == "" {
		return
	}
	if err := h.Media.Delete(ctx, publicID); err != nil {
		log.Printf("Failed to delete media image %s: %v", publicID, err)
	}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	sess := session.FromCtx(c)

	products := sess.Catalog.Products(c.Context())
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	sess := session.FromCtx(c)

	var req ProductReq
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

	id := uuid.NewString()
	image, publicID, err := h.resolveImage(c.Context(), req.Image, id)
	if err != nil {
		return imageFailure(c, err)
	}

	product, err := sess.Catalog.AddProduct(c.Context(), catalog.Product{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Image:         image,
		ImagePublicID: publicID,
	})
	if err != nil {
		return catalogFailure(c, err, "Failed to save product")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{Kind: "product.added", ProductID: product.ID})
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product has been added successfully.",
		"data":    product,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	id := c.Params("id")

	var req ProductReq
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

	var stored *catalog.Product
	for _, p := range sess.Catalog.Products(c.Context()) {
		if p.ID == id {
			stored = &p
			break
		}
	}
	if stored == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Product not found",
		})
	}

	image := req.Image
	publicID := stored.ImagePublicID
	if image != stored.Image {
		var err error
		image, publicID, err = h.resolveImage(c.Context(), req.Image, id)
		if err != nil {
			return imageFailure(c, err)
		}
		h.dropImage(c.Context(), stored.ImagePublicID)
	}

	product, err := sess.Catalog.UpdateProduct(c.Context(), catalog.Product{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Image:         image,
		ImagePublicID: publicID,
	})
	if err != nil {
		return catalogFailure(c, err, "Failed to update product")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{Kind: "product.updated", ProductID: product.ID})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product has been updated successfully.",
		"data":    product,
	})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	id := c.Params("id")

	for _, p := range sess.Catalog.Products(c.Context()) {
		if p.ID == id {
			h.dropImage(c.Context(), p.ImagePublicID)
			break
		}
	}

	if err := sess.Catalog.DeleteProduct(c.Context(), id); err != nil {
		return catalogFailure(c, err, "Failed to delete product")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{Kind: "product.deleted", ProductID: id})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product has been deleted successfully.",
	})
}

// Import copies a browsed remote product into the personal catalog. The
// local entry always gets a fresh id; remote ids are numeric and would
// collide across imports.
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	sess := session.FromCtx(c)

	var req ImportProductReq
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

	product, err := sess.Catalog.AddProduct(c.Context(), catalog.Product{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return catalogFailure(c, err, "Failed to save product")
	}

	h.Hub.Publish(sess.ID, realtime.ChangeEvent{Kind: "product.added", ProductID: product.ID})
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product has been added successfully.",
		"data":    product,
	})
}
