package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prakoso/catalog-manager-be/internal/remote"
)

// BrowseHandler serves the remote catalog views. Remote failures come back
// as the uniform success/message/data result with HTTP 200; the client
// renders the message instead of handling transport errors.
type BrowseHandler struct {
	Remote *remote.Client
}

func NewBrowseHandler(client *remote.Client) *BrowseHandler {
	return &BrowseHandler{Remote: client}
}

func (h *BrowseHandler) Products(c *fiber.Ctx) error {
	category := c.Query("category", "all")
	return c.JSON(h.Remote.Products(c.Context(), category))
}

func (h *BrowseHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.Remote.Categories(c.Context()))
}
