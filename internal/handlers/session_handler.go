package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prakoso/catalog-manager-be/internal/session"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Me lets the UI confirm its session (and receive the cookie on first
// load) before it starts issuing catalog calls.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	sess := session.FromCtx(c)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         sess.ID,
			"created_at": sess.CreatedAt,
		},
	})
}
