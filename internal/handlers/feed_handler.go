package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/prakoso/catalog-manager-be/internal/realtime"
	"github.com/prakoso/catalog-manager-be/internal/session"
)

// FeedHandler streams catalog change events to the tabs of one session.
type FeedHandler struct {
	Hub    *realtime.Hub
	Secret string
}

func NewFeedHandler(hub *realtime.Hub, secret string) *FeedHandler {
	return &FeedHandler{Hub: hub, Secret: secret}
}

// CatalogFeed authenticates the upgrade from the session cookie, then
// pumps hub events out until the client disconnects.
func (h *FeedHandler) CatalogFeed(c *websocket.Conn) {
	tokenStr := c.Cookies(session.CookieName)
	if tokenStr == "" {
		log.Println("Feed: session cookie missing")
		c.Close()
		return
	}

	sessionID, err := session.ParseToken(h.Secret, tokenStr)
	if err != nil {
		log.Println("Feed: invalid session token:", err)
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("Feed write error:", err)
				return
			}
		}
	}()

	// read loop keeps the connection alive; clients only send pings
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
