package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// ChangeEvent tells connected tabs of a session that their catalog moved
// underneath them and which entity moved.
type ChangeEvent struct {
	Kind      string `json:"kind"` // product.added | product.updated | product.deleted | variant.added | variant.updated | variant.deleted
	ProductID string `json:"productId,omitempty"`
	VariantID string `json:"variantId,omitempty"`
}

type Client struct {
	ID        string
	SessionID string
	Send      chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// Publish fans a change event out to every connection of the session.
func (h *Hub) Publish(sessionID string, event ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling change event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.SessionID == sessionID {
			select {
			case client.Send <- payload:
			default:
				// slow consumer, skip rather than block
			}
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("Feed client registered: %s (session: %s)", client.ID, client.SessionID)

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				log.Printf("Feed client unregistered: %s", client.ID)
			}
			h.mu.Unlock()
		}
	}
}
