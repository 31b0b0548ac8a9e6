// Package websocket pushes dashboard updates to connected browsers so every
// screen in the house reflects a completion as soon as it lands.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Message is one dashboard sync event. Entity names the record kind (user,
// chore, invite) and Action what happened to it; Type joins the two for
// clients that dispatch on a single field.
type Message struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     int64          `json:"id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func NewMessage(entity, action string, id int64, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// Hub fans broadcast messages out to every connected dashboard. It holds no
// per-client state beyond the send channel; clients register themselves when
// their connection comes up and unregister when it drops.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes the client and closes its send channel, which stops its
// write loop. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers msg to every connected client. A client whose send
// buffer is full misses the message; the dashboard reconciles on its next
// poll, so dropping beats stalling every other screen.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropped message for slow client", "type", msg.Type)
		}
	}
}

// ClientCount reports how many dashboards are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
