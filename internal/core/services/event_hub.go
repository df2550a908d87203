package services

import (
	"sync"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
)

// EventClient represents a connected SSE client
type EventClient struct {
	ID      string
	AdminID int64
	Channel chan domain.Event
}

// EventHub manages all SSE connections
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]*EventClient
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]*EventClient),
	}
}

// Register adds a new SSE client
func (h *EventHub) Register(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	logger.Log.Debug().
		Str("client_id", client.ID).
		Int64("admin_id", client.AdminID).
		Int("total", len(h.clients)).
		Msg("SSE client registered")
}

// Unregister removes an SSE client and closes its channel
func (h *EventHub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Channel)
		delete(h.clients, clientID)
		logger.Log.Debug().Str("client_id", clientID).Int("total", len(h.clients)).Msg("SSE client unregistered")
	}
}

// Broadcast sends an event to every client. Clients with a full buffer miss it.
func (h *EventHub) Broadcast(event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Channel <- event:
		default:
			logger.Log.Warn().Str("client_id", client.ID).Str("event", event.Event).Msg("SSE channel full, skipping")
		}
	}
}

// Send delivers an event to one client. It reports false when the client is
// gone or its buffer is full.
func (h *EventHub) Send(clientID string, event domain.Event) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.Channel <- event:
		return true
	default:
		logger.Log.Warn().Str("client_id", clientID).Str("event", event.Event).Msg("SSE channel full, skipping")
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
