package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	DashboardID() string
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections organized by dashboard
// It is safe for concurrent use
type Hub struct {
	// dashboards maps dashboard ID to a map of client ID to client
	dashboards map[string]map[string]ClientInterface
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		dashboards: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its dashboard
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dashboardID := client.DashboardID()
	clientID := client.ID()

	if h.dashboards[dashboardID] == nil {
		h.dashboards[dashboardID] = make(map[string]ClientInterface)
	}

	h.dashboards[dashboardID][clientID] = client

	log.Debug().
		Str("dashboard_id", dashboardID).
		Str("client_id", clientID).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dashboardID := client.DashboardID()
	clientID := client.ID()

	if clients, ok := h.dashboards[dashboardID]; ok {
		if _, exists := clients[clientID]; exists {
			delete(clients, clientID)

			// Clean up empty dashboard maps
			if len(clients) == 0 {
				delete(h.dashboards, dashboardID)
			}

			log.Debug().
				Str("dashboard_id", dashboardID).
				Str("client_id", clientID).
				Msg("WebSocket client unregistered")
		}
	}
}

// Broadcast sends an event to all clients watching a specific dashboard
func (h *Hub) Broadcast(dashboardID string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("dashboard_id", dashboardID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	clients, ok := h.dashboards[dashboardID]
	if !ok || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clientsCopy := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	// Send to each client asynchronously
	for _, client := range clientsCopy {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Str("dashboard_id", dashboardID).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Str("dashboard_id", dashboardID).
		Str("event_type", event.Type).
		Int("client_count", len(clientsCopy)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients watching a dashboard
func (h *Hub) ClientCount(dashboardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.dashboards[dashboardID]; ok {
		return len(clients)
	}
	return 0
}

// TotalClientCount returns the total number of connected clients across all dashboards
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.dashboards {
		total += len(clients)
	}
	return total
}
