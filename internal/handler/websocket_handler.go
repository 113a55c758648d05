package handler

import (
	"context"
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/satboard/satboard-backend/internal/domain"
	"github.com/satboard/satboard-backend/internal/websocket"
)

// DashboardGetter checks that a dashboard exists before a viewer may watch it
type DashboardGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Dashboard, error)
}

// WebSocketHandler handles live-view WebSocket connections. The view is
// public: anyone holding a dashboard's id may watch its settlements, same as
// the shareable page upstream.
type WebSocketHandler struct {
	hub            *websocket.Hub
	dashboards     DashboardGetter
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, dashboards DashboardGetter, allowedOrigins []string) *WebSocketHandler {
	// Build origin lookup map
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		dashboards:     dashboards,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., same-origin or non-browser clients)
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws/:id
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	dashboardID := c.Param("id")
	if dashboardID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing dashboard id")
	}

	if _, err := h.dashboards.GetByID(c.Request().Context(), dashboardID); err != nil {
		log.Debug().Str("dashboard_id", dashboardID).Msg("WebSocket connection rejected: unknown dashboard")
		return echo.NewHTTPError(http.StatusNotFound, "dashboard not found")
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	// Create client and register with hub
	client := websocket.NewClient(conn, dashboardID, h.hub)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return nil
}
