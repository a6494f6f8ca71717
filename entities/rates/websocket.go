package rates

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"transdom/schemas"
)

const wsWriteTimeout = 5 * time.Second

// FEED_PROTOCOL is the subprotocol the rate feed answers with. Browser
// clients offer it next to their key, see middlewares.WS_KEY_PROTOCOL_PREFIX.
const FEED_PROTOCOL = "transdom.rates.v1"

// Hub fans rate card changes out to connected WebSocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool
	mu       sync.Mutex
}

// NewHub accepts upgrades from allowedOrigins; "*" allows any origin.
func NewHub(allowedOrigins []string) *Hub {
	allowAll := slices.Contains(allowedOrigins, "*")
	return &Hub{
		upgrader: websocket.Upgrader{
			Subprotocols: []string{FEED_PROTOCOL},
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Broadcast(msg schemas.RateChange) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := client.WriteJSON(msg); err != nil {
			slog.Warn("dropping rate feed client", "remote", client.RemoteAddr().String(), "error", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the connection and keeps it registered until the client
// goes away. Inbound messages are ignored.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		client.Close()
		delete(h.clients, client)
	}
}
