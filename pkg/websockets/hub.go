package websockets

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub owns the console UI's WebSocket connections and fans published
// messages out to all of them.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The console serves a local single-operator UI.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Make sure we conform to the interface
var _ Publisher = (*Hub)(nil)

// HandleWS upgrades the request and tracks the connection until the client
// goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	slog.Info("console client connected", "remote_addr", conn.RemoteAddr().String())
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain incoming frames so pings are answered; the first read error
	// means the client is gone.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish sends a message to all connected clients, dropping any stale
// connection that fails to accept the write.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			slog.Info("stale connection found, deleting", "remote_addr", conn.RemoteAddr().String())
			h.drop(conn)
		}
	}
	return nil
}

// ActiveConnections reports how many clients are attached.
func (h *Hub) ActiveConnections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, tracked := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()

	if tracked {
		_ = conn.Close()
	}
}
