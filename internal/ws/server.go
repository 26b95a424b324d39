package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket connections and feeds their
// frames to the dispatcher
type Handler struct {
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader
	logger     *slog.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
	closing bool
}

// NewHandler creates a websocket handler. Every origin is accepted.
func NewHandler(dispatcher *Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:  logger.With(slog.String("component", "websocket")),
		clients: make(map[*Client]struct{}),
	}
}

// ServeHTTP runs one connection until the peer disconnects
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closing := h.closing
	h.mu.Unlock()
	if closing {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(conn, h.logger)
	h.track(client)
	defer h.untrack(client)

	h.logger.Info("websocket client connected",
		slog.String("connection_id", client.ID()),
		slog.String("remote_addr", r.RemoteAddr))

	go client.writePump()

	ctx := r.Context()
	client.readPump(func(frame []byte) {
		h.dispatcher.Handle(ctx, client, frame)
	})

	h.dispatcher.Disconnect(client)
	client.close()

	h.logger.Info("websocket client disconnected",
		slog.String("connection_id", client.ID()),
		slog.Duration("connection_duration", time.Since(client.connectedAt)))
}

// Active returns the number of open connections
func (h *Handler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll refuses new connections and closes open ones with a going-away
// frame. Each connection then runs its normal disconnect path.
func (h *Handler) CloseAll() {
	h.mu.Lock()
	h.closing = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, c := range clients {
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = c.conn.Close()
	}

	h.logger.Info("closed websocket connections", slog.Int("count", len(clients)))
}

func (h *Handler) track(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Handler) untrack(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}
