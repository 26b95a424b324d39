package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabblegame-go/internal/api/handler"
	"github.com/mcoot/scrabblegame-go/internal/api/middleware"
	"github.com/mcoot/scrabblegame-go/internal/api/response"
	"github.com/mcoot/scrabblegame-go/internal/services/room"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Rooms     room.ManagerInterface
	Storage   storage.Storage
	WebSocket http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	roomHandler := handler.NewRoomHandler(cfg.Rooms, cfg.Storage)
	sessionHandler := handler.NewSessionHandler(cfg.Storage)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler(cfg.Rooms)).Methods(http.MethodGet)

	// Room inspection routes
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{number}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{number}/moves", roomHandler.Moves).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{number}/games", roomHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{number}/sessions", roomHandler.Sessions).Methods(http.MethodGet)

	api.HandleFunc("/sessions/{session_id}", sessionHandler.Get).Methods(http.MethodGet)

	// Game traffic runs over the websocket
	if cfg.WebSocket != nil {
		r.Handle("/ws", recoveryMiddleware(loggingMiddleware(cfg.WebSocket))).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(rooms room.ManagerInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Rooms: len(rooms.Rooms())})
	}
}
