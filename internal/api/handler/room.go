package handler

import (
	"net/http"

	"github.com/mcoot/scrabblegame-go/internal/api/response"
	"github.com/mcoot/scrabblegame-go/internal/services/room"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// RoomHandler handles room inspection endpoints
type RoomHandler struct {
	rooms   room.ManagerInterface
	storage storage.Storage
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms room.ManagerInterface, storage storage.Storage) *RoomHandler {
	return &RoomHandler{rooms: rooms, storage: storage}
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.RoomListFromSnapshots(h.rooms.Snapshots()))
}

// Get handles GET /api/v1/rooms/{number}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	number, err := roomNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.rooms.Snapshot(number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromSnapshot(snap))
}

// Moves handles GET /api/v1/rooms/{number}/moves
func (h *RoomHandler) Moves(w http.ResponseWriter, r *http.Request) {
	number, err := roomNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	moves, err := h.storage.ListMoves(r.Context(), number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveList{RoomNumber: number, Moves: moves})
}

// Games handles GET /api/v1/rooms/{number}/games
func (h *RoomHandler) Games(w http.ResponseWriter, r *http.Request) {
	number, err := roomNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.storage.ListGameSummaries(r.Context(), number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameList{RoomNumber: number, Games: games})
}

// Sessions handles GET /api/v1/rooms/{number}/sessions
func (h *RoomHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	number, err := roomNumber(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	records, err := h.storage.ListSessionsForRoom(r.Context(), number)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionListFromRecords(number, records))
}
