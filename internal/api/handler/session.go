package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabblegame-go/internal/api/response"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// SessionHandler handles session lookup
type SessionHandler struct {
	storage storage.Storage
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(storage storage.Storage) *SessionHandler {
	return &SessionHandler{storage: storage}
}

// Get handles GET /api/v1/sessions/{session_id}. Records are stored under
// the session digest, so the raw id is hashed before the lookup.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["session_id"])

	record, err := h.storage.GetSession(r.Context(), id.Digest())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromRecord(record))
}
