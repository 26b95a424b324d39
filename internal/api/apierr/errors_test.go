package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
)

func TestFromErrorMapsEveryKind(t *testing.T) {
	tests := []struct {
		kind   error
		code   string
		status int
	}{
		{model.ErrGameInternal, "game_error", http.StatusInternalServerError},
		{model.ErrGameStartFailure, "game_start_failure", http.StatusConflict},
		{model.ErrGameAlreadyStarted, "game_already_started", http.StatusConflict},
		{model.ErrGameNotInProgress, "game_not_in_progress", http.StatusConflict},
		{model.ErrGameFinished, "game_finished", http.StatusConflict},
		{model.ErrInvalidMove, "invalid_move", http.StatusUnprocessableEntity},
		{model.ErrInvalidOperation, "invalid_operation", http.StatusForbidden},
		{model.ErrPlayerNotFound, "player_not_found", http.StatusNotFound},
		{model.ErrPlayerAlreadyExists, "player_already_exists", http.StatusConflict},
		{model.ErrSessionInternal, "server_error", http.StatusInternalServerError},
		{model.ErrRoomNotFound, "room_not_found", http.StatusNotFound},
		{model.ErrNoActiveConnection, "no_active_connection", http.StatusUnauthorized},
		{model.ErrRoomAlreadyExists, "room_already_exists", http.StatusConflict},
		{model.ErrNoActiveGame, "no_active_game", http.StatusNotFound},
		{model.ErrInvalidPlayerData, "invalid_player_data", http.StatusBadRequest},
		{model.ErrPlayerNotInRoom, "player_not_in_room", http.StatusNotFound},
		{model.ErrDuplicatedConnection, "duplicated_connection", http.StatusConflict},
		{protocol.ErrUnknownMessageType, "invalid_message_type", http.StatusBadRequest},
		{protocol.ErrMalformedMessage, "invalid_message_data", http.StatusBadRequest},
		{model.ErrSessionNotFound, "session_not_found", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, apiErr := FromError(fmt.Errorf("wrapped: %w", tt.kind))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestFromErrorKeepsMessageAndDetails(t *testing.T) {
	err := model.NewGameError(model.ErrInvalidMove, "It is not your turn.", model.Details{"player_id": "p1"})

	_, apiErr := FromError(err)
	assert.Equal(t, "It is not your turn.", apiErr.Message)
	assert.Equal(t, model.Details{"player_id": "p1"}, apiErr.Details)

	_, apiErr = FromError(model.RoomNotFoundError(4))
	assert.Equal(t, "Room 4 does not exist.", apiErr.Message)
	assert.Equal(t, model.RoomNumber(4), apiErr.Details["room_number"])
}

func TestFromErrorHidesUnknownErrors(t *testing.T) {
	status, apiErr := FromError(errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternalError, apiErr.Code)
	assert.Equal(t, "An internal server error occurred.", apiErr.Message)
	assert.Nil(t, apiErr.Details)
	assert.True(t, IsInternal(errors.New("x")))
	assert.False(t, IsInternal(model.ErrRoomNotFound))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewInvalidRequestError("room number must be an integer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeInvalidRequest, body.Error.Code)
	assert.Equal(t, "room number must be an integer", body.Error.Message)
}
