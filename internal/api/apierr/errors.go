package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
)

// APIError represents an error sent to a client over HTTP or the websocket
type APIError struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details model.Details `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Game error codes
const (
	CodeGameError           = "game_error"
	CodeGameStartFailure    = "game_start_failure"
	CodeGameAlreadyStarted  = "game_already_started"
	CodeGameNotInProgress   = "game_not_in_progress"
	CodeGameFinished        = "game_finished"
	CodeInvalidMove         = "invalid_move"
	CodeInvalidOperation    = "invalid_operation"
	CodePlayerNotFound      = "player_not_found"
	CodePlayerAlreadyExists = "player_already_exists"
)

// Session and server error codes
const (
	CodeServerError          = "server_error"
	CodeRoomNotFound         = "room_not_found"
	CodeNoActiveConnection   = "no_active_connection"
	CodeRoomAlreadyExists    = "room_already_exists"
	CodeNoActiveGame         = "no_active_game"
	CodeInvalidPlayerData    = "invalid_player_data"
	CodePlayerNotInRoom      = "player_not_in_room"
	CodeDuplicatedConnection = "duplicated_connection"
	CodeInternalError        = "internal_error"
	CodeInvalidMessageType   = "invalid_message_type"
	CodeInvalidMessageData   = "invalid_message_data"
	CodeInvalidRequest       = "invalid_request"
	CodeSessionNotFound      = "session_not_found"
)

const internalErrorMessage = "An internal server error occurred."

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

type mapping struct {
	kind   error
	code   string
	status int
}

// mappings pairs every taxonomy kind with its wire code, in match order
var mappings = []mapping{
	{model.ErrGameInternal, CodeGameError, http.StatusInternalServerError},
	{model.ErrGameStartFailure, CodeGameStartFailure, http.StatusConflict},
	{model.ErrGameAlreadyStarted, CodeGameAlreadyStarted, http.StatusConflict},
	{model.ErrGameNotInProgress, CodeGameNotInProgress, http.StatusConflict},
	{model.ErrGameFinished, CodeGameFinished, http.StatusConflict},
	{model.ErrInvalidMove, CodeInvalidMove, http.StatusUnprocessableEntity},
	{model.ErrInvalidOperation, CodeInvalidOperation, http.StatusForbidden},
	{model.ErrPlayerNotFound, CodePlayerNotFound, http.StatusNotFound},
	{model.ErrPlayerAlreadyExists, CodePlayerAlreadyExists, http.StatusConflict},

	{model.ErrSessionInternal, CodeServerError, http.StatusInternalServerError},
	{model.ErrRoomNotFound, CodeRoomNotFound, http.StatusNotFound},
	{model.ErrNoActiveConnection, CodeNoActiveConnection, http.StatusUnauthorized},
	{model.ErrRoomAlreadyExists, CodeRoomAlreadyExists, http.StatusConflict},
	{model.ErrNoActiveGame, CodeNoActiveGame, http.StatusNotFound},
	{model.ErrInvalidPlayerData, CodeInvalidPlayerData, http.StatusBadRequest},
	{model.ErrPlayerNotInRoom, CodePlayerNotInRoom, http.StatusNotFound},
	{model.ErrDuplicatedConnection, CodeDuplicatedConnection, http.StatusConflict},

	{protocol.ErrUnknownMessageType, CodeInvalidMessageType, http.StatusBadRequest},
	{protocol.ErrMalformedMessage, CodeInvalidMessageData, http.StatusBadRequest},
	{model.ErrSessionNotFound, CodeSessionNotFound, http.StatusNotFound},
}

// FromError converts any error into its client-facing form and HTTP status.
// Errors outside the known taxonomies become a generic internal error.
func FromError(err error) (int, APIError) {
	he := toHTTPError(err)
	return he.status, he.apiError
}

// IsInternal reports whether err maps to the generic internal error
func IsInternal(err error) bool {
	_, apiErr := FromError(err)
	return apiErr.Code == CodeInternalError
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	for _, m := range mappings {
		if !errors.Is(err, m.kind) {
			continue
		}
		apiErr := APIError{Code: m.code, Message: err.Error()}

		var gameErr *model.GameError
		var sessionErr *model.SessionError
		switch {
		case errors.As(err, &gameErr):
			apiErr.Message, apiErr.Details = gameErr.Message, gameErr.Details
		case errors.As(err, &sessionErr):
			apiErr.Message, apiErr.Details = sessionErr.Message, sessionErr.Details
		}
		return &httpError{m.status, apiErr}
	}

	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: internalErrorMessage}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: internalErrorMessage}}
}
