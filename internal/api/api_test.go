package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabblegame-go/internal/api/apierr"
	"github.com/mcoot/scrabblegame-go/internal/api/response"
	"github.com/mcoot/scrabblegame-go/internal/dependencies/mocks"
	"github.com/mcoot/scrabblegame-go/internal/factory"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	app := factory.NewTestApp()
	return &testServer{handler: app.Router(), app: app}
}

func (ts *testServer) request(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// play sends one websocket message through the dispatcher and returns the reply
func (ts *testServer) play(t *testing.T, conn *mocks.MockConnection, msgType protocol.MessageType, data any) protocol.Envelope {
	t.Helper()
	frame, err := protocol.Encode(msgType, data)
	require.NoError(t, err)
	ts.app.Dispatcher.Handle(context.Background(), conn, frame)

	var env protocol.Envelope
	require.NoError(t, json.Unmarshal(conn.Last(), &env))
	return env
}

// startedRoom creates room 4 with one player, starts the game and skips once
func (ts *testServer) startedRoom(t *testing.T) protocol.NewRoomData {
	t.Helper()
	conn := mocks.NewMockConnection("c1")

	env := ts.play(t, conn, protocol.TypeCreateRoom, protocol.CreateRoom{RoomNumber: 4, PlayerName: "alice"})
	require.Equal(t, protocol.TypeNewRoomCreated, env.Type)
	var created protocol.NewRoomData
	require.NoError(t, json.Unmarshal(env.Data, &created))

	env = ts.play(t, conn, protocol.TypeStartGame, protocol.StartGame{RoomNumber: 4, SessionID: created.SessionID})
	require.Equal(t, protocol.TypeNewGame, env.Type)
	env = ts.play(t, conn, protocol.TypeSkipTurn, protocol.SkipTurn{SessionID: created.SessionID})
	require.Equal(t, protocol.TypeNextTurn, env.Type)
	return created
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	health := decodeBody[response.Health](t, rr)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Rooms)
}

func TestListRooms(t *testing.T) {
	ts := newTestServer(t)
	ts.startedRoom(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms")
	require.Equal(t, http.StatusOK, rr.Code)

	list := decodeBody[response.RoomList](t, rr)
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, model.RoomNumber(4), list.Rooms[0].Number)
	require.Len(t, list.Rooms[0].Users, 1)
	assert.Equal(t, "alice", list.Rooms[0].Users[0].PlayerName)
	assert.True(t, list.Rooms[0].Users[0].Connected)
}

func TestGetRoom(t *testing.T) {
	ts := newTestServer(t)
	created := ts.startedRoom(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/4")
	require.Equal(t, http.StatusOK, rr.Code)

	room := decodeBody[response.Room](t, rr)
	require.NotNil(t, room.Game)
	assert.Equal(t, model.GameStateInProgress, room.Game.State)
	assert.Equal(t, 1, room.Game.MoveCount)
	assert.Equal(t, 100-7, room.Game.RemainingTiles)
	assert.Equal(t, []model.PlayerID{created.Player.ID}, room.Game.TurnOrder)
	assert.Equal(t, map[model.PlayerID]int{created.Player.ID: 0}, room.Game.Scores)
	assert.NotContains(t, rr.Body.String(), string(created.SessionID))
}

func TestGetRoomErrors(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/9")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	errResp := decodeBody[apierr.ErrorResponse](t, rr)
	assert.Equal(t, apierr.CodeRoomNotFound, errResp.Error.Code)
	assert.Equal(t, "Room 9 does not exist.", errResp.Error.Message)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	errResp = decodeBody[apierr.ErrorResponse](t, rr)
	assert.Equal(t, apierr.CodeInvalidRequest, errResp.Error.Code)
}

func TestRoomMoves(t *testing.T) {
	ts := newTestServer(t)
	created := ts.startedRoom(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/4/moves")
	require.Equal(t, http.StatusOK, rr.Code)

	moves := decodeBody[response.MoveList](t, rr)
	require.Len(t, moves.Moves, 1)
	assert.Equal(t, model.MoveSkip, moves.Moves[0].Kind)
	assert.Equal(t, created.Player.ID, moves.Moves[0].PlayerID)
}

func TestRoomGames(t *testing.T) {
	ts := newTestServer(t)
	created := ts.startedRoom(t)

	// A second skip ends a one player game
	conn := mocks.NewMockConnection("c1")
	env := ts.play(t, conn, protocol.TypeSkipTurn, protocol.SkipTurn{SessionID: created.SessionID})
	require.Equal(t, protocol.TypeGameFinished, env.Type)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/4/games")
	require.Equal(t, http.StatusOK, rr.Code)

	games := decodeBody[response.GameList](t, rr)
	require.Len(t, games.Games, 1)
	assert.Equal(t, []model.PlayerID{created.Player.ID}, games.Games[0].Winners)
	assert.Equal(t, 2, games.Games[0].MoveCount)
}

func TestRoomSessions(t *testing.T) {
	ts := newTestServer(t)
	created := ts.startedRoom(t)

	ts.app.MockClock.Advance(time.Minute)
	bob := mocks.NewMockConnection("c2")
	env := ts.play(t, bob, protocol.TypeJoinRoom, protocol.JoinRoom{RoomNumber: 4, PlayerName: "bob"})
	require.Equal(t, protocol.TypeJoinRoom, env.Type)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/4/sessions")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), string(created.SessionID))
	assert.NotContains(t, rr.Body.String(), "digest")

	list := decodeBody[response.SessionList](t, rr)
	require.Len(t, list.Sessions, 2)
	assert.Equal(t, "alice", list.Sessions[0].PlayerName)
	assert.Equal(t, "bob", list.Sessions[1].PlayerName)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/9/sessions")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[response.SessionList](t, rr).Sessions)
}

func TestGetSession(t *testing.T) {
	ts := newTestServer(t)
	created := ts.startedRoom(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+string(created.SessionID))
	require.Equal(t, http.StatusOK, rr.Code)

	session := decodeBody[response.Session](t, rr)
	assert.Equal(t, model.RoomNumber(4), session.RoomNumber)
	assert.Equal(t, "alice", session.PlayerName)

	rr = ts.request(http.MethodGet, "/api/v1/sessions/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	errResp := decodeBody[apierr.ErrorResponse](t, rr)
	assert.Equal(t, apierr.CodeSessionNotFound, errResp.Error.Code)
}

func TestWebsocketRouteUpgradesThroughMiddleware(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	frame, err := protocol.Encode(protocol.TypeCreateRoom, protocol.CreateRoom{RoomNumber: 1, PlayerName: "alice"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env protocol.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, protocol.TypeNewRoomCreated, env.Type)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/1")
	assert.Equal(t, http.StatusOK, rr.Code)
}
