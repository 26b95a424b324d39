package ws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/scrabblegame-go/internal/api/apierr"
	"github.com/mcoot/scrabblegame-go/internal/dependencies/clock"
	"github.com/mcoot/scrabblegame-go/internal/dependencies/random"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
	"github.com/mcoot/scrabblegame-go/internal/services/game"
	"github.com/mcoot/scrabblegame-go/internal/services/room"
	"github.com/mcoot/scrabblegame-go/internal/services/scoring"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// DispatcherConfig holds the dispatcher's dependencies
type DispatcherConfig struct {
	Rooms       room.ManagerInterface
	Storage     storage.Storage
	Broadcaster *Broadcaster
	GameConfig  model.GameConfig
	Scoring     *scoring.Service
	Random      random.Random
	Clock       clock.Clock
	Logger      *slog.Logger
}

// Dispatcher routes decoded inbound messages to the room manager and the
// game engine. State changes and their broadcasts happen under the room
// lock; storage writes happen after it is released.
type Dispatcher struct {
	rooms       room.ManagerInterface
	storage     storage.Storage
	broadcaster *Broadcaster
	gameConfig  model.GameConfig
	scoring     *scoring.Service
	random      random.Random
	clock       clock.Clock
	newPlayerID func() model.PlayerID
	logger      *slog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		rooms:       cfg.Rooms,
		storage:     cfg.Storage,
		broadcaster: cfg.Broadcaster,
		gameConfig:  cfg.GameConfig,
		scoring:     cfg.Scoring,
		random:      cfg.Random,
		clock:       cfg.Clock,
		newPlayerID: func() model.PlayerID {
			return model.PlayerID(uuid.NewString())
		},
		logger: cfg.Logger.With(slog.String("component", "dispatcher")),
	}
}

// Handle processes one inbound frame from conn. Failures are reported only
// to conn as an error message.
func (d *Dispatcher) Handle(ctx context.Context, conn room.Connection, frame []byte) {
	msg, err := protocol.Decode(frame)
	if err != nil {
		d.replyError(conn, err)
		return
	}

	switch m := msg.(type) {
	case protocol.CreateRoom:
		err = d.createRoom(ctx, conn, m)
	case protocol.JoinRoom:
		err = d.joinRoom(ctx, conn, m)
	case protocol.Rejoin:
		err = d.rejoin(ctx, conn, m)
	case protocol.StartGame:
		err = d.startGame(conn, m)
	case protocol.PlaceTiles:
		err = d.playerMove(ctx, conn, m.SessionID, func(g *game.Game, id model.PlayerID) (*game.MoveResult, error) {
			return g.PlaceTiles(id, m.Placements())
		})
	case protocol.ExchangeTiles:
		err = d.playerMove(ctx, conn, m.SessionID, func(g *game.Game, id model.PlayerID) (*game.MoveResult, error) {
			return g.ExchangeTiles(id, m.TileIDs())
		})
	case protocol.SkipTurn:
		err = d.playerMove(ctx, conn, m.SessionID, func(g *game.Game, id model.PlayerID) (*game.MoveResult, error) {
			return g.SkipTurn(id)
		})
	}

	if err != nil {
		d.replyError(conn, err)
	}
}

// Disconnect detaches conn from every user bound to it
func (d *Dispatcher) Disconnect(conn room.Connection) {
	d.rooms.Disconnect(conn.ID())
}

func (d *Dispatcher) createRoom(ctx context.Context, conn room.Connection, m protocol.CreateRoom) error {
	if _, err := d.rooms.CreateRoom(m.RoomNumber); err != nil {
		return err
	}
	d.purgeSessions(ctx, m.RoomNumber)

	user, err := d.rooms.JoinRoom(m.RoomNumber, conn, model.NewPlayer(d.newPlayerID(), m.PlayerName))
	if err != nil {
		return err
	}

	err = d.rooms.Do(m.RoomNumber, func(r *room.Room) error {
		d.reply(conn, protocol.TypeNewRoomCreated, protocol.NewRoomData{
			RoomNumber: r.Number,
			SessionID:  user.SessionID,
			Player:     protocol.Player(user.Player, true),
		})
		return nil
	})
	d.saveSession(ctx, user)
	return err
}

func (d *Dispatcher) joinRoom(ctx context.Context, conn room.Connection, m protocol.JoinRoom) error {
	user, err := d.rooms.JoinRoom(m.RoomNumber, conn, model.NewPlayer(d.newPlayerID(), m.PlayerName))
	if err != nil {
		return err
	}

	err = d.rooms.Do(m.RoomNumber, func(r *room.Room) error {
		d.broadcaster.Broadcast(r, protocol.TypeNewPlayer, protocol.PlayerEventData{
			Player: protocol.Player(user.Player, false),
		}, user)
		d.reply(conn, protocol.TypeJoinRoom, protocol.JoinRoomData{
			RoomNumber: r.Number,
			SessionID:  user.SessionID,
			Player:     protocol.Player(user.Player, true),
			Players:    protocol.Players(r.Players()),
		})
		return nil
	})
	d.saveSession(ctx, user)
	return err
}

func (d *Dispatcher) rejoin(ctx context.Context, conn room.Connection, m protocol.Rejoin) error {
	user, err := d.rooms.Rejoin(m.RoomNumber, m.SessionID, conn)
	if err != nil {
		return err
	}

	err = d.rooms.Do(m.RoomNumber, func(r *room.Room) error {
		d.reply(conn, protocol.TypeRejoinRoom, protocol.RejoinRoomData{
			RoomNumber: r.Number,
			SessionID:  user.SessionID,
			Player:     protocol.Player(user.Player, true),
			Players:    protocol.Players(r.Players()),
		})

		if g := r.Game(); g != nil {
			if player, ok := g.Player(user.Player.ID); ok {
				d.reply(conn, protocol.TypeRejoinGame, protocol.RejoinGameData{
					GameStateData: protocol.GameState(g, player, nil),
					SessionID:     user.SessionID,
				})
			}
		}

		d.broadcaster.Broadcast(r, protocol.TypePlayerRejoined, protocol.PlayerEventData{
			Player: protocol.Player(user.Player, false),
		}, user)
		return nil
	})
	d.saveSession(ctx, user)
	return err
}

func (d *Dispatcher) startGame(conn room.Connection, m protocol.StartGame) error {
	return d.rooms.DoBySession(m.SessionID, conn.ID(), func(r *room.Room, u *room.User) error {
		if r.Number != m.RoomNumber {
			return model.PlayerNotInRoomError(m.RoomNumber)
		}
		if r.Game() != nil {
			return model.NewGameError(model.ErrGameAlreadyStarted,
				fmt.Sprintf("Game in room %d has already started.", r.Number),
				model.Details{"room_number": r.Number})
		}

		g, err := game.New(d.gameConfig, d.scoring, d.random,
			d.logger.With(slog.Int("room_number", int(r.Number))))
		if err != nil {
			return model.NewGameError(model.ErrGameInternal, "Failed to create game.",
				model.Details{"room_number": r.Number, "error": err.Error()})
		}
		for _, p := range r.Players() {
			if err := g.AddPlayer(p); err != nil {
				return err
			}
		}
		if err := g.Start(); err != nil {
			return err
		}
		if err := r.SetGame(g); err != nil {
			return err
		}

		d.logger.Info("game started",
			slog.Int("room_number", int(r.Number)),
			slog.String("player_id", string(u.Player.ID)))

		d.broadcaster.BroadcastEach(r, protocol.TypeNewGame, func(u *room.User) any {
			return protocol.GameState(g, u.Player, nil)
		})
		return nil
	})
}

type moveFunc func(g *game.Game, playerID model.PlayerID) (*game.MoveResult, error)

// playerMove resolves the session, applies one move and tells the room
func (d *Dispatcher) playerMove(ctx context.Context, conn room.Connection, sessionID model.SessionID, move moveFunc) error {
	var record *model.MoveRecord
	var summary *model.GameSummary

	err := d.rooms.DoBySession(sessionID, conn.ID(), func(r *room.Room, u *room.User) error {
		g := r.Game()
		if g == nil {
			return model.NoActiveGameError(r.Number)
		}

		result, err := move(g, u.Player.ID)
		if err != nil {
			return err
		}

		now := d.clock.Now()
		record = &model.MoveRecord{
			RoomNumber: r.Number,
			MoveNumber: result.MoveNumber,
			PlayerID:   result.PlayerID,
			Kind:       result.Kind,
			Score:      result.Score,
			TileCount:  result.TileCount,
			Words:      result.Words,
			CreatedAt:  now,
		}

		d.broadcaster.BroadcastEach(r, protocol.TypeNextTurn, func(u *room.User) any {
			return protocol.GameState(g, u.Player, result)
		})

		if result.Finished {
			summary = gameSummary(r.Number, g, now)
			d.broadcaster.Broadcast(r, protocol.TypeGameFinished, protocol.GameFinished(g), nil)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := d.storage.AppendMove(ctx, record); err != nil {
		d.logger.Error("failed to persist move",
			slog.Int("room_number", int(record.RoomNumber)),
			slog.Int("move_number", record.MoveNumber),
			slog.String("error", err.Error()))
	}
	if summary != nil {
		if err := d.storage.SaveGameSummary(ctx, summary); err != nil {
			d.logger.Error("failed to persist game summary",
				slog.Int("room_number", int(summary.RoomNumber)),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func gameSummary(number model.RoomNumber, g *game.Game, finishedAt time.Time) *model.GameSummary {
	summary := &model.GameSummary{
		RoomNumber:  number,
		FinalScores: make(map[model.PlayerID]int),
		MoveCount:   g.MoveCount(),
		FinishedAt:  finishedAt,
	}
	for _, p := range g.Players() {
		summary.FinalScores[p.ID] = p.TotalScore()
	}
	for _, w := range g.Winners() {
		summary.Winners = append(summary.Winners, w.ID)
	}
	return summary
}

// saveSession records the user's session; failures are only logged
func (d *Dispatcher) saveSession(ctx context.Context, user *room.User) {
	record := &model.SessionRecord{
		Digest:     user.SessionID.Digest(),
		RoomNumber: user.Room,
		PlayerID:   user.Player.ID,
		PlayerName: user.Player.Name,
		CreatedAt:  user.JoinedAt,
		LastSeenAt: d.clock.Now(),
	}
	if err := d.storage.SaveSession(ctx, record); err != nil {
		d.logger.Error("failed to persist session",
			slog.Int("room_number", int(user.Room)),
			slog.String("player_id", string(user.Player.ID)),
			slog.String("error", err.Error()))
	}
}

// purgeSessions drops sessions persisted for an earlier room with the same number
func (d *Dispatcher) purgeSessions(ctx context.Context, number model.RoomNumber) {
	if err := d.storage.DeleteSessionsForRoom(ctx, number); err != nil {
		d.logger.Error("failed to purge stale sessions",
			slog.Int("room_number", int(number)),
			slog.String("error", err.Error()))
	}
}

// reply delivers the answer to a request that already took effect; send
// failures are logged only
func (d *Dispatcher) reply(conn room.Connection, msgType protocol.MessageType, data any) {
	if err := d.broadcaster.Send(conn, msgType, data); err != nil {
		d.logger.Warn("failed to deliver reply",
			slog.String("connection_id", conn.ID()),
			slog.String("type", string(msgType)),
			slog.String("error", err.Error()))
	}
}

func (d *Dispatcher) replyError(conn room.Connection, err error) {
	_, apiErr := apierr.FromError(err)
	if apiErr.Code == apierr.CodeInternalError {
		d.logger.Error("unexpected error handling message",
			slog.String("connection_id", conn.ID()),
			slog.String("error", err.Error()))
	}

	sendErr := d.broadcaster.Send(conn, protocol.TypeError, protocol.ErrorData{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	})
	if sendErr != nil {
		d.logger.Warn("failed to deliver error",
			slog.String("connection_id", conn.ID()),
			slog.String("code", apiErr.Code),
			slog.String("error", sendErr.Error()))
	}
}
