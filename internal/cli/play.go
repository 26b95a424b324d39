package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
)

var errQuit = errors.New("quit")

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game over the websocket endpoint",
		Long: `Connect to the game websocket and play interactively.

Once connected, type one command per line:
  start                           start the room's game
  place ID@ROW,COL[=SYMBOL] ...   place rack tiles; SYMBOL assigns a blank
  exchange ID ...                 exchange rack tiles with the bag
  skip                            pass the turn
  quit                            disconnect

The session of the room is saved so "play rejoin" can resume it.`,
	}

	var name string

	create := &cobra.Command{
		Use:   "create <number>",
		Short: "Create a room and play in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoomNumber(args[0])
			if err != nil {
				return err
			}
			return play(protocol.CreateRoom{RoomNumber: model.RoomNumber(number), PlayerName: name})
		},
	}
	create.Flags().StringVar(&name, "name", "", "Player name")
	_ = create.MarkFlagRequired("name")

	join := &cobra.Command{
		Use:   "join <number>",
		Short: "Join a room and play in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoomNumber(args[0])
			if err != nil {
				return err
			}
			return play(protocol.JoinRoom{RoomNumber: model.RoomNumber(number), PlayerName: name})
		},
	}
	join.Flags().StringVar(&name, "name", "", "Player name")
	_ = join.MarkFlagRequired("name")

	rejoin := &cobra.Command{
		Use:   "rejoin [number session-id]",
		Short: "Resume a session, defaulting to the saved one",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or a room number and session id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := protocol.Rejoin{}
			if len(args) == 2 {
				number, err := parseRoomNumber(args[0])
				if err != nil {
					return err
				}
				msg.RoomNumber = model.RoomNumber(number)
				msg.SessionID = model.SessionID(args[1])
			} else {
				saved, err := cfg.LoadSession()
				if err != nil {
					return err
				}
				msg.RoomNumber = model.RoomNumber(saved.RoomNumber)
				msg.SessionID = model.SessionID(saved.SessionID)
			}
			return play(msg)
		},
	}

	cmd.AddCommand(create, join, rejoin)
	return cmd
}

func play(first protocol.Inbound) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, client.WebSocketURL(), nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	out := NewOutput(cfg.Output)
	if cfg.Verbose {
		out.PrintMessage("Connected to " + client.WebSocketURL())
	}

	state := &playState{save: cfg.SaveSession}
	return playLoop(ctx, conn, first, lines, out, state)
}

// playState tracks the session handed out by the server
type playState struct {
	mu         sync.Mutex
	roomNumber model.RoomNumber
	sessionID  model.SessionID
	save       func(SavedSession) error
}

func (s *playState) current() (model.RoomNumber, model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomNumber, s.sessionID
}

// observe picks up session ids from room and rejoin replies
func (s *playState) observe(env protocol.Envelope) error {
	switch env.Type {
	case protocol.TypeNewRoomCreated, protocol.TypeJoinRoom, protocol.TypeRejoinRoom:
	default:
		return nil
	}

	var d protocol.JoinRoomData
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return err
	}
	if d.SessionID == "" {
		return nil
	}

	s.mu.Lock()
	s.roomNumber = d.RoomNumber
	s.sessionID = d.SessionID
	s.mu.Unlock()

	if s.save == nil {
		return nil
	}
	return s.save(SavedSession{
		RoomNumber: int(d.RoomNumber),
		SessionID:  string(d.SessionID),
		PlayerName: d.Player.Name,
	})
}

// playLoop sends the first message, then forwards parsed input lines until
// quit, end of input, cancellation or the server closing the connection
func playLoop(ctx context.Context, conn *websocket.Conn, first protocol.Inbound, lines <-chan string, out *Output, state *playState) error {
	if err := writeMessage(conn, first); err != nil {
		return err
	}

	readErr := make(chan error, 1)
	go func() {
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			var env protocol.Envelope
			if err := json.Unmarshal(frame, &env); err != nil {
				out.PrintError(fmt.Errorf("unreadable message: %w", err))
				continue
			}
			if err := state.observe(env); err != nil {
				out.PrintError(fmt.Errorf("failed to save session: %w", err))
			}
			if err := out.PrintEnvelope(env); err != nil {
				out.PrintError(err)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return closeConn(conn)
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		case line, ok := <-lines:
			if !ok {
				return closeConn(conn)
			}
			room, session := state.current()
			msg, err := parseCommand(line, room, session)
			if errors.Is(err, errQuit) {
				return closeConn(conn)
			}
			if err != nil {
				out.PrintError(err)
				continue
			}
			if msg == nil {
				continue
			}
			if err := writeMessage(conn, msg); err != nil {
				return err
			}
		}
	}
}

func writeMessage(conn *websocket.Conn, msg protocol.Inbound) error {
	frame, err := protocol.Encode(msg.MessageType(), msg)
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

func closeConn(conn *websocket.Conn) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
	return nil
}

// parseCommand turns one input line into a message; blank lines yield nil
func parseCommand(line string, room model.RoomNumber, session model.SessionID) (protocol.Inbound, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	if cmd == "quit" || cmd == "exit" {
		return nil, errQuit
	}
	if session == "" {
		return nil, fmt.Errorf("not in a room yet")
	}

	switch cmd {
	case "start":
		return protocol.StartGame{RoomNumber: room, SessionID: session}, nil
	case "skip":
		return protocol.SkipTurn{SessionID: session}, nil
	case "exchange":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: exchange ID ...")
		}
		tiles := make([]protocol.TileData, len(args))
		for i, id := range args {
			tiles[i] = protocol.TileData{ID: id}
		}
		return protocol.ExchangeTiles{SessionID: session, TilesData: tiles}, nil
	case "place":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: place ID@ROW,COL[=SYMBOL] ...")
		}
		tiles := make([]protocol.TileData, len(args))
		for i, arg := range args {
			tile, err := parsePlacement(arg)
			if err != nil {
				return nil, err
			}
			tiles[i] = tile
		}
		return protocol.PlaceTiles{SessionID: session, TilesData: tiles}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", fields[0])
	}
}

// parsePlacement parses ID@ROW,COL with an optional =SYMBOL suffix for blanks
func parsePlacement(arg string) (protocol.TileData, error) {
	invalid := fmt.Errorf("invalid placement %q, expected ID@ROW,COL[=SYMBOL]", arg)

	id, rest, ok := strings.Cut(arg, "@")
	if !ok || id == "" {
		return protocol.TileData{}, invalid
	}

	coords, symbol, _ := strings.Cut(rest, "=")
	rowStr, colStr, ok := strings.Cut(coords, ",")
	if !ok {
		return protocol.TileData{}, invalid
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return protocol.TileData{}, invalid
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return protocol.TileData{}, invalid
	}

	return protocol.TileData{
		ID:          id,
		Position:    &model.Position{Row: row, Col: col},
		BlankSymbol: strings.ToUpper(symbol),
	}, nil
}
