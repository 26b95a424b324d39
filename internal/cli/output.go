package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

// PrintEnvelope outputs one server message received while playing
func (o *Output) PrintEnvelope(env protocol.Envelope) error {
	if o.format == "json" {
		o.printJSON(env)
		return nil
	}

	switch env.Type {
	case protocol.TypeError:
		var e protocol.ErrorData
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return err
		}
		fmt.Fprintf(o.w, "! %s (%s)\n", e.Message, e.Code)
	case protocol.TypeNewRoomCreated:
		var d protocol.NewRoomData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		fmt.Fprintf(o.w, "Created room %d as %s\n", d.RoomNumber, d.Player.Name)
	case protocol.TypeJoinRoom, protocol.TypeRejoinRoom:
		var d protocol.JoinRoomData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		fmt.Fprintf(o.w, "In room %d as %s\n", d.RoomNumber, d.Player.Name)
		o.printPlayerNames(d.Players)
	case protocol.TypeNewPlayer:
		var d protocol.PlayerEventData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		fmt.Fprintf(o.w, "%s joined\n", d.Player.Name)
	case protocol.TypePlayerRejoined:
		var d protocol.PlayerEventData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		fmt.Fprintf(o.w, "%s is back\n", d.Player.Name)
	case protocol.TypeNewGame, protocol.TypeNextTurn, protocol.TypeRejoinGame:
		var d protocol.GameStateData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		o.printGameState(d)
	case protocol.TypeGameFinished:
		var d protocol.GameFinishedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		o.printGameFinished(d)
	default:
		o.printJSON(env)
	}
	return nil
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case MoveList:
		o.printMoveList(v)
	case GameList:
		o.printGameList(v)
	case SessionInfo:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Response types mirroring the inspection API

type HealthResult struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

type User struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Connected  bool   `json:"connected"`
}

type GameInfo struct {
	State           string         `json:"state"`
	MoveCount       int            `json:"move_count"`
	Round           int            `json:"round"`
	RemainingTiles  int            `json:"remaining_tiles"`
	CurrentPlayerID string         `json:"current_player_id,omitempty"`
	TurnOrder       []string       `json:"turn_order"`
	Scores          map[string]int `json:"scores"`
}

type Room struct {
	Number int       `json:"number"`
	Users  []User    `json:"users"`
	Game   *GameInfo `json:"game,omitempty"`
}

type RoomList struct {
	Rooms []Room `json:"rooms"`
}

type MoveList struct {
	RoomNumber int                `json:"room_number"`
	Moves      []model.MoveRecord `json:"moves"`
}

type GameList struct {
	RoomNumber int                 `json:"room_number"`
	Games      []model.GameSummary `json:"games"`
}

type SessionInfo struct {
	RoomNumber int       `json:"room_number"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type SessionList struct {
	RoomNumber int           `json:"room_number"`
	Sessions   []SessionInfo `json:"sessions"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Rooms: %d\n", h.Rooms)
}

func (o *Output) printRoom(r Room) {
	fmt.Fprintf(o.w, "Room: %d\n", r.Number)
	fmt.Fprintf(o.w, "Users (%d):\n", len(r.Users))
	for _, u := range r.Users {
		status := ""
		if !u.Connected {
			status = " (disconnected)"
		}
		fmt.Fprintf(o.w, "  - %s (%s)%s\n", u.PlayerName, u.PlayerID, status)
	}

	g := r.Game
	if g == nil {
		fmt.Fprintln(o.w, "Game: none")
		return
	}
	fmt.Fprintf(o.w, "Game: %s, round %d, %d moves, %d tiles left\n", g.State, g.Round, g.MoveCount, g.RemainingTiles)
	if g.CurrentPlayerID != "" {
		fmt.Fprintf(o.w, "Current Player: %s\n", g.CurrentPlayerID)
	}
	for _, id := range g.TurnOrder {
		fmt.Fprintf(o.w, "  %s: %d points\n", id, g.Scores[id])
	}
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Fprintln(o.w, "No rooms")
		return
	}
	for _, r := range l.Rooms {
		state := "no game"
		if r.Game != nil {
			state = r.Game.State
		}
		fmt.Fprintf(o.w, "%d\t%d users\t%s\n", r.Number, len(r.Users), state)
	}
}

func (o *Output) printMoveList(l MoveList) {
	fmt.Fprintf(o.w, "Room %d moves (%d):\n", l.RoomNumber, len(l.Moves))
	for _, m := range l.Moves {
		line := fmt.Sprintf("  #%d %s %s: %d points", m.MoveNumber, m.PlayerID, m.Kind, m.Score)
		if len(m.Words) > 0 {
			line += " [" + strings.Join(m.Words, ", ") + "]"
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printGameList(l GameList) {
	fmt.Fprintf(o.w, "Room %d finished games (%d):\n", l.RoomNumber, len(l.Games))
	for i, g := range l.Games {
		fmt.Fprintf(o.w, "  %d. %d moves, winners: %s\n", i+1, g.MoveCount, joinIDs(g.Winners))
		ids := make([]string, 0, len(g.FinalScores))
		for id := range g.FinalScores {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(o.w, "     %s: %d\n", id, g.FinalScores[model.PlayerID(id)])
		}
	}
}

func (o *Output) printSession(s SessionInfo) {
	fmt.Fprintf(o.w, "Room: %d\n", s.RoomNumber)
	fmt.Fprintf(o.w, "Player: %s (%s)\n", s.PlayerName, s.PlayerID)
	fmt.Fprintf(o.w, "Last Seen: %s\n", s.LastSeenAt.Format(time.RFC3339))
}

func (o *Output) printSessionList(l SessionList) {
	fmt.Fprintf(o.w, "Room %d sessions (%d):\n", l.RoomNumber, len(l.Sessions))
	for _, s := range l.Sessions {
		fmt.Fprintf(o.w, "  - %s (%s), last seen %s\n", s.PlayerName, s.PlayerID, s.LastSeenAt.Format(time.RFC3339))
	}
}

func (o *Output) printPlayerNames(players []protocol.PlayerData) {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	fmt.Fprintf(o.w, "Players: %s\n", strings.Join(names, ", "))
}

func (o *Output) printGameState(g protocol.GameStateData) {
	if m := g.LastMove; m != nil {
		line := fmt.Sprintf("Move %d by %s: %s for %d points", m.MoveNumber, playerName(g.Players, m.PlayerID), m.Kind, m.Score)
		if len(m.Words) > 0 {
			line += " [" + strings.Join(m.Words, ", ") + "]"
		}
		if m.Bingo {
			line += " BINGO"
		}
		fmt.Fprintln(o.w, line)
	}

	o.printBoard(g.Board)

	for _, p := range g.Players {
		marker := " "
		if p.ID == g.CurrentPlayerID {
			marker = "*"
		}
		fmt.Fprintf(o.w, "%s %s: %d\n", marker, p.Name, total(p.Scores))
	}
	fmt.Fprintf(o.w, "Round %d, %d tiles in bag\n", g.Round, g.RemainingTiles)

	rack := make([]string, len(g.Player.Tiles))
	for i, t := range g.Player.Tiles {
		rack[i] = fmt.Sprintf("%s:%s(%d)", t.ID, t.Symbol, t.Points)
	}
	fmt.Fprintf(o.w, "Rack: %s\n", strings.Join(rack, " "))
	if g.CurrentPlayerID == g.Player.ID && g.State == model.GameStateInProgress {
		fmt.Fprintln(o.w, "Your turn")
	}
}

func (o *Output) printGameFinished(d protocol.GameFinishedData) {
	fmt.Fprintln(o.w, "Game finished")
	for _, p := range d.Players {
		fmt.Fprintf(o.w, "  %s: %d\n", p.Name, total(p.Scores))
	}
	names := make([]string, len(d.WinnerIDs))
	for i, id := range d.WinnerIDs {
		names[i] = playerName(d.Players, id)
	}
	fmt.Fprintf(o.w, "Winner: %s\n", strings.Join(names, ", "))
}

func (o *Output) printBoard(b protocol.BoardData) {
	if b.Rows == 0 || b.Columns == 0 {
		return
	}

	cells := make([][]string, b.Rows)
	for r := range cells {
		cells[r] = make([]string, b.Columns)
		for c := range cells[r] {
			cells[r][c] = "."
		}
	}
	for _, f := range b.Fields {
		if f.Row < 0 || f.Row >= b.Rows || f.Column < 0 || f.Column >= b.Columns {
			continue
		}
		cells[f.Row][f.Column] = fieldCell(f)
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < b.Columns; col++ {
		fmt.Fprintf(o.w, "%3d", col)
	}
	fmt.Fprintln(o.w)

	border := "    +" + strings.Repeat("---", b.Columns) + "+"
	fmt.Fprintln(o.w, border)
	for row := 0; row < b.Rows; row++ {
		fmt.Fprintf(o.w, " %2d |", row)
		for col := 0; col < b.Columns; col++ {
			fmt.Fprintf(o.w, " %s ", cells[row][col])
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}

// fieldCell renders a tile letter, or a bonus marker for an empty field
func fieldCell(f protocol.FieldData) string {
	if f.Tile != nil {
		if f.Tile.BlankSymbol != "" {
			return strings.ToLower(f.Tile.BlankSymbol)
		}
		return f.Tile.Symbol
	}
	switch f.Type {
	case model.FieldDoubleLetter:
		return "'"
	case model.FieldTripleLetter:
		return "\""
	case model.FieldDoubleWord:
		return "-"
	case model.FieldTripleWord:
		return "="
	default:
		return "."
	}
}

func playerName(players []protocol.PlayerData, id model.PlayerID) string {
	for _, p := range players {
		if p.ID == id {
			return p.Name
		}
	}
	return string(id)
}

func joinIDs(ids []model.PlayerID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = string(id)
	}
	return strings.Join(s, ", ")
}

func total(scores []int) int {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return sum
}
