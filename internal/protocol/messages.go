package protocol

import "machikoro/internal/engine"

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgTableState  = "table_state"
	MsgEvent       = "event"
	MsgError       = "error"
)

// Message types: Client → Server. In-game actions use the engine's
// ActionType names.
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgConfigure = "configure"
	MsgStartGame = "start_game"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	TableID    string        `json:"table_id"`
	Players    []LobbyPlayer `json:"players"`
	MaxPlayers int           `json:"max_players"`
	Harbor     bool          `json:"harbor"`
	Market     string        `json:"market"`
	Started    bool          `json:"started"`
	CanStart   bool          `json:"can_start"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Seat  int    `json:"seat"`
}

// JoinMsg is sent by a player to take a seat.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ConfigureMsg changes the table options before the game starts.
type ConfigureMsg struct {
	Harbor bool   `json:"harbor"`
	Market string `json:"market"`
}

// TableState is the full game view plus the actions the receiving seat
// may take. TV clients get YourSeat -1 and the current seat's actions.
type TableState struct {
	engine.Snapshot
	YourSeat int                 `json:"your_seat"`
	Legal    []engine.ActionType `json:"legal"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
	Fatal   bool   `json:"fatal,omitempty"`
}
