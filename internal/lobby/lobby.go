package lobby

import (
	"errors"
	"fmt"
	"sync"

	"machikoro/internal/engine"
)

var (
	ErrStarted     = errors.New("table already started")
	ErrFull        = errors.New("table is full")
	ErrNotEnough   = errors.New("not enough players")
	ErrNotReady    = errors.New("not all players ready")
	ErrUnknownSeat = errors.New("player is not seated")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
}

// Settings are the table options chosen before the game starts.
type Settings struct {
	Harbor bool
	Market engine.MarketVariant
}

// Lobby is a table waiting for players. Seats are assigned in join order.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Settings   Settings
	Started    bool
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:         id,
		MaxPlayers: engine.MaxPlayers,
		MinPlayers: engine.MinPlayers,
		Settings:   Settings{Market: engine.MarketClassic},
	}
}

// Join adds a player to the lobby. Joining again with a known ID renames
// the player and keeps the seat.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Name = name
			return nil
		}
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the lobby. Seats are fixed once the game
// has started.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// Configure changes the table options. Everyone's ready flag is cleared so
// the new settings get agreed on.
func (l *Lobby) Configure(harbor bool, market string) error {
	variant, err := engine.ParseMarketVariant(market)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	l.Settings = Settings{Harbor: harbor, Market: variant}
	for _, p := range l.Players {
		p.Ready = false
	}
	return nil
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart() == nil
}

func (l *Lobby) canStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return ErrNotEnough
	}
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotReady
		}
	}
	return nil
}

// Start marks the lobby as started and returns the engine configuration
// for the seated players.
func (l *Lobby) Start() (engine.Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canStart(); err != nil {
		return engine.Config{}, err
	}
	cfg := engine.StandardConfig(len(l.Players))
	cfg.HarborExpansion = l.Settings.Harbor
	cfg.MarketVariant = l.Settings.Market
	l.Started = true
	return cfg, nil
}

// SeatOf returns the seat index of a player.
func (l *Lobby) SeatOf(id string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.Players {
		if p.ID == id {
			return i, nil
		}
	}
	return engine.NoSeat, fmt.Errorf("%w: %s", ErrUnknownSeat, id)
}

// IsStarted reports whether the game has begun.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetSettings returns the current table options.
func (l *Lobby) GetSettings() Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Settings
}

// GetPlayers returns a copy of the player list in seat order.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}

// Names returns the player names in seat order.
func (l *Lobby) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.Players))
	for i, p := range l.Players {
		out[i] = p.Name
	}
	return out
}
