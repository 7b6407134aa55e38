package lobby

import (
	"sync"

	"github.com/google/uuid"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
}

func NewManager() *Manager {
	return &Manager{lobbies: make(map[string]*Lobby)}
}

// Create creates a new lobby seating at most maxPlayers and returns it.
// Values outside the engine's range keep the default.
func (m *Manager) Create(maxPlayers int) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()[:8]
	for m.lobbies[id] != nil {
		id = uuid.New().String()[:8]
	}
	l := NewLobby(id)
	if maxPlayers >= l.MinPlayers && maxPlayers <= l.MaxPlayers {
		l.MaxPlayers = maxPlayers
	}
	m.lobbies[id] = l
	return l
}

// Remove forgets a lobby.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}
