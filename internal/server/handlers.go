package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"machikoro/internal/archive"
	"machikoro/internal/engine"
	"machikoro/internal/lobby"
	qr "machikoro/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	Archive  archive.Store

	mu   sync.Mutex
	hubs map[string]*Hub
	log  *zap.Logger
	opts []engine.Option
}

func NewHandlers(store archive.Store, log *zap.Logger, opts ...engine.Option) *Handlers {
	if store == nil {
		store = archive.NewMemoryStore()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		LobbyMgr: lobby.NewManager(),
		Archive:  store,
		hubs:     make(map[string]*Hub),
		log:      log,
		opts:     opts,
	}
}

// Hub returns the running hub of a table.
func (h *Handlers) Hub(tableID string) (*Hub, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hub, ok := h.hubs[tableID]
	return hub, ok
}

// CreateTable opens a lobby with the given options and starts its hub.
func (h *Handlers) CreateTable(players int, harbor bool, market string) (*Hub, error) {
	lob := h.LobbyMgr.Create(players)
	if err := lob.Configure(harbor, market); err != nil {
		h.LobbyMgr.Remove(lob.ID)
		return nil, err
	}
	hub := NewHub(lob, h.Archive, h.log, h.opts...)

	h.mu.Lock()
	h.hubs[lob.ID] = hub
	h.mu.Unlock()

	go hub.Run()
	h.log.Info("table created", zap.String("table", lob.ID), zap.Int("seats", lob.MaxPlayers))
	return hub, nil
}

// HandleCreateTable creates a new table and redirects to its shared view.
func (h *Handlers) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	players, _ := strconv.Atoi(q.Get("players"))
	harbor, _ := strconv.ParseBool(q.Get("harbor"))

	hub, err := h.CreateTable(players, harbor, q.Get("market"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/table.html?table=%s", hub.tableID), http.StatusSeeOther)
}

// HandleQR generates a QR code PNG for joining a table from a phone.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	tableID := r.URL.Query().Get("table")
	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	png, err := qr.Generate(qr.JoinURL(r.Host, tableID))
	if err != nil {
		h.log.Error("qr generation", zap.String("table", tableID), zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleHistory returns the archived events of a table as a JSON array.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	tableID := r.URL.Query().Get("table")
	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	events, err := h.Archive.History(r.Context(), tableID)
	if errors.Is(err, archive.ErrNotFound) {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("read history", zap.String("table", tableID), zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tableID := q.Get("table")
	if tableID == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.Hub(tableID)
	if !ok {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade", zap.Error(err))
		return
	}

	client := NewClient(hub, conn, q.Get("player"), ParseClientType(q.Get("type")))
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(GeneratePlayerID()))
}
