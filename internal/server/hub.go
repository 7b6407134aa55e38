package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"machikoro/internal/archive"
	"machikoro/internal/engine"
	"machikoro/internal/lobby"
	"machikoro/internal/protocol"
)

const archiveTimeout = 2 * time.Second

// Hub owns one table: its lobby, its engine session and every connection
// watching it. All session calls happen on the Run goroutine.
type Hub struct {
	mu         sync.Mutex
	tableID    string
	lobby      *lobby.Lobby
	session    *engine.Session
	archive    archive.Store
	log        *zap.Logger
	opts       []engine.Option
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
}

// NewHub creates the hub for a table. opts are passed to the engine
// session when the game starts.
func NewHub(lob *lobby.Lobby, store archive.Store, log *zap.Logger, opts ...engine.Option) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		tableID:    lob.ID,
		lobby:      lob,
		archive:    store,
		log:        log.With(zap.String("table", lob.ID)),
		opts:       opts,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.incoming:
			h.handleMessage(msg)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	client.log.Debug("client connected", zap.Stringer("type", client.Type))
	h.sendLobbyUpdate()
	if h.session != nil {
		h.sendStateToClient(client)
	}
}

// removeClient closes the client's queue. Before the game starts a seat
// is freed once its last connection is gone.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	stillHere := false
	for c := range h.clients {
		if c.PlayerID == client.PlayerID {
			stillHere = true
			break
		}
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	client.log.Debug("client disconnected")

	if client.Type != ClientSeat || client.PlayerID == "" || stillHere || h.lobby.IsStarted() {
		return
	}
	if _, err := h.lobby.SeatOf(client.PlayerID); err != nil {
		return
	}
	h.lobby.Leave(client.PlayerID)
	h.sendLobbyUpdate()
}

// connected reports whether client is still registered. Only Run changes
// the client set, so the answer holds until Run's next iteration.
func (h *Hub) connected(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients[client]
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	if !h.connected(msg.Client) {
		msg.Client.log.Debug("dropping message from departed client", zap.String("type", msg.Envelope.Type))
		return
	}
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgConfigure:
		h.handleConfigure(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil || join.PlayerID == "" {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
	if h.session != nil {
		h.sendStateToClient(msg.Client)
	}
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleConfigure(msg IncomingMessage) {
	var cfg protocol.ConfigureMsg
	if err := msg.Envelope.Decode(&cfg); err != nil {
		h.sendError(msg.Client, "invalid configure message")
		return
	}
	if err := h.lobby.Configure(cfg.Harbor, cfg.Market); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	cfg, err := h.lobby.Start()
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	opts := append([]engine.Option{
		engine.WithLogger(h.log),
		engine.WithPlayerNames(h.lobby.Names()...),
	}, h.opts...)
	session, err := engine.NewSession(cfg, opts...)
	if err != nil {
		h.log.Error("create session", zap.Error(err))
		h.sendError(msg.Client, err.Error())
		return
	}
	h.session = session
	h.log.Info("game started", zap.Int("players", cfg.PlayerCount))

	events := session.Opening()
	h.record(events)
	h.sendLobbyUpdate()
	h.broadcastEvents(events)
	h.broadcastState()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.session == nil {
		h.sendError(msg.Client, "game not started")
		return
	}

	action, err := decodeAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	seat, err := h.seatFor(msg.Client)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	events, err := h.session.Apply(seat, action)
	if err != nil {
		if engine.IsFatal(err) {
			h.log.Error("session failed", zap.Int("seat", seat), zap.String("action", string(action.Type)), zap.Error(err))
			h.broadcastAll(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: err.Error(), Fatal: true}))
			return
		}
		h.sendError(msg.Client, err.Error())
		return
	}

	h.record(events)
	h.broadcastEvents(events)
	h.broadcastState()
	if h.session.Phase() == engine.PhaseGameOver {
		h.log.Info("game over", zap.Int("winner", h.session.Winner()))
	}
}

// seatFor resolves who is acting. The shared screen plays for whoever's
// turn it is.
func (h *Hub) seatFor(c *Client) (int, error) {
	if c.Type == ClientTV {
		return h.session.Current(), nil
	}
	return h.lobby.SeatOf(c.PlayerID)
}

func (h *Hub) record(events []engine.Event) {
	if h.archive == nil || len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if err := h.archive.Append(ctx, h.tableID, events); err != nil {
		h.log.Warn("archive events", zap.Int("events", len(events)), zap.Error(err))
	}
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
	}
}

func (h *Hub) broadcastState() {
	if h.session == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.session == nil {
		return
	}
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgTableState, h.stateFor(client)))
}

func (h *Hub) stateFor(client *Client) protocol.TableState {
	state := protocol.TableState{
		Snapshot: h.session.Snapshot(),
		YourSeat: engine.NoSeat,
	}
	if client.Type == ClientTV {
		state.Legal = h.session.Legal(h.session.Current())
		return state
	}
	seat, err := h.lobby.SeatOf(client.PlayerID)
	if errors.Is(err, lobby.ErrUnknownSeat) {
		return state
	}
	state.YourSeat = seat
	state.Legal = h.session.Legal(seat)
	return state
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready, Seat: i}
	}
	settings := h.lobby.GetSettings()
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		TableID:    h.tableID,
		Players:    lps,
		MaxPlayers: h.lobby.MaxPlayers,
		Harbor:     settings.Harbor,
		Market:     settings.Market.String(),
		Started:    h.lobby.IsStarted(),
		CanStart:   h.lobby.CanStart(),
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal", zap.String("type", env.Type), zap.Error(err))
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("client buffer full", zap.String("player", client.PlayerID))
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
