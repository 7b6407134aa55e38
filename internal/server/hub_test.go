package server

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"machikoro/internal/archive"
	"machikoro/internal/engine"
	"machikoro/internal/lobby"
	"machikoro/internal/protocol"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	return NewHub(lobby.NewLobby("t1"), archive.NewMemoryStore(), nil,
		engine.WithDice(engine.NewScriptedDice(1)))
}

// connect registers a client without a socket; its queue is read directly.
func connect(h *Hub, player string, typ ClientType) *Client {
	c := NewClient(h, nil, player, typ)
	h.addClient(c)
	return c
}

func deliver(h *Hub, c *Client, typ string, payload any) {
	h.handleMessage(IncomingMessage{Client: c, Envelope: protocol.MustEnvelope(typ, payload)})
}

// drain empties a client's queue and returns the envelopes in it.
func drain(t *testing.T, c *Client) []protocol.Envelope {
	t.Helper()
	var out []protocol.Envelope
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return out
			}
			var env protocol.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatalf("queued message: %v", err)
			}
			out = append(out, env)
		default:
			return out
		}
	}
}

func seated(h *Hub) []string {
	var ids []string
	for _, p := range h.lobby.GetPlayers() {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestMessageAfterDisconnectIsDropped(t *testing.T) {
	tests := []struct {
		typ     string
		payload any
	}{
		{string(engine.ActionRoll), map[string]int{"dice": 1}},
		{protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Ann"}},
		{protocol.MsgStartGame, nil},
		{"bogus", nil},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			h := newTestHub(t)
			c := connect(h, "a", ClientSeat)
			h.removeClient(c)
			drain(t, c)

			deliver(h, c, tt.typ, tt.payload)
			if len(seated(h)) != 0 {
				t.Errorf("departed client changed the lobby: %v", seated(h))
			}
		})
	}
}

func TestRemoveClientTwice(t *testing.T) {
	h := newTestHub(t)
	c := connect(h, "a", ClientSeat)
	h.removeClient(c)
	h.removeClient(c)
	if h.connected(c) {
		t.Error("client still registered")
	}
}

func TestDisconnectFreesSeatBeforeStart(t *testing.T) {
	h := newTestHub(t)
	ann := connect(h, "a", ClientSeat)
	ben := connect(h, "b", ClientSeat)
	deliver(h, ann, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Ann"})
	deliver(h, ben, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "b", Name: "Ben"})

	// A second tab for the same player keeps the seat alive.
	annTab := connect(h, "a", ClientSeat)
	h.removeClient(annTab)
	if got := seated(h); len(got) != 2 {
		t.Fatalf("seats after closing a duplicate tab = %v", got)
	}

	drain(t, ben)
	h.removeClient(ann)
	if got := seated(h); len(got) != 1 || got[0] != "b" {
		t.Fatalf("seats after leaving = %v, want [b]", got)
	}
	var update protocol.LobbyUpdate
	queued := drain(t, ben)
	if len(queued) == 0 || queued[len(queued)-1].Type != protocol.MsgLobbyUpdate {
		t.Fatalf("ben should hear about the empty seat, got %v", queued)
	}
	if err := queued[len(queued)-1].Decode(&update); err != nil || len(update.Players) != 1 || update.CanStart {
		t.Errorf("update = %+v, %v", update, err)
	}
}

func TestSeatsStayAfterStart(t *testing.T) {
	h := newTestHub(t)
	ann := connect(h, "a", ClientSeat)
	ben := connect(h, "b", ClientSeat)
	deliver(h, ann, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Ann"})
	deliver(h, ben, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "b", Name: "Ben"})
	deliver(h, ann, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	deliver(h, ben, protocol.MsgReady, protocol.ReadyMsg{Ready: true})

	var update protocol.LobbyUpdate
	queued := drain(t, ann)
	queued[len(queued)-1].Decode(&update)
	if !update.CanStart {
		t.Fatal("lobby should report it can start")
	}

	deliver(h, ben, protocol.MsgStartGame, nil)
	if h.session == nil {
		t.Fatal("game did not start")
	}
	h.removeClient(ann)
	if got := seated(h); len(got) != 2 {
		t.Errorf("seats after start = %v, want both kept", got)
	}

	// Ann's queued roll arrives after she is gone.
	deliver(h, ann, string(engine.ActionRoll), map[string]int{"dice": 1})
	if h.session.Phase() != engine.PhaseAwaitingRoll {
		t.Errorf("phase = %s, departed client should not act", h.session.Phase())
	}
}

func TestClientLogFieldsFixedAtConnect(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHub(lobby.NewLobby("t1"), archive.NewMemoryStore(), zap.New(core))
	c := connect(h, "", ClientSeat)
	deliver(h, c, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Ann"})
	if c.PlayerID != "a" {
		t.Fatalf("player id = %q, want a", c.PlayerID)
	}
	h.removeClient(c)

	entries := logs.FilterMessage("client disconnected").All()
	if len(entries) != 1 {
		t.Fatalf("got %d disconnect entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["player"] != "" || fields["table"] != "t1" {
		t.Errorf("log fields = %v, want the connect-time player id", fields)
	}
}
