package lobby

import (
	"errors"
	"testing"

	"machikoro/internal/engine"
)

func TestJoinAssignsSeats(t *testing.T) {
	l := NewLobby("t1")
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := l.Join(id, "name-"+id); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}
	if err := l.Join("e", "late"); !errors.Is(err, ErrFull) {
		t.Errorf("fifth join: got %v, want ErrFull", err)
	}
	if err := l.Join("b", "Bea"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	seat, err := l.SeatOf("c")
	if err != nil || seat != 2 {
		t.Errorf("SeatOf(c) = %d, %v, want 2", seat, err)
	}
	if _, err := l.SeatOf("zz"); !errors.Is(err, ErrUnknownSeat) {
		t.Errorf("SeatOf(zz): got %v, want ErrUnknownSeat", err)
	}
	if names := l.Names(); names[1] != "Bea" {
		t.Errorf("rejoin should rename, got %q", names[1])
	}

	l.Leave("a")
	if seat, _ := l.SeatOf("b"); seat != 0 {
		t.Errorf("after leave, b seat = %d, want 0", seat)
	}
}

func TestStartRequiresReadyPlayers(t *testing.T) {
	l := NewLobby("t1")
	if _, err := l.Start(); !errors.Is(err, ErrNotEnough) {
		t.Fatalf("empty start: got %v, want ErrNotEnough", err)
	}
	l.Join("a", "Ann")
	l.Join("b", "Ben")
	l.SetReady("a", true)
	if l.CanStart() {
		t.Fatal("should not start with a player unready")
	}
	if _, err := l.Start(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("start: got %v, want ErrNotReady", err)
	}
	l.SetReady("b", true)

	if err := l.Configure(true, "split"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if l.CanStart() {
		t.Fatal("configure should clear ready flags")
	}
	l.SetReady("a", true)
	l.SetReady("b", true)

	cfg, err := l.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if cfg.PlayerCount != 2 || !cfg.HarborExpansion || cfg.MarketVariant != engine.MarketSplitStacks {
		t.Errorf("config = %+v", cfg)
	}
	if _, err := l.Start(); !errors.Is(err, ErrStarted) {
		t.Errorf("second start: got %v, want ErrStarted", err)
	}
	if err := l.Join("c", "Cat"); !errors.Is(err, ErrStarted) {
		t.Errorf("join after start: got %v, want ErrStarted", err)
	}
	if err := l.Join("a", "Ann"); err != nil {
		t.Errorf("reconnect after start: %v", err)
	}
	l.Leave("a")
	if _, err := l.SeatOf("a"); err != nil {
		t.Error("seats are fixed after start")
	}
}

func TestConfigureRejectsUnknownMarket(t *testing.T) {
	l := NewLobby("t1")
	if err := l.Configure(false, "seven"); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
	if got := l.GetSettings().Market; got != engine.MarketClassic {
		t.Errorf("market = %s, want classic", got)
	}
}

func TestManagerCreate(t *testing.T) {
	m := NewManager()
	tests := []struct {
		requested int
		want      int
	}{
		{0, engine.MaxPlayers},
		{3, 3},
		{9, engine.MaxPlayers},
	}
	for _, tt := range tests {
		l := m.Create(tt.requested)
		if l.MaxPlayers != tt.want {
			t.Errorf("Create(%d).MaxPlayers = %d, want %d", tt.requested, l.MaxPlayers, tt.want)
		}
		if m.lobbies[l.ID] != l {
			t.Errorf("Get(%s) did not return the lobby", l.ID)
		}
	}
	a, b := m.Create(2), m.Create(2)
	if a.ID == b.ID {
		t.Error("lobby ids should differ")
	}
	m.Remove(a.ID)
	if m.lobbies[a.ID] != nil {
		t.Error("removed lobby still present")
	}
}
