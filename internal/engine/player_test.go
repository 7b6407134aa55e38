package engine_test

import (
	"errors"
	"reflect"
	"testing"

	"machikoro/internal/engine"
)

func TestAddCoinsClamps(t *testing.T) {
	p := engine.NewPlayer(0, "Ann", engine.StandardCatalog())
	tests := []struct {
		delta int
		want  int
		coins int
	}{
		{3, 3, 3},
		{-2, -2, 1},
		{-5, -1, 0},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		if got := p.AddCoins(tt.delta); got != tt.want || p.Coins() != tt.coins {
			t.Errorf("AddCoins(%d) = %d (coins %d), want %d (coins %d)", tt.delta, got, p.Coins(), tt.want, tt.coins)
		}
	}
}

func TestPlayerCards(t *testing.T) {
	p := engine.NewPlayer(1, "Ben", engine.StandardCatalog())
	p.GrantCard(engine.Mine)
	p.GrantCard(engine.Forest)
	p.GrantCard(engine.Forest)
	p.GrantCard(engine.Ranch)

	if p.OwnCount(engine.Forest) != 2 {
		t.Errorf("forest count = %d, want 2", p.OwnCount(engine.Forest))
	}
	if n := p.CountCategory(engine.CategoryGear); n != 3 {
		t.Errorf("gear count = %d, want 3", n)
	}
	want := []engine.Holding{
		{Card: engine.Ranch, Count: 1},
		{Card: engine.Forest, Count: 2},
		{Card: engine.Mine, Count: 1},
	}
	if got := p.Holdings(); !reflect.DeepEqual(got, want) {
		t.Errorf("holdings = %v, want %v", got, want)
	}

	if err := p.RemoveCard(engine.Mine); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := p.RemoveCard(engine.Mine); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Errorf("remove missing card: got %v, want ErrInvalidTarget", err)
	}
}

func TestCapabilitiesFollowLandmarks(t *testing.T) {
	p := engine.NewPlayer(0, "Ann", engine.StandardCatalog())
	if p.HasCapability(engine.CapTwoDice) {
		t.Fatal("capability before building")
	}
	if err := p.BuildLandmark(engine.TrainStation); err != nil {
		t.Fatalf("build: %v", err)
	}
	if !p.HasCapability(engine.CapTwoDice) || p.HasCapability(engine.CapReroll) {
		t.Error("capabilities should match built landmarks")
	}
	if err := p.BuildLandmark(engine.TrainStation); !errors.Is(err, engine.ErrAlreadyBuilt) {
		t.Errorf("second build: got %v, want ErrAlreadyBuilt", err)
	}
}
