package engine_test

import (
	"errors"
	"testing"

	"machikoro/internal/engine"
)

func TestStandardCatalogSizes(t *testing.T) {
	cat := engine.StandardCatalog()
	tests := []struct {
		harbor         bool
		establishments int
		landmarks      int
	}{
		{false, 15, 4},
		{true, 25, 7},
	}
	for _, tt := range tests {
		cfg := engine.Config{HarborExpansion: tt.harbor}
		if got := len(cat.Establishments(cfg)); got != tt.establishments {
			t.Errorf("harbor=%v: %d establishments, want %d", tt.harbor, got, tt.establishments)
		}
		if got := len(cat.Landmarks(cfg)); got != tt.landmarks {
			t.Errorf("harbor=%v: %d landmarks, want %d", tt.harbor, got, tt.landmarks)
		}
	}
}

func TestCatalogExcludesHarbor(t *testing.T) {
	cat := engine.StandardCatalog()
	for _, card := range cat.CardsFor(engine.Config{}) {
		if card.Expansion == engine.ExpansionHarbor {
			t.Errorf("%s should not be active without Harbor", card.ID)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	cat := engine.StandardCatalog()
	card, err := cat.Lookup(engine.FruitAndVegetableMarket)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if card.Cost != 2 || !card.ActivatesOn(11) || !card.ActivatesOn(12) || card.ActivatesOn(10) {
		t.Errorf("unexpected card %+v", card)
	}
	if _, err := cat.Lookup("nope"); !errors.Is(err, engine.ErrUnknownCard) {
		t.Errorf("missing card: got %v, want ErrUnknownCard", err)
	}
}

func TestCatalogCardRules(t *testing.T) {
	cat := engine.StandardCatalog()
	tests := []struct {
		id         engine.CardID
		color      engine.Color
		trigger    engine.Trigger
		capability engine.Capability
	}{
		{engine.WheatField, engine.ColorBlue, engine.OnAnyRoll, engine.CapNone},
		{engine.Cafe, engine.ColorRed, engine.OnOtherRoll, engine.CapNone},
		{engine.Bakery, engine.ColorGreen, engine.OnOwnRoll, engine.CapNone},
		{engine.Stadium, engine.ColorPurple, engine.OnOwnRoll, engine.CapNone},
		{engine.TrainStation, engine.ColorNone, engine.TriggerNone, engine.CapTwoDice},
		{engine.RadioTower, engine.ColorNone, engine.TriggerNone, engine.CapReroll},
		{engine.AmusementPark, engine.ColorNone, engine.OnDoubles, engine.CapBonusTurnOnDoubles},
		{engine.Harbor, engine.ColorNone, engine.TriggerNone, engine.CapAddTwo},
	}
	for _, tt := range tests {
		card, err := cat.Lookup(tt.id)
		if err != nil {
			t.Fatalf("lookup %s: %v", tt.id, err)
		}
		if card.Color != tt.color || card.Trigger != tt.trigger || card.Capability() != tt.capability {
			t.Errorf("%s = %s/%s/%s, want %s/%s/%s", tt.id,
				card.Color, card.Trigger, card.Capability(), tt.color, tt.trigger, tt.capability)
		}
	}

	sushi, _ := cat.Lookup(engine.SushiBar)
	if sushi.Requires != engine.Harbor {
		t.Errorf("sushi bar requires %q, want harbor", sushi.Requires)
	}
	cityHall, _ := cat.Lookup(engine.CityHall)
	if !cityHall.StartsBuilt || cityHall.Cost != 0 {
		t.Errorf("city hall = %+v", cityHall)
	}
}

func TestNewCatalogDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate id")
		}
	}()
	engine.NewCatalog(engine.Card{ID: "a"}, engine.Card{ID: "a"})
}

func TestParseMarketVariant(t *testing.T) {
	tests := []struct {
		in   string
		want engine.MarketVariant
		ok   bool
	}{
		{"", engine.MarketClassic, true},
		{"classic", engine.MarketClassic, true},
		{"Five", engine.MarketFiveStacks, true},
		{"ten", engine.MarketTenStacks, true},
		{"split", engine.MarketSplitStacks, true},
		{"seven", engine.MarketClassic, false},
	}
	for _, tt := range tests {
		got, err := engine.ParseMarketVariant(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseMarketVariant(%q) = %s, %v", tt.in, got, err)
		}
	}
}
