package engine_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"machikoro/internal/engine"
)

func newMarket(t *testing.T, cat *engine.Catalog, cfg engine.Config) (*engine.Market, []engine.Event) {
	t.Helper()
	m, events, err := engine.NewMarket(cat, cfg, rand.New(rand.NewPCG(3, 3)))
	if err != nil {
		t.Fatalf("NewMarket: %v", err)
	}
	return m, events
}

// establishmentSlots returns the establishment piles currently showing.
func establishmentSlots(t *testing.T, cat *engine.Catalog, m *engine.Market) []engine.Stack {
	t.Helper()
	var out []engine.Stack
	for _, st := range m.Available() {
		card, err := cat.Lookup(st.Card)
		if err != nil {
			t.Fatalf("market lists unknown card %q", st.Card)
		}
		if card.Kind == engine.KindEstablishment {
			out = append(out, st)
		}
	}
	return out
}

func TestClassicMarket(t *testing.T) {
	cat := engine.StandardCatalog()
	cfg := engine.StandardConfig(3)
	m, events := newMarket(t, cat, cfg)
	if len(events) != 0 {
		t.Errorf("classic market should not report a deal, got %d events", len(events))
	}

	avail := m.Available()
	if len(avail) != 19 {
		t.Fatalf("expected 15 establishments and 4 landmarks, got %d stacks", len(avail))
	}
	for i, card := range cat.Establishments(cfg) {
		if avail[i].Card != card.ID || avail[i].Count != card.Stock(3) {
			t.Errorf("stack %d = %+v, want %s x%d", i, avail[i], card.ID, card.Stock(3))
		}
	}
	if m.Count(engine.Stadium) != 3 {
		t.Errorf("majors stock one per player, got %d", m.Count(engine.Stadium))
	}
	if last := avail[len(avail)-1]; last.Card != engine.RadioTower || last.Count != 1 {
		t.Errorf("last stack = %+v, want radio tower singleton", last)
	}
}

func TestClassicMarketSellsOut(t *testing.T) {
	cat := engine.StandardCatalog()
	m, _ := newMarket(t, cat, engine.StandardConfig(2))

	for i := range 6 {
		if _, err := m.Purchase(engine.Mine); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
	}
	if _, err := m.Purchase(engine.Mine); !errors.Is(err, engine.ErrSoldOut) {
		t.Fatalf("seventh mine: got %v, want ErrSoldOut", err)
	}
	if m.Count(engine.Mine) != 0 {
		t.Error("sold out card still offered")
	}
	found := false
	for _, st := range m.Available() {
		if st.Card == engine.Mine {
			found = true
			if st.Count != 0 {
				t.Errorf("mine count = %d, want 0", st.Count)
			}
		}
	}
	if !found {
		t.Error("classic market should keep listing empty piles")
	}

	// Landmarks never run out.
	for range 3 {
		if _, err := m.Purchase(engine.TrainStation); err != nil {
			t.Fatalf("landmark purchase: %v", err)
		}
	}
	if m.Count(engine.TrainStation) != 1 {
		t.Errorf("landmark count = %d, want 1", m.Count(engine.TrainStation))
	}
}

func TestMarketRejects(t *testing.T) {
	cat := engine.StandardCatalog()
	m, _ := newMarket(t, cat, engine.StandardConfig(2))
	tests := []struct {
		card engine.CardID
		want error
	}{
		{"nope", engine.ErrSoldOut},
		{engine.TunaBoat, engine.ErrNotInMarket},
		{engine.Airport, engine.ErrNotInMarket},
	}
	for _, tt := range tests {
		if _, err := m.Purchase(tt.card); !errors.Is(err, tt.want) {
			t.Errorf("Purchase(%q) = %v, want %v", tt.card, err, tt.want)
		}
	}
}

func TestFiveStackRefill(t *testing.T) {
	cat := engine.StandardCatalog()
	cfg := engine.StandardConfig(2)
	cfg.MarketVariant = engine.MarketFiveStacks
	m, events := newMarket(t, cat, cfg)
	if len(events) == 0 {
		t.Fatal("expected market_refilled events for the initial deal")
	}

	slots := establishmentSlots(t, cat, m)
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}

	// Buy out the first pile and check the slot is refilled right away.
	target := slots[0]
	deck := m.DeckSize()
	var refills []engine.Event
	for range target.Count {
		evs, err := m.Purchase(target.Card)
		if err != nil {
			t.Fatalf("purchase %s: %v", target.Card, err)
		}
		refills = append(refills, evs...)
	}
	if len(refills) == 0 {
		t.Fatal("emptying a pile should refill it")
	}
	for _, ev := range refills {
		if ev.Kind != engine.EventMarketRefilled {
			t.Errorf("unexpected event %s", ev.Kind)
		}
	}
	if got := len(establishmentSlots(t, cat, m)); got != 5 {
		t.Errorf("expected 5 slots after refill, got %d", got)
	}
	if m.DeckSize() != deck-len(refills) {
		t.Errorf("deck size = %d, want %d", m.DeckSize(), deck-len(refills))
	}
}

func TestStackMarketNotShowing(t *testing.T) {
	cat := engine.StandardCatalog()
	cfg := engine.StandardConfig(2)
	cfg.MarketVariant = engine.MarketFiveStacks
	m, _ := newMarket(t, cat, cfg)

	showing := map[engine.CardID]bool{}
	for _, st := range establishmentSlots(t, cat, m) {
		showing[st.Card] = true
	}
	for _, card := range cat.Establishments(cfg) {
		if showing[card.ID] {
			continue
		}
		if _, err := m.Purchase(card.ID); !errors.Is(err, engine.ErrNotInMarket) {
			t.Errorf("Purchase(%s) = %v, want ErrNotInMarket", card.ID, err)
		}
		return
	}
	t.Fatal("every establishment is showing")
}

func TestStackMarketRunsDry(t *testing.T) {
	var cards []engine.Card
	for i := range 6 {
		cards = append(cards, engine.Card{
			ID:   engine.CardID(fmt.Sprintf("shop_%d", i)),
			Kind: engine.KindEstablishment,
			Cost: 1,
			Max:  1,
		})
	}
	cat := engine.NewCatalog(cards...)
	cfg := engine.Config{PlayerCount: 2, MarketVariant: engine.MarketFiveStacks}
	m, _ := newMarket(t, cat, cfg)

	if m.DeckSize() != 1 {
		t.Fatalf("deck size = %d, want 1", m.DeckSize())
	}
	first := establishmentSlots(t, cat, m)[0].Card
	evs, err := m.Purchase(first)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if len(evs) != 1 || len(establishmentSlots(t, cat, m)) != 5 {
		t.Fatalf("expected one refill keeping 5 slots, got %d events", len(evs))
	}

	second := establishmentSlots(t, cat, m)[0].Card
	if _, err := m.Purchase(second); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := len(establishmentSlots(t, cat, m)); got != 4 {
		t.Errorf("empty deck should leave the slot empty, got %d slots", got)
	}
	if _, err := m.Purchase(first); !errors.Is(err, engine.ErrSoldOut) {
		t.Errorf("bought-out card: got %v, want ErrSoldOut", err)
	}
}

func TestStackVariantSlots(t *testing.T) {
	tests := []struct {
		variant engine.MarketVariant
		harbor  bool
		slots   int
	}{
		{engine.MarketFiveStacks, false, 5},
		{engine.MarketTenStacks, true, 10},
		{engine.MarketSplitStacks, false, 12},
	}
	cat := engine.StandardCatalog()
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			cfg := engine.StandardConfig(2)
			cfg.HarborExpansion = tt.harbor
			cfg.MarketVariant = tt.variant
			m, _ := newMarket(t, cat, cfg)
			if got := len(establishmentSlots(t, cat, m)); got != tt.slots {
				t.Errorf("got %d slots, want %d", got, tt.slots)
			}
		})
	}
}

func TestSplitStacksSeparatePools(t *testing.T) {
	cat := engine.StandardCatalog()
	cfg := engine.StandardConfig(2)
	cfg.MarketVariant = engine.MarketSplitStacks
	m, _ := newMarket(t, cat, cfg)

	slots := establishmentSlots(t, cat, m)
	for i, st := range slots {
		card, _ := cat.Lookup(st.Card)
		switch {
		case i < 5:
			if card.IsMajor() || card.Activation[0] > 6 {
				t.Errorf("low slot %d holds %s", i, card.ID)
			}
		case i < 10:
			if card.IsMajor() || card.Activation[0] <= 6 {
				t.Errorf("high slot %d holds %s", i, card.ID)
			}
		default:
			if !card.IsMajor() {
				t.Errorf("major slot %d holds %s", i, card.ID)
			}
		}
	}
}
