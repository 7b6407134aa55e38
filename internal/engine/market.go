package engine

import (
	"fmt"
	"math/rand/v2"
)

// Stack is one pile of identical cards on offer.
type Stack struct {
	Card  CardID `json:"card"`
	Count int    `json:"count"`
}

// pool is a set of visible piles. Stack variants back each pool with its
// own deck and keep up to limit distinct piles showing.
type pool struct {
	name   string
	limit  int
	deck   *Deck
	stacks []Stack
}

func (p *pool) find(id CardID) int {
	for i, s := range p.stacks {
		if s.Card == id {
			return i
		}
	}
	return -1
}

// fill draws until limit distinct piles show or the deck runs dry. A drawn
// copy of a card already showing joins its pile. The first new pile is
// placed at slot at when at >= 0.
func (p *pool) fill(at int) []Event {
	var events []Event
	for p.deck != nil && len(p.stacks) < p.limit {
		id, ok := p.deck.Draw()
		if !ok {
			break
		}
		i := p.find(id)
		switch {
		case i >= 0:
			p.stacks[i].Count++
		case at >= 0 && at <= len(p.stacks):
			p.stacks = append(p.stacks, Stack{})
			copy(p.stacks[at+1:], p.stacks[at:])
			p.stacks[at] = Stack{Card: id, Count: 1}
			i, at = at, -1
		default:
			p.stacks = append(p.stacks, Stack{Card: id, Count: 1})
			i = len(p.stacks) - 1
		}
		events = append(events, Event{Kind: EventMarketRefilled, Seat: NoSeat, Payload: MarketRefilled{
			Pool: p.name, Card: id, Count: p.stacks[i].Count,
		}})
	}
	return events
}

// Market is the shared supply. It never touches player balances.
type Market struct {
	catalog   *Catalog
	variant   MarketVariant
	active    map[CardID]bool
	pools     []*pool
	landmarks []CardID
}

// NewMarket lays out the supply for cfg. Stack variants shuffle with rng
// and report the initial deal as market_refilled events.
func NewMarket(cat *Catalog, cfg Config, rng *rand.Rand) (*Market, []Event, error) {
	m := &Market{
		catalog: cat,
		variant: cfg.MarketVariant,
		active:  make(map[CardID]bool),
	}
	for _, card := range cat.Landmarks(cfg) {
		m.active[card.ID] = true
		m.landmarks = append(m.landmarks, card.ID)
	}

	establishments := cat.Establishments(cfg)
	for _, card := range establishments {
		m.active[card.ID] = true
	}

	copies := func(keep func(Card) bool) []CardID {
		var ids []CardID
		for _, card := range establishments {
			if !keep(card) {
				continue
			}
			for range card.Stock(cfg.PlayerCount) {
				ids = append(ids, card.ID)
			}
		}
		return ids
	}
	all := func(Card) bool { return true }
	stacked := func(name string, limit int, keep func(Card) bool) *pool {
		return &pool{name: name, limit: limit, deck: NewDeck(copies(keep), rng)}
	}

	switch cfg.MarketVariant {
	case MarketClassic:
		p := &pool{name: "supply"}
		for _, card := range establishments {
			p.stacks = append(p.stacks, Stack{Card: card.ID, Count: card.Stock(cfg.PlayerCount)})
		}
		m.pools = []*pool{p}
	case MarketFiveStacks:
		m.pools = []*pool{stacked("supply", 5, all)}
	case MarketTenStacks:
		m.pools = []*pool{stacked("supply", 10, all)}
	case MarketSplitStacks:
		m.pools = []*pool{
			stacked("low", 5, func(c Card) bool { return !c.IsMajor() && c.firstActivation() <= 6 }),
			stacked("high", 5, func(c Card) bool { return !c.IsMajor() && c.firstActivation() > 6 }),
			stacked("major", 2, Card.IsMajor),
		}
	default:
		return nil, nil, fmt.Errorf("%w: market variant %d", ErrInvalidConfig, cfg.MarketVariant)
	}

	var events []Event
	for _, p := range m.pools {
		events = append(events, p.fill(-1)...)
	}
	return m, events, nil
}

// Available lists what can be bought right now: establishment piles in slot
// order (catalog order for the classic market), then landmarks as
// singletons. Empty classic piles are listed with a zero count.
func (m *Market) Available() []Stack {
	var out []Stack
	for _, p := range m.pools {
		out = append(out, p.stacks...)
	}
	for _, id := range m.landmarks {
		out = append(out, Stack{Card: id, Count: 1})
	}
	return out
}

// Count returns how many copies of id are currently on offer.
func (m *Market) Count(id CardID) int {
	if !m.active[id] {
		return 0
	}
	for _, l := range m.landmarks {
		if l == id {
			return 1
		}
	}
	for _, p := range m.pools {
		if i := p.find(id); i >= 0 {
			return p.stacks[i].Count
		}
	}
	return 0
}

// DeckSize returns the number of face-down cards across all pools.
func (m *Market) DeckSize() int {
	n := 0
	for _, p := range m.pools {
		if p.deck != nil {
			n += p.deck.Len()
		}
	}
	return n
}

// check reports why id cannot be bought, or nil.
func (m *Market) check(id CardID) error {
	if !m.catalog.Has(id) {
		return fmt.Errorf("%w: %q", ErrSoldOut, id)
	}
	if !m.active[id] {
		return fmt.Errorf("%w: %q", ErrNotInMarket, id)
	}
	if m.Count(id) > 0 {
		return nil
	}
	for _, p := range m.pools {
		if p.find(id) < 0 && p.deck != nil && p.deck.Count(id) > 0 {
			return fmt.Errorf("%w: %q", ErrNotInMarket, id)
		}
	}
	return fmt.Errorf("%w: %q", ErrSoldOut, id)
}

// Purchase takes one copy of id off its pile. Landmarks are never
// decremented. When a stack-variant pile empties, its pool is refilled
// immediately.
func (m *Market) Purchase(id CardID) ([]Event, error) {
	if err := m.check(id); err != nil {
		return nil, err
	}
	for _, p := range m.pools {
		i := p.find(id)
		if i < 0 {
			continue
		}
		p.stacks[i].Count--
		if p.stacks[i].Count > 0 || p.deck == nil {
			return nil, nil
		}
		p.stacks = append(p.stacks[:i], p.stacks[i+1:]...)
		return p.fill(i), nil
	}
	// landmark
	return nil, nil
}

// stock returns the total number of copies of id left in the market,
// piles and decks combined.
func (m *Market) stock(id CardID) int {
	n := 0
	for _, p := range m.pools {
		if i := p.find(id); i >= 0 {
			n += p.stacks[i].Count
		}
		if p.deck != nil {
			n += p.deck.Count(id)
		}
	}
	return n
}
