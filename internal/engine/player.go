package engine

import "fmt"

// Holding is an owned establishment and its copy count.
type Holding struct {
	Card  CardID `json:"card"`
	Count int    `json:"count"`
}

// Player holds one player's state. Coins never go below zero.
type Player struct {
	seat      int
	name      string
	coins     int
	owned     map[CardID]int
	landmarks map[CardID]bool
	catalog   *Catalog
}

func NewPlayer(seat int, name string, cat *Catalog) *Player {
	return &Player{
		seat:      seat,
		name:      name,
		owned:     make(map[CardID]int),
		landmarks: make(map[CardID]bool),
		catalog:   cat,
	}
}

func (p *Player) Seat() int { return p.seat }
func (p *Player) Name() string { return p.name }
func (p *Player) Coins() int { return p.coins }

// AddCoins adds n (possibly negative) coins, clamping at zero, and returns
// the amount actually applied.
func (p *Player) AddCoins(n int) int {
	if p.coins+n < 0 {
		n = -p.coins
	}
	p.coins += n
	return n
}

// OwnCount returns how many copies of id the player owns.
func (p *Player) OwnCount(id CardID) int {
	return p.owned[id]
}

// GrantCard adds one copy of an establishment.
func (p *Player) GrantCard(id CardID) {
	p.owned[id]++
}

// RemoveCard takes one copy of an establishment away.
func (p *Player) RemoveCard(id CardID) error {
	if p.owned[id] == 0 {
		return fmt.Errorf("%w: seat %d owns no %q", ErrInvalidTarget, p.seat, id)
	}
	p.owned[id]--
	if p.owned[id] == 0 {
		delete(p.owned, id)
	}
	return nil
}

// BuildLandmark marks a landmark as built.
func (p *Player) BuildLandmark(id CardID) error {
	if p.landmarks[id] {
		return fmt.Errorf("%w: %q", ErrAlreadyBuilt, id)
	}
	p.landmarks[id] = true
	return nil
}

func (p *Player) HasLandmark(id CardID) bool {
	return p.landmarks[id]
}

// HasCapability reports whether any built landmark unlocks c.
func (p *Player) HasCapability(c Capability) bool {
	for id := range p.landmarks {
		card, err := p.catalog.Lookup(id)
		if err == nil && card.Capability() == c {
			return true
		}
	}
	return false
}

// CountCategory counts owned establishments of the given category.
func (p *Player) CountCategory(cat Category) int {
	n := 0
	for id, count := range p.owned {
		card, err := p.catalog.Lookup(id)
		if err == nil && card.Category == cat {
			n += count
		}
	}
	return n
}

// Holdings returns owned establishments in catalog order.
func (p *Player) Holdings() []Holding {
	var out []Holding
	for _, card := range p.catalog.cards {
		if n := p.owned[card.ID]; n > 0 {
			out = append(out, Holding{Card: card.ID, Count: n})
		}
	}
	return out
}

// Landmarks returns built landmarks in catalog order.
func (p *Player) Landmarks() []CardID {
	var out []CardID
	for _, card := range p.catalog.cards {
		if p.landmarks[card.ID] {
			out = append(out, card.ID)
		}
	}
	return out
}

// unknownCards returns ids held by the player that the catalog lacks.
func (p *Player) unknownCards() []CardID {
	var out []CardID
	for id := range p.owned {
		if !p.catalog.Has(id) {
			out = append(out, id)
		}
	}
	for id := range p.landmarks {
		if !p.catalog.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
