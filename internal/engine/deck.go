package engine

import "math/rand/v2"

// Deck is a face-down pile of establishment copies feeding a stack market.
type Deck struct {
	cards []CardID
}

// NewDeck creates a deck from the given copies, shuffled with rng.
func NewDeck(cards []CardID, rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]CardID, len(cards))}
	copy(d.cards, cards)
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (CardID, bool) {
	if len(d.cards) == 0 {
		return "", false
	}
	id := d.cards[0]
	d.cards = d.cards[1:]
	return id, true
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Count returns how many copies of id remain in the deck.
func (d *Deck) Count(id CardID) int {
	n := 0
	for _, c := range d.cards {
		if c == id {
			n++
		}
	}
	return n
}
