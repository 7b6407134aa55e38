package engine

import (
	"fmt"
	"strings"
)

// MarketVariant selects how the supply is laid out.
type MarketVariant int

const (
	// MarketClassic shows every establishment at full stock.
	MarketClassic MarketVariant = iota
	// MarketFiveStacks deals five distinct piles from a shuffled deck.
	MarketFiveStacks
	// MarketTenStacks deals ten distinct piles (Harbor rules).
	MarketTenStacks
	// MarketSplitStacks deals five low piles, five high piles and two
	// major piles from three separate decks.
	MarketSplitStacks
)

var marketVariantNames = map[MarketVariant]string{
	MarketClassic:     "classic",
	MarketFiveStacks:  "five",
	MarketTenStacks:   "ten",
	MarketSplitStacks: "split",
}

func (v MarketVariant) String() string {
	if s, ok := marketVariantNames[v]; ok {
		return s
	}
	return "unknown"
}

func (v MarketVariant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// ParseMarketVariant accepts the names printed by String. Empty means classic.
func ParseMarketVariant(s string) (MarketVariant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MarketClassic, nil
	}
	for v, name := range marketVariantNames {
		if name == s {
			return v, nil
		}
	}
	return MarketClassic, fmt.Errorf("%w: unknown market variant %q", ErrInvalidConfig, s)
}

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Config holds configuration for creating a new session.
type Config struct {
	PlayerCount     int
	HarborExpansion bool
	MarketVariant   MarketVariant

	StartingCoins          int
	StartingEstablishments []CardID
	// StartingLandmarks are built for every player in addition to
	// catalog landmarks flagged StartsBuilt.
	StartingLandmarks []CardID

	// PurchasesPerTurn caps purchases and builds per turn. Zero means no cap.
	PurchasesPerTurn int
}

// StandardConfig returns the rulebook setup for n players: three coins,
// a Wheat Field and a Bakery, one purchase per turn.
func StandardConfig(n int) Config {
	return Config{
		PlayerCount:            n,
		MarketVariant:          MarketClassic,
		StartingCoins:          3,
		StartingEstablishments: []CardID{WheatField, Bakery},
		PurchasesPerTurn:       1,
	}
}

// Validate checks cfg against the catalog it will be played with.
func (c Config) Validate(cat *Catalog) error {
	if c.PlayerCount < MinPlayers || c.PlayerCount > MaxPlayers {
		return fmt.Errorf("%w: player count %d outside %d-%d", ErrInvalidConfig, c.PlayerCount, MinPlayers, MaxPlayers)
	}
	if _, ok := marketVariantNames[c.MarketVariant]; !ok {
		return fmt.Errorf("%w: market variant %d", ErrInvalidConfig, c.MarketVariant)
	}
	if c.StartingCoins < 0 {
		return fmt.Errorf("%w: negative starting coins", ErrInvalidConfig)
	}
	if c.PurchasesPerTurn < 0 {
		return fmt.Errorf("%w: negative purchase limit", ErrInvalidConfig)
	}
	check := func(id CardID, kind Kind) error {
		card, err := cat.Lookup(id)
		if err != nil {
			return fmt.Errorf("%w: starting card %q not in catalog", ErrInvalidConfig, id)
		}
		if card.Kind != kind {
			return fmt.Errorf("%w: starting card %q is a %s", ErrInvalidConfig, id, card.Kind)
		}
		if card.Expansion == ExpansionHarbor && !c.HarborExpansion {
			return fmt.Errorf("%w: starting card %q needs the Harbor expansion", ErrInvalidConfig, id)
		}
		return nil
	}
	for _, id := range c.StartingEstablishments {
		if err := check(id, KindEstablishment); err != nil {
			return err
		}
	}
	for _, id := range c.StartingLandmarks {
		if err := check(id, KindLandmark); err != nil {
			return err
		}
	}
	return nil
}
