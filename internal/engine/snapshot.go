package engine

// PlayerView is a read-only copy of one player's state.
type PlayerView struct {
	Seat         int          `json:"seat"`
	Name         string       `json:"name"`
	Coins        int          `json:"coins"`
	Holdings     []Holding    `json:"holdings"`
	Landmarks    []CardID     `json:"landmarks"`
	Capabilities []Capability `json:"capabilities,omitempty"`
}

// MarketView is a read-only copy of the market.
type MarketView struct {
	Variant  MarketVariant `json:"variant"`
	Stacks   []Stack       `json:"stacks"`
	DeckSize int           `json:"deck_size"`
}

// Snapshot is a deep copy of the session. Mutating it has no effect on the
// session.
type Snapshot struct {
	Players []PlayerView `json:"players"`
	Market  MarketView   `json:"market"`
	Current int          `json:"current"`
	Phase   Phase        `json:"phase"`
	Turn    TurnContext  `json:"turn"`
	Winner  int          `json:"winner"`
	Harbor  bool         `json:"harbor"`
}

var allCapabilities = []Capability{
	CapTwoDice, CapCupBreadBonus, CapBonusTurnOnDoubles, CapReroll,
	CapAddTwo, CapCoinIfBroke, CapNothingBuiltBonus,
}

func (p *Player) view() PlayerView {
	v := PlayerView{
		Seat:      p.seat,
		Name:      p.name,
		Coins:     p.coins,
		Holdings:  p.Holdings(),
		Landmarks: p.Landmarks(),
	}
	for _, c := range allCapabilities {
		if p.HasCapability(c) {
			v.Capabilities = append(v.Capabilities, c)
		}
	}
	return v
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Market: MarketView{
			Variant:  s.market.variant,
			Stacks:   s.market.Available(),
			DeckSize: s.market.DeckSize(),
		},
		Current: s.turn.Seat,
		Phase:   s.phase,
		Turn:    s.turn.clone(),
		Winner:  s.winner,
		Harbor:  s.cfg.HarborExpansion,
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, p.view())
	}
	return snap
}
