package engine

// CardID is the stable identifier of a catalog entry.
type CardID string

// Kind separates repeatable establishments from one-per-player landmarks.
type Kind int

const (
	KindEstablishment Kind = iota
	KindLandmark
)

func (k Kind) String() string {
	if k == KindLandmark {
		return "Landmark"
	}
	return "Establishment"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// EffectKind tags the shape of an Effect. The resolver dispatches on it.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFixedIncome
	EffectIncomePerOwned
	EffectTransferFromPlayer
	EffectExchangeCards
	EffectGrantCapability
	EffectRerollOrBonusTurn
	EffectRollIncome
)

var effectNames = map[EffectKind]string{
	EffectNone:               "None",
	EffectFixedIncome:        "FixedIncome",
	EffectIncomePerOwned:     "IncomePerOwned",
	EffectTransferFromPlayer: "TransferFromPlayer",
	EffectExchangeCards:      "ExchangeCards",
	EffectGrantCapability:    "GrantCapability",
	EffectRerollOrBonusTurn:  "RerollOrBonusTurn",
	EffectRollIncome:         "RollIncome",
}

func (k EffectKind) String() string {
	if s, ok := effectNames[k]; ok {
		return s
	}
	return "Unknown"
}

func (k EffectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Source says who pays a TransferFromPlayer effect.
type Source int

const (
	SourceRoller    Source = iota // the player who rolled
	SourceEachOther               // every other player, in turn order
	SourceChosen                  // one player picked by the owner
)

func (s Source) MarshalText() ([]byte, error) {
	switch s {
	case SourceEachOther:
		return []byte("EachOther"), nil
	case SourceChosen:
		return []byte("Chosen"), nil
	default:
		return []byte("Roller"), nil
	}
}

// Effect describes what a card does. Only the fields relevant to Kind are
// set; everything else stays zero.
type Effect struct {
	Kind EffectKind `json:"kind"`

	// Amount is the income or fee per activation, or the multiplier for
	// per-owned effects.
	Amount int `json:"amount,omitempty"`

	// PerCategory and PerCard scale Amount by how many matching
	// establishments are owned: by the card owner for income, by the payer
	// for transfers.
	PerCategory []Category `json:"per_category,omitempty"`
	PerCard     CardID     `json:"per_card,omitempty"`

	Source Source `json:"source,omitempty"`
	// MinBalance skips payers holding fewer coins.
	MinBalance int `json:"min_balance,omitempty"`
	// Halve takes half of the payer's coins, rounded down, instead of Amount.
	Halve bool `json:"halve,omitempty"`

	Capability Capability `json:"capability,omitempty"`
}

// Card is an immutable catalog definition.
type Card struct {
	ID         CardID    `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	Cost       int       `json:"cost"`
	Color      Color     `json:"color"`
	Category   Category  `json:"category"`
	Trigger    Trigger   `json:"trigger"`
	Activation []int     `json:"activation,omitempty"`
	Effect     Effect    `json:"effect"`
	Expansion  Expansion `json:"expansion"`

	// Max is the number of copies in the supply. Unique cards ignore it:
	// there is one copy per player and nobody may own two.
	Max    int  `json:"max,omitempty"`
	Unique bool `json:"unique,omitempty"`

	// Requires names a landmark the owner must have built for the card
	// to fire.
	Requires CardID `json:"requires,omitempty"`
	// StartsBuilt marks landmarks every player begins the game with.
	StartsBuilt bool `json:"starts_built,omitempty"`
}

// ActivatesOn reports whether the card fires on the given dice total.
func (c Card) ActivatesOn(total int) bool {
	for _, n := range c.Activation {
		if n == total {
			return true
		}
	}
	return false
}

// Stock returns the supply size for a game with the given player count.
func (c Card) Stock(players int) int {
	if c.Kind == KindLandmark {
		return 1
	}
	if c.Unique {
		return players
	}
	return c.Max
}

// Capability returns what a landmark unlocks, or CapNone.
func (c Card) Capability() Capability {
	if c.Kind != KindLandmark {
		return CapNone
	}
	switch c.Effect.Kind {
	case EffectGrantCapability, EffectRerollOrBonusTurn:
		return c.Effect.Capability
	}
	return CapNone
}

// IsMajor reports whether the card is a purple major establishment.
// Majors cannot be exchanged.
func (c Card) IsMajor() bool {
	return c.Category == CategoryMajor
}

// firstActivation is used to split cards into low and high market piles.
func (c Card) firstActivation() int {
	if len(c.Activation) == 0 {
		return 0
	}
	return c.Activation[0]
}
