package engine

// EventKind identifies events emitted by the engine.
type EventKind string

const (
	EventDiceRolled     EventKind = "dice_rolled"
	EventRollKept       EventKind = "roll_kept"
	EventRerolled       EventKind = "rerolled"
	EventRollAdjusted   EventKind = "roll_adjusted"
	EventIncome         EventKind = "income"
	EventBonusRoll      EventKind = "bonus_roll" // Tuna Boat's shared roll
	EventChoiceRequired EventKind = "choice_required"
	EventCardsExchanged EventKind = "cards_exchanged"
	EventCardPurchased  EventKind = "card_purchased"
	EventLandmarkBuilt  EventKind = "landmark_built"
	EventMarketRefilled EventKind = "market_refilled"
	EventPhaseChanged   EventKind = "phase_changed"
	EventTurnEnded      EventKind = "turn_ended"
	EventBonusTurn      EventKind = "bonus_turn"
	EventTurnStarted    EventKind = "turn_started"
	EventGameOver       EventKind = "game_over"
)

// NoSeat marks events not attributed to a player.
const NoSeat = -1

// Event is emitted by the engine after state changes. Payload holds one of
// the payload types below, chosen by Kind.
type Event struct {
	Kind    EventKind `json:"kind"`
	Seat    int       `json:"seat"`
	Payload any       `json:"payload,omitempty"`
}

// Roll is the payload of dice_rolled, rerolled and bonus_roll.
type Roll struct {
	Dice    []int `json:"dice"`
	Total   int   `json:"total"`
	Doubles bool  `json:"doubles"`
}

// RollKept is the payload of roll_kept.
type RollKept struct {
	Total int `json:"total"`
}

// RollAdjusted is the payload of roll_adjusted.
type RollAdjusted struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Income records one atomic coin movement. Payer equals Payee when the
// bank pays.
type Income struct {
	Payer    int    `json:"payer"`
	Payee    int    `json:"payee"`
	Amount   int    `json:"amount"`
	Card     CardID `json:"card"`
	FromBank bool   `json:"from_bank"`
	// Shortfall is what the payer could not cover.
	Shortfall int `json:"shortfall,omitempty"`
}

// ChoiceKind is the decision a pending major establishment is waiting on.
type ChoiceKind string

const (
	ChoiceTarget   ChoiceKind = "target"   // pick a player to pay you
	ChoiceExchange ChoiceKind = "exchange" // swap one establishment
)

// ChoiceRequired is the payload of choice_required.
type ChoiceRequired struct {
	Card    CardID     `json:"card"`
	Choice  ChoiceKind `json:"choice"`
	Targets []int      `json:"targets"`
}

// CardsExchanged is the payload of cards_exchanged.
type CardsExchanged struct {
	Target int    `json:"target"`
	Gave   CardID `json:"gave"`
	Took   CardID `json:"took"`
}

// CardPurchased is the payload of card_purchased.
type CardPurchased struct {
	Card  CardID `json:"card"`
	Cost  int    `json:"cost"`
	Coins int    `json:"coins"`
}

// LandmarkBuilt is the payload of landmark_built.
type LandmarkBuilt struct {
	Card  CardID `json:"card"`
	Cost  int    `json:"cost"`
	Coins int    `json:"coins"`
}

// MarketRefilled is the payload of market_refilled.
type MarketRefilled struct {
	Pool  string `json:"pool"`
	Card  CardID `json:"card"`
	Count int    `json:"count"`
}

// PhaseChanged is the payload of phase_changed.
type PhaseChanged struct {
	Phase Phase `json:"phase"`
}

// TurnEnded is the payload of turn_ended.
type TurnEnded struct {
	Turn      int `json:"turn"`
	Purchases int `json:"purchases"`
}

// TurnStarted is the payload of turn_started.
type TurnStarted struct {
	Turn  int  `json:"turn"`
	Bonus bool `json:"bonus"`
}

// GameOver is the payload of game_over.
type GameOver struct {
	Winner int    `json:"winner"`
	Name   string `json:"name"`
}
