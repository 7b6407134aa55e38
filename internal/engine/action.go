package engine

// ActionType identifies player actions sent to Session.Apply.
type ActionType string

const (
	ActionRoll         ActionType = "roll"
	ActionKeepRoll     ActionType = "keep_roll"
	ActionReroll       ActionType = "reroll"
	ActionAddToRoll    ActionType = "add_to_roll"
	ActionChoosePlayer ActionType = "choose_player"
	ActionExchange     ActionType = "exchange"
	ActionSkipChoice   ActionType = "skip_choice"
	ActionPurchase     ActionType = "purchase"
	ActionBuild        ActionType = "build"
	ActionEndTurn      ActionType = "end_turn"
)

// AllActions lists every action type in a stable order.
var AllActions = []ActionType{
	ActionRoll, ActionKeepRoll, ActionReroll, ActionAddToRoll,
	ActionChoosePlayer, ActionExchange, ActionSkipChoice,
	ActionPurchase, ActionBuild, ActionEndTurn,
}

// IsAction reports whether t names an engine action.
func IsAction(t ActionType) bool {
	for _, a := range AllActions {
		if a == t {
			return true
		}
	}
	return false
}

// Action is a player's action input.
type Action struct {
	Type ActionType `json:"type" mapstructure:"type"`
	// Params depend on Type:
	// roll: Dice
	// purchase, build: Card
	// choose_player: Target
	// exchange: Card (given), Target, Take
	Dice   int    `json:"dice,omitempty" mapstructure:"dice"`
	Card   CardID `json:"card,omitempty" mapstructure:"card"`
	Target int    `json:"target,omitempty" mapstructure:"target"`
	Take   CardID `json:"take,omitempty" mapstructure:"take"`
}
