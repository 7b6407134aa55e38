package engine

// Phase represents the current phase of the turn state machine.
type Phase int

const (
	PhaseAwaitingRoll     Phase = iota // current player must roll
	PhaseOfferedReroll                 // Radio Tower: keep or re-roll
	PhaseOfferedAdjust                 // Harbor: keep or add two
	PhaseResolving                     // applying card effects
	PhaseAwaitingChoice                // a major establishment needs input
	PhaseAwaitingPurchase              // buy, build or end the turn
	PhaseTurnComplete                  // advancing to the next turn
	PhaseGameOver                      // a player built every landmark
)

var phaseNames = map[Phase]string{
	PhaseAwaitingRoll:     "AwaitingRoll",
	PhaseOfferedReroll:    "OfferedReroll",
	PhaseOfferedAdjust:    "OfferedAdjust",
	PhaseResolving:        "Resolving",
	PhaseAwaitingChoice:   "AwaitingChoice",
	PhaseAwaitingPurchase: "AwaitingPurchase",
	PhaseTurnComplete:     "TurnComplete",
	PhaseGameOver:         "GameOver",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
