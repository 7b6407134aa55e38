package engine

// Color is the resolution band of a card. Bands resolve in a fixed order:
// red, blue, green, purple.
type Color int

const (
	ColorNone   Color = 0
	ColorBlue   Color = 1 // anyone's roll
	ColorGreen  Color = 2 // your roll only
	ColorRed    Color = 3 // other players' rolls, paid by the roller
	ColorPurple Color = 4 // major establishments, your roll only
)

var colorNames = map[Color]string{
	ColorNone:   "None",
	ColorBlue:   "Blue",
	ColorGreen:  "Green",
	ColorRed:    "Red",
	ColorPurple: "Purple",
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "Unknown"
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Category is the icon printed on a card. Factory-style effects count
// establishments by category.
type Category int

const (
	CategoryNone Category = iota
	CategoryWheat
	CategoryCow
	CategoryGear
	CategoryBread
	CategoryFactory
	CategoryFruit
	CategoryCup
	CategoryMajor
	CategoryBoat
	CategoryLandmark
)

var categoryNames = map[Category]string{
	CategoryNone:     "None",
	CategoryWheat:    "Wheat",
	CategoryCow:      "Cow",
	CategoryGear:     "Gear",
	CategoryBread:    "Bread",
	CategoryFactory:  "Factory",
	CategoryFruit:    "Fruit",
	CategoryCup:      "Cup",
	CategoryMajor:    "Major",
	CategoryBoat:     "Boat",
	CategoryLandmark: "Landmark",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "Unknown"
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Trigger is the roll condition under which a card fires.
type Trigger int

const (
	TriggerNone Trigger = iota
	OnOwnRoll
	OnAnyRoll
	OnOtherRoll
	OnDoubles
)

var triggerNames = map[Trigger]string{
	TriggerNone: "None",
	OnOwnRoll:   "OnOwnRoll",
	OnAnyRoll:   "OnAnyRoll",
	OnOtherRoll: "OnOtherRoll",
	OnDoubles:   "OnDoubles",
}

func (t Trigger) String() string {
	if s, ok := triggerNames[t]; ok {
		return s
	}
	return "Unknown"
}

func (t Trigger) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Capability is a permanent ability unlocked by a built landmark.
type Capability int

const (
	CapNone Capability = iota
	CapTwoDice
	CapCupBreadBonus
	CapBonusTurnOnDoubles
	CapReroll
	CapAddTwo
	CapCoinIfBroke
	CapNothingBuiltBonus
)

var capabilityNames = map[Capability]string{
	CapNone:               "None",
	CapTwoDice:            "TwoDice",
	CapCupBreadBonus:      "CupBreadBonus",
	CapBonusTurnOnDoubles: "BonusTurnOnDoubles",
	CapReroll:             "Reroll",
	CapAddTwo:             "AddTwo",
	CapCoinIfBroke:        "CoinIfBroke",
	CapNothingBuiltBonus:  "NothingBuiltBonus",
}

func (c Capability) String() string {
	if s, ok := capabilityNames[c]; ok {
		return s
	}
	return "Unknown"
}

func (c Capability) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Expansion identifies which box a card ships in.
type Expansion int

const (
	ExpansionBase Expansion = iota
	ExpansionHarbor
)

func (e Expansion) String() string {
	if e == ExpansionHarbor {
		return "Harbor"
	}
	return "Base"
}

func (e Expansion) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
