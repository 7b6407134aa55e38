package engine

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// PendingChoice is a major establishment waiting for its owner's input.
type PendingChoice struct {
	Owner  int        `json:"owner"`
	Card   CardID     `json:"card"`
	Choice ChoiceKind `json:"choice"`
}

// TurnContext is the state of the turn in progress.
type TurnContext struct {
	Seat   int  `json:"seat"`
	Number int  `json:"number"`
	Bonus  bool `json:"bonus"` // granted by doubles on the previous turn

	DiceCount int   `json:"dice_count"`
	Dice      []int `json:"dice"`
	Total     int   `json:"total"`
	Doubles   bool  `json:"doubles"`

	RerollOffered    bool `json:"reroll_offered"`
	Rerolled         bool `json:"rerolled"`
	AdjustOffered    bool `json:"adjust_offered"`
	Adjusted         bool `json:"adjusted"`
	BonusTurnGranted bool `json:"bonus_turn_granted"`

	Purchases int             `json:"purchases"`
	Pending   []PendingChoice `json:"pending,omitempty"`
	Log       []Event         `json:"log,omitempty"`
}

func (t *TurnContext) setRoll(r Roll) {
	t.Dice = r.Dice
	t.Total = r.Total
	t.Doubles = r.Doubles
}

func (t *TurnContext) clone() TurnContext {
	c := *t
	c.Dice = append([]int(nil), t.Dice...)
	c.Pending = append([]PendingChoice(nil), t.Pending...)
	c.Log = append([]Event(nil), t.Log...)
	return c
}

// Session holds the entire game state. It is not safe for concurrent use.
type Session struct {
	cfg     Config
	catalog *Catalog
	market  *Market
	players []*Player
	names   []string

	phase  Phase
	turn   *TurnContext
	turnNo int
	winner int

	dice Dice
	rng  *rand.Rand
	log  *zap.Logger

	// tuna is the shared Tuna Boat roll for the current blue pass.
	tuna *Roll

	opening []Event
	fault   error
}

// Option configures a Session.
type Option func(*Session)

// WithDice replaces the random dice, typically with ScriptedDice in tests.
func WithDice(d Dice) Option {
	return func(s *Session) { s.dice = d }
}

// WithSeed seeds a PCG source so a session can be replayed.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewPCG(seed, seed)) }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithCatalog(c *Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithPlayerNames names seats in order. Missing names default to
// "Player N".
func WithPlayerNames(names ...string) Option {
	return func(s *Session) { s.names = names }
}

// NewSession validates cfg, lays out the market, deals starting hands and
// opens the first turn for seat 0.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:     cfg,
		catalog: StandardCatalog(),
		log:     zap.NewNop(),
		winner:  NoSeat,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.dice == nil {
		s.dice = NewRandomDice(s.rng)
	}
	if err := cfg.Validate(s.catalog); err != nil {
		return nil, err
	}

	market, events, err := NewMarket(s.catalog, cfg, s.rng)
	if err != nil {
		return nil, err
	}
	s.market = market

	var built []CardID
	for _, card := range s.catalog.Landmarks(cfg) {
		if card.StartsBuilt {
			built = append(built, card.ID)
		}
	}
	built = append(built, cfg.StartingLandmarks...)
	for seat := range cfg.PlayerCount {
		name := fmt.Sprintf("Player %d", seat+1)
		if seat < len(s.names) && s.names[seat] != "" {
			name = s.names[seat]
		}
		p := NewPlayer(seat, name, s.catalog)
		p.AddCoins(cfg.StartingCoins)
		for _, id := range cfg.StartingEstablishments {
			p.GrantCard(id)
		}
		for _, id := range built {
			_ = p.BuildLandmark(id) // duplicates are harmless here
		}
		s.players = append(s.players, p)
	}

	s.log.Info("session created",
		zap.Int("players", cfg.PlayerCount),
		zap.Bool("harbor", cfg.HarborExpansion),
		zap.String("market", cfg.MarketVariant.String()),
	)
	events = append(events, s.startTurn(0, false)...)
	s.opening = events
	s.turn.Log = append(s.turn.Log, events...)
	return s, nil
}

// Opening returns the events produced while setting up the session.
func (s *Session) Opening() []Event {
	return append([]Event(nil), s.opening...)
}

// Apply is the single entry point for player actions. On a recoverable
// error the state is left unchanged. Fatal errors stick: every later call
// returns the same error.
func (s *Session) Apply(seat int, a Action) ([]Event, error) {
	if s.fault != nil {
		return nil, s.fault
	}
	prior := s.turn

	var events []Event
	var err error
	switch a.Type {
	case ActionRoll:
		events, err = s.roll(seat, a.Dice)
	case ActionKeepRoll:
		events, err = s.keepRoll(seat)
	case ActionReroll:
		events, err = s.reroll(seat)
	case ActionAddToRoll:
		events, err = s.addToRoll(seat)
	case ActionChoosePlayer:
		events, err = s.choosePlayer(seat, a.Target)
	case ActionExchange:
		events, err = s.exchange(seat, a.Card, a.Target, a.Take)
	case ActionSkipChoice:
		events, err = s.skipChoice(seat)
	case ActionPurchase:
		events, err = s.purchase(seat, a.Card)
	case ActionBuild:
		events, err = s.build(seat, a.Card)
	case ActionEndTurn:
		events, err = s.endTurn(seat)
	default:
		err = fmt.Errorf("%w: unsupported action %q", ErrInvalidPhase, a.Type)
	}
	if err != nil {
		if IsFatal(err) {
			s.poison(err)
		}
		return nil, err
	}
	if err := s.checkInvariants(); err != nil {
		s.poison(err)
		return events, err
	}

	log := prior
	for _, ev := range events {
		if ev.Kind == EventTurnStarted {
			log = s.turn
		}
		log.Log = append(log.Log, ev)
	}
	return events, nil
}

func (s *Session) poison(err error) {
	s.fault = err
	s.log.Error("session halted", zap.Error(err))
}

// Roll throws dice for the current player.
func (s *Session) Roll(seat, dice int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionRoll, Dice: dice})
}

// KeepRoll declines an offered re-roll or +2 adjustment.
func (s *Session) KeepRoll(seat int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionKeepRoll})
}

func (s *Session) Reroll(seat int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionReroll})
}

func (s *Session) AddToRoll(seat int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionAddToRoll})
}

// ChoosePlayer picks the player who pays the pending TV Station.
func (s *Session) ChoosePlayer(seat, target int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionChoosePlayer, Target: target})
}

// Exchange resolves a pending Business Center: give one of your
// establishments to target and take one of theirs.
func (s *Session) Exchange(seat int, give CardID, target int, take CardID) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionExchange, Card: give, Target: target, Take: take})
}

func (s *Session) SkipChoice(seat int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionSkipChoice})
}

func (s *Session) Purchase(seat int, id CardID) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionPurchase, Card: id})
}

func (s *Session) Build(seat int, id CardID) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionBuild, Card: id})
}

func (s *Session) EndTurn(seat int) ([]Event, error) {
	return s.Apply(seat, Action{Type: ActionEndTurn})
}

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Current() int { return s.turn.Seat }
func (s *Session) Winner() int { return s.winner }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) Catalog() *Catalog { return s.catalog }
func (s *Session) Err() error { return s.fault }
func (s *Session) PlayerCount() int { return len(s.players) }

// Legal lists the action types seat may submit right now.
func (s *Session) Legal(seat int) []ActionType {
	if s.fault != nil || s.phase == PhaseGameOver || seat != s.turn.Seat {
		return nil
	}
	switch s.phase {
	case PhaseAwaitingRoll:
		return []ActionType{ActionRoll}
	case PhaseOfferedReroll:
		return []ActionType{ActionKeepRoll, ActionReroll}
	case PhaseOfferedAdjust:
		return []ActionType{ActionKeepRoll, ActionAddToRoll}
	case PhaseAwaitingChoice:
		if len(s.turn.Pending) == 0 {
			return nil
		}
		if s.turn.Pending[0].Choice == ChoiceExchange {
			return []ActionType{ActionExchange, ActionSkipChoice}
		}
		return []ActionType{ActionChoosePlayer}
	case PhaseAwaitingPurchase:
		if s.limitReached() {
			return []ActionType{ActionEndTurn}
		}
		return []ActionType{ActionPurchase, ActionBuild, ActionEndTurn}
	}
	return nil
}

func (s *Session) checkInvariants() error {
	n := len(s.players)
	for _, p := range s.players {
		if p.coins < 0 {
			return fmt.Errorf("%w: seat %d has %d coins", ErrInvariant, p.seat, p.coins)
		}
		if ids := p.unknownCards(); len(ids) > 0 {
			return fmt.Errorf("%w: seat %d holds %v", ErrUnknownCard, p.seat, ids)
		}
		for id, count := range p.owned {
			card, _ := s.catalog.Lookup(id)
			if count < 0 || (card.Unique && count > 1) {
				return fmt.Errorf("%w: seat %d owns %d of %q", ErrInvariant, p.seat, count, id)
			}
		}
	}
	for _, st := range s.market.Available() {
		if st.Count < 0 {
			return fmt.Errorf("%w: market count %d for %q", ErrInvariant, st.Count, st.Card)
		}
	}
	for _, card := range s.catalog.Establishments(s.cfg) {
		if left := s.market.stock(card.ID); left > card.Stock(n) {
			return fmt.Errorf("%w: market holds %d of %q, max %d", ErrInvariant, left, card.ID, card.Stock(n))
		}
	}
	return nil
}
