package engine

import (
	"fmt"

	"go.uber.org/zap"
)

func (s *Session) current() *Player {
	return s.players[s.turn.Seat]
}

// requireTurn checks that seat is acting in one of the given phases.
func (s *Session) requireTurn(seat int, phases ...Phase) error {
	if s.phase == PhaseGameOver {
		return fmt.Errorf("%w: game is over", ErrInvalidPhase)
	}
	if seat != s.turn.Seat {
		return ErrNotYourTurn
	}
	for _, ph := range phases {
		if s.phase == ph {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPhase, s.phase)
}

func (s *Session) setPhase(ph Phase) Event {
	s.phase = ph
	return Event{Kind: EventPhaseChanged, Seat: s.turn.Seat, Payload: PhaseChanged{Phase: ph}}
}

func (s *Session) startTurn(seat int, bonus bool) []Event {
	s.turnNo++
	s.turn = &TurnContext{Seat: seat, Number: s.turnNo, Bonus: bonus}
	s.tuna = nil
	return []Event{
		{Kind: EventTurnStarted, Seat: seat, Payload: TurnStarted{Turn: s.turnNo, Bonus: bonus}},
		s.setPhase(PhaseAwaitingRoll),
	}
}

func (s *Session) roll(seat, dice int) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseAwaitingRoll); err != nil {
		return nil, err
	}
	most := 1
	if s.current().HasCapability(CapTwoDice) {
		most = 2
	}
	if dice < 1 || dice > most {
		return nil, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidDiceCount, dice, most)
	}

	r := throw(s.dice, dice)
	s.turn.DiceCount = dice
	s.turn.setRoll(r)
	s.log.Debug("dice rolled", zap.Int("seat", seat), zap.Ints("dice", r.Dice), zap.Int("total", r.Total))

	events := []Event{{Kind: EventDiceRolled, Seat: seat, Payload: r}}
	return append(events, s.offerReroll()...), nil
}

// offerReroll pauses for Radio Tower holders once per turn.
func (s *Session) offerReroll() []Event {
	if s.current().HasCapability(CapReroll) && !s.turn.RerollOffered {
		s.turn.RerollOffered = true
		return []Event{s.setPhase(PhaseOfferedReroll)}
	}
	return s.offerAdjust()
}

// offerAdjust pauses for Harbor holders whose total is ten or more.
func (s *Session) offerAdjust() []Event {
	if s.current().HasCapability(CapAddTwo) && s.turn.Total >= 10 && !s.turn.AdjustOffered {
		s.turn.AdjustOffered = true
		return []Event{s.setPhase(PhaseOfferedAdjust)}
	}
	return s.resolve()
}

func (s *Session) keepRoll(seat int) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseOfferedReroll, PhaseOfferedAdjust); err != nil {
		return nil, err
	}
	events := []Event{{Kind: EventRollKept, Seat: seat, Payload: RollKept{Total: s.turn.Total}}}
	if s.phase == PhaseOfferedReroll {
		return append(events, s.offerAdjust()...), nil
	}
	return append(events, s.resolve()...), nil
}

func (s *Session) reroll(seat int) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseOfferedReroll); err != nil {
		return nil, err
	}
	r := throw(s.dice, s.turn.DiceCount)
	s.turn.Rerolled = true
	s.turn.setRoll(r)
	s.log.Debug("dice rerolled", zap.Int("seat", seat), zap.Ints("dice", r.Dice), zap.Int("total", r.Total))

	events := []Event{{Kind: EventRerolled, Seat: seat, Payload: r}}
	return append(events, s.offerAdjust()...), nil
}

func (s *Session) addToRoll(seat int) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseOfferedAdjust); err != nil {
		return nil, err
	}
	from := s.turn.Total
	s.turn.Total += 2
	s.turn.Adjusted = true
	events := []Event{{Kind: EventRollAdjusted, Seat: seat, Payload: RollAdjusted{From: from, To: s.turn.Total}}}
	return append(events, s.resolve()...), nil
}

// resolve applies every activated card, then moves on to pending choices
// or the purchase phase.
func (s *Session) resolve() []Event {
	s.phase = PhaseResolving
	events := s.resolveRoll()
	return append(events, s.nextChoice()...)
}

// choiceTargets returns the seats the head pending choice may target.
func (s *Session) choiceTargets(pc PendingChoice) []int {
	var targets []int
	owner := s.players[pc.Owner]
	for i := 1; i < len(s.players); i++ {
		p := s.players[(pc.Owner+i)%len(s.players)]
		switch pc.Choice {
		case ChoiceTarget:
			targets = append(targets, p.seat)
		case ChoiceExchange:
			if s.tradeable(owner) && s.tradeable(p) {
				targets = append(targets, p.seat)
			}
		}
	}
	return targets
}

// tradeable reports whether p owns an establishment that may be exchanged.
func (s *Session) tradeable(p *Player) bool {
	for _, h := range p.Holdings() {
		if card, err := s.catalog.Lookup(h.Card); err == nil && !card.IsMajor() {
			return true
		}
	}
	return false
}

// nextChoice prompts for the first pending choice that has a legal option,
// dropping the rest, or enters the purchase phase when none remain.
func (s *Session) nextChoice() []Event {
	for len(s.turn.Pending) > 0 {
		pc := s.turn.Pending[0]
		targets := s.choiceTargets(pc)
		if len(targets) == 0 {
			s.log.Debug("choice skipped", zap.String("card", string(pc.Card)))
			s.turn.Pending = s.turn.Pending[1:]
			continue
		}
		return []Event{
			{Kind: EventChoiceRequired, Seat: pc.Owner, Payload: ChoiceRequired{
				Card: pc.Card, Choice: pc.Choice, Targets: targets,
			}},
			s.setPhase(PhaseAwaitingChoice),
		}
	}
	return s.enterPurchase()
}

func (s *Session) pendingChoice(seat int, kind ChoiceKind) (PendingChoice, error) {
	if err := s.requireTurn(seat, PhaseAwaitingChoice); err != nil {
		return PendingChoice{}, err
	}
	pc := s.turn.Pending[0]
	if pc.Choice != kind {
		return PendingChoice{}, fmt.Errorf("%w: waiting for %s", ErrInvalidPhase, pc.Choice)
	}
	return pc, nil
}

func (s *Session) validTarget(pc PendingChoice, target int) bool {
	for _, t := range s.choiceTargets(pc) {
		if t == target {
			return true
		}
	}
	return false
}

func (s *Session) choosePlayer(seat, target int) ([]Event, error) {
	pc, err := s.pendingChoice(seat, ChoiceTarget)
	if err != nil {
		return nil, err
	}
	if !s.validTarget(pc, target) {
		return nil, fmt.Errorf("%w: seat %d", ErrInvalidTarget, target)
	}
	card, err := s.catalog.Lookup(pc.Card)
	if err != nil {
		return nil, err
	}
	s.turn.Pending = s.turn.Pending[1:]
	events := s.transfer(s.players[target], s.players[seat], card.Effect.Amount, card.ID)
	return append(events, s.nextChoice()...), nil
}

func (s *Session) exchange(seat int, give CardID, target int, take CardID) ([]Event, error) {
	pc, err := s.pendingChoice(seat, ChoiceExchange)
	if err != nil {
		return nil, err
	}
	if !s.validTarget(pc, target) {
		return nil, fmt.Errorf("%w: seat %d", ErrInvalidTarget, target)
	}
	owner, other := s.players[seat], s.players[target]
	for _, c := range []struct {
		p  *Player
		id CardID
	}{{owner, give}, {other, take}} {
		card, err := s.catalog.Lookup(c.id)
		if err != nil || c.p.OwnCount(c.id) == 0 || card.IsMajor() {
			return nil, fmt.Errorf("%w: seat %d cannot trade %q", ErrInvalidTarget, c.p.seat, c.id)
		}
	}

	if err := owner.RemoveCard(give); err != nil {
		return nil, err
	}
	if err := other.RemoveCard(take); err != nil {
		owner.GrantCard(give)
		return nil, err
	}
	owner.GrantCard(take)
	other.GrantCard(give)
	s.turn.Pending = s.turn.Pending[1:]

	events := []Event{{Kind: EventCardsExchanged, Seat: seat, Payload: CardsExchanged{
		Target: target, Gave: give, Took: take,
	}}}
	return append(events, s.nextChoice()...), nil
}

func (s *Session) skipChoice(seat int) ([]Event, error) {
	if _, err := s.pendingChoice(seat, ChoiceExchange); err != nil {
		return nil, err
	}
	s.turn.Pending = s.turn.Pending[1:]
	return s.nextChoice(), nil
}

// enterPurchase opens the purchase phase. City Hall tops up a broke roller.
func (s *Session) enterPurchase() []Event {
	var events []Event
	p := s.current()
	if p.HasCapability(CapCoinIfBroke) && p.Coins() == 0 {
		events = append(events, s.payout(p, CityHall, 1)...)
	}
	return append(events, s.setPhase(PhaseAwaitingPurchase))
}

func (s *Session) limitReached() bool {
	return s.cfg.PurchasesPerTurn > 0 && s.turn.Purchases >= s.cfg.PurchasesPerTurn
}

// purchase buys one establishment. Coins move only once the market has
// handed over the card.
func (s *Session) purchase(seat int, id CardID) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseAwaitingPurchase); err != nil {
		return nil, err
	}
	if err := s.market.check(id); err != nil {
		return nil, err
	}
	card, err := s.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	if card.Kind == KindLandmark {
		return s.build(seat, id)
	}
	p := s.current()
	if card.Unique && p.OwnCount(id) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyOwned, id)
	}
	if p.Coins() < card.Cost {
		return nil, fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientFunds, id, card.Cost, p.Coins())
	}
	if s.limitReached() {
		return nil, ErrPurchaseLimit
	}

	refills, err := s.market.Purchase(id)
	if err != nil {
		return nil, err
	}
	p.AddCoins(-card.Cost)
	p.GrantCard(id)
	s.turn.Purchases++
	s.log.Debug("card purchased", zap.Int("seat", seat), zap.String("card", string(id)))

	events := []Event{{Kind: EventCardPurchased, Seat: seat, Payload: CardPurchased{
		Card: id, Cost: card.Cost, Coins: p.Coins(),
	}}}
	return append(events, refills...), nil
}

// build constructs a landmark. Completing the set ends the game at once.
func (s *Session) build(seat int, id CardID) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseAwaitingPurchase); err != nil {
		return nil, err
	}
	if err := s.market.check(id); err != nil {
		return nil, err
	}
	card, err := s.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	if card.Kind != KindLandmark {
		return s.purchase(seat, id)
	}
	p := s.current()
	if p.HasLandmark(id) {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyBuilt, id)
	}
	if p.Coins() < card.Cost {
		return nil, fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientFunds, id, card.Cost, p.Coins())
	}
	if s.limitReached() {
		return nil, ErrPurchaseLimit
	}

	if _, err := s.market.Purchase(id); err != nil {
		return nil, err
	}
	p.AddCoins(-card.Cost)
	if err := p.BuildLandmark(id); err != nil {
		return nil, err
	}
	s.turn.Purchases++
	s.log.Debug("landmark built", zap.Int("seat", seat), zap.String("card", string(id)))

	events := []Event{{Kind: EventLandmarkBuilt, Seat: seat, Payload: LandmarkBuilt{
		Card: id, Cost: card.Cost, Coins: p.Coins(),
	}}}
	if s.hasWon(p) {
		events = append(events, s.finish(p)...)
	}
	return events, nil
}

func (s *Session) endTurn(seat int) ([]Event, error) {
	if err := s.requireTurn(seat, PhaseAwaitingPurchase); err != nil {
		return nil, err
	}
	var events []Event
	p := s.current()
	if s.turn.Purchases == 0 && p.HasCapability(CapNothingBuiltBonus) {
		events = append(events, s.payout(p, Airport, 10)...)
	}
	events = append(events, Event{Kind: EventTurnEnded, Seat: seat, Payload: TurnEnded{
		Turn: s.turn.Number, Purchases: s.turn.Purchases,
	}})
	return append(events, s.completeTurn()...), nil
}

// completeTurn checks for a winner, then hands the dice on. Doubles with
// an Amusement Park give the same seat one more turn.
func (s *Session) completeTurn() []Event {
	s.phase = PhaseTurnComplete
	p := s.current()
	if s.hasWon(p) {
		return s.finish(p)
	}
	next := (p.seat + 1) % len(s.players)
	var events []Event
	bonus := s.turn.Doubles && p.HasCapability(CapBonusTurnOnDoubles) && !s.turn.BonusTurnGranted
	if bonus {
		s.turn.BonusTurnGranted = true
		next = p.seat
		events = append(events, Event{Kind: EventBonusTurn, Seat: p.seat})
	}
	return append(events, s.startTurn(next, bonus)...)
}

func (s *Session) hasWon(p *Player) bool {
	for _, card := range s.catalog.Landmarks(s.cfg) {
		if !p.HasLandmark(card.ID) {
			return false
		}
	}
	return true
}

func (s *Session) finish(p *Player) []Event {
	s.winner = p.seat
	s.log.Info("game over", zap.Int("winner", p.seat), zap.String("name", p.name), zap.Int("turns", s.turnNo))
	return []Event{
		s.setPhase(PhaseGameOver),
		{Kind: EventGameOver, Seat: p.seat, Payload: GameOver{Winner: p.seat, Name: p.name}},
	}
}
