package engine

import "go.uber.org/zap"

// resolveRoll runs the activation passes for the current roll:
//
//  1. Red: every other player, starting after the roller, in turn order.
//  2. Blue: every player, starting with the roller, in turn order.
//  3. Green: the roller.
//  4. Purple: the roller.
//
// All payments of one pass land before the next pass starts.
func (s *Session) resolveRoll() []Event {
	roller := s.turn.Seat
	n := len(s.players)
	var events []Event

	for i := 1; i < n; i++ {
		events = append(events, s.activate((roller+i)%n, ColorRed)...)
	}
	for i := 0; i < n; i++ {
		events = append(events, s.activate((roller+i)%n, ColorBlue)...)
	}
	s.tuna = nil
	events = append(events, s.activate(roller, ColorGreen)...)
	events = append(events, s.activate(roller, ColorPurple)...)
	return events
}

func triggered(t Trigger, ownRoll bool) bool {
	switch t {
	case OnAnyRoll:
		return true
	case OnOwnRoll:
		return ownRoll
	case OnOtherRoll:
		return !ownRoll
	}
	return false
}

// activate fires seat's cards of one color matching the roll, in catalog
// order, once per owned copy.
func (s *Session) activate(seat int, color Color) []Event {
	owner := s.players[seat]
	var events []Event
	for _, card := range s.catalog.cards {
		if card.Kind != KindEstablishment || card.Color != color || !card.ActivatesOn(s.turn.Total) {
			continue
		}
		copies := owner.OwnCount(card.ID)
		if copies == 0 || !triggered(card.Trigger, seat == s.turn.Seat) {
			continue
		}
		if card.Requires != "" && !owner.HasLandmark(card.Requires) {
			s.log.Debug("card inactive", zap.Int("seat", seat), zap.String("card", string(card.ID)),
				zap.String("requires", string(card.Requires)))
			continue
		}
		for range copies {
			s.log.Debug("card activated", zap.Int("seat", seat), zap.String("card", string(card.ID)),
				zap.Int("roll", s.turn.Total))
			events = append(events, s.applyEffect(owner, card)...)
		}
	}
	return events
}

// perOwned counts the establishments p owns that scale e.
func perOwned(p *Player, e Effect) int {
	n := 0
	for _, cat := range e.PerCategory {
		n += p.CountCategory(cat)
	}
	if e.PerCard != "" {
		n += p.OwnCount(e.PerCard)
	}
	return n
}

func (s *Session) applyEffect(owner *Player, card Card) []Event {
	e := card.Effect
	bonus := 0
	if owner.HasCapability(CapCupBreadBonus) && (card.Category == CategoryCup || card.Category == CategoryBread) {
		bonus = 1
	}

	switch e.Kind {
	case EffectFixedIncome:
		return s.payout(owner, card.ID, e.Amount+bonus)

	case EffectIncomePerOwned:
		return s.payout(owner, card.ID, e.Amount*perOwned(owner, e)+bonus)

	case EffectRollIncome:
		var events []Event
		if s.tuna == nil {
			r := throw(s.dice, 2)
			s.tuna = &r
			events = append(events, Event{Kind: EventBonusRoll, Seat: owner.seat, Payload: r})
		}
		return append(events, s.payout(owner, card.ID, s.tuna.Total)...)

	case EffectTransferFromPlayer:
		switch e.Source {
		case SourceRoller:
			return s.transfer(s.current(), owner, e.Amount+bonus, card.ID)
		case SourceEachOther:
			var events []Event
			for i := 1; i < len(s.players); i++ {
				payer := s.players[(owner.seat+i)%len(s.players)]
				if payer.Coins() < e.MinBalance {
					continue
				}
				amount := e.Amount
				switch {
				case e.Halve:
					amount = payer.Coins() / 2
				case len(e.PerCategory) > 0 || e.PerCard != "":
					amount = e.Amount * perOwned(payer, e)
				}
				events = append(events, s.transfer(payer, owner, amount, card.ID)...)
			}
			return events
		case SourceChosen:
			return s.queueChoice(owner, card, ChoiceTarget)
		}

	case EffectExchangeCards:
		return s.queueChoice(owner, card, ChoiceExchange)
	}
	return nil
}

func (s *Session) queueChoice(owner *Player, card Card, kind ChoiceKind) []Event {
	s.turn.Pending = append(s.turn.Pending, PendingChoice{Owner: owner.seat, Card: card.ID, Choice: kind})
	return nil
}

// payout pays p from the bank.
func (s *Session) payout(p *Player, card CardID, amount int) []Event {
	if amount <= 0 {
		return nil
	}
	got := p.AddCoins(amount)
	return []Event{{Kind: EventIncome, Seat: p.seat, Payload: Income{
		Payer: p.seat, Payee: p.seat, Amount: got, Card: card, FromBank: true,
	}}}
}

// transfer moves up to amount coins from one player to another. The payer
// never goes below zero; the payee receives only what was actually paid.
func (s *Session) transfer(from, to *Player, amount int, card CardID) []Event {
	if amount <= 0 {
		return nil
	}
	taken := -from.AddCoins(-amount)
	to.AddCoins(taken)
	return []Event{{Kind: EventIncome, Seat: to.seat, Payload: Income{
		Payer: from.seat, Payee: to.seat, Amount: taken, Card: card, Shortfall: amount - taken,
	}}}
}
