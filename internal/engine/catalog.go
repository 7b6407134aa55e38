package engine

import "fmt"

// Card identifiers of the standard catalog.
const (
	WheatField              CardID = "wheat_field"
	Ranch                   CardID = "ranch"
	Bakery                  CardID = "bakery"
	Cafe                    CardID = "cafe"
	ConvenienceStore        CardID = "convenience_store"
	Forest                  CardID = "forest"
	Stadium                 CardID = "stadium"
	TVStation               CardID = "tv_station"
	BusinessCenter          CardID = "business_center"
	CheeseFactory           CardID = "cheese_factory"
	FurnitureFactory        CardID = "furniture_factory"
	Mine                    CardID = "mine"
	FamilyRestaurant        CardID = "family_restaurant"
	AppleOrchard            CardID = "apple_orchard"
	FruitAndVegetableMarket CardID = "fruit_and_vegetable_market"

	SushiBar       CardID = "sushi_bar"
	FlowerOrchard  CardID = "flower_orchard"
	FlowerShop     CardID = "flower_shop"
	PizzaJoint     CardID = "pizza_joint"
	Publisher      CardID = "publisher"
	TaxOffice      CardID = "tax_office"
	HamburgerStand CardID = "hamburger_stand"
	MackerelBoat   CardID = "mackerel_boat"
	FoodWarehouse  CardID = "food_warehouse"
	TunaBoat       CardID = "tuna_boat"

	CityHall      CardID = "city_hall"
	Harbor        CardID = "harbor"
	TrainStation  CardID = "train_station"
	ShoppingMall  CardID = "shopping_mall"
	AmusementPark CardID = "amusement_park"
	RadioTower    CardID = "radio_tower"
	Airport       CardID = "airport"
)

// supplySize is the number of copies of each regular establishment in the box.
const supplySize = 6

// Catalog is an immutable, ordered set of card definitions.
type Catalog struct {
	cards []Card
	index map[CardID]int
}

// NewCatalog builds a catalog from the given cards. Insertion order is the
// display and resolution order. Duplicate IDs panic.
func NewCatalog(cards ...Card) *Catalog {
	c := &Catalog{
		cards: make([]Card, 0, len(cards)),
		index: make(map[CardID]int, len(cards)),
	}
	for _, card := range cards {
		if _, dup := c.index[card.ID]; dup {
			panic(fmt.Sprintf("engine: duplicate card id %q", card.ID))
		}
		c.index[card.ID] = len(c.cards)
		c.cards = append(c.cards, card)
	}
	return c
}

// Lookup returns the card with the given id.
func (c *Catalog) Lookup(id CardID) (Card, error) {
	i, ok := c.index[id]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return c.cards[i], nil
}

// Has reports whether id is defined.
func (c *Catalog) Has(id CardID) bool {
	_, ok := c.index[id]
	return ok
}

// All returns every card in insertion order.
func (c *Catalog) All() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// CardsFor returns the cards in play under cfg, in insertion order.
// Harbor cards are dropped unless the Harbor expansion is enabled.
func (c *Catalog) CardsFor(cfg Config) []Card {
	var out []Card
	for _, card := range c.cards {
		if card.Expansion == ExpansionHarbor && !cfg.HarborExpansion {
			continue
		}
		out = append(out, card)
	}
	return out
}

// Establishments returns the establishments in play under cfg.
func (c *Catalog) Establishments(cfg Config) []Card {
	return c.filter(cfg, KindEstablishment)
}

// Landmarks returns the landmarks in play under cfg. Building all of them
// wins the game.
func (c *Catalog) Landmarks(cfg Config) []Card {
	return c.filter(cfg, KindLandmark)
}

func (c *Catalog) filter(cfg Config, kind Kind) []Card {
	var out []Card
	for _, card := range c.CardsFor(cfg) {
		if card.Kind == kind {
			out = append(out, card)
		}
	}
	return out
}

// order returns the insertion position of id, or -1.
func (c *Catalog) order(id CardID) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// StandardCatalog returns the base game plus the Harbor expansion.
func StandardCatalog() *Catalog {
	income := func(n int) Effect { return Effect{Kind: EffectFixedIncome, Amount: n} }
	fee := func(n int) Effect { return Effect{Kind: EffectTransferFromPlayer, Source: SourceRoller, Amount: n} }
	perCategory := func(n int, cats ...Category) Effect {
		return Effect{Kind: EffectIncomePerOwned, Amount: n, PerCategory: cats}
	}
	blue := func(id CardID, name string, cat Category, cost int, eff Effect, acts ...int) Card {
		return Card{ID: id, Name: name, Kind: KindEstablishment, Cost: cost, Color: ColorBlue,
			Category: cat, Trigger: OnAnyRoll, Activation: acts, Effect: eff, Max: supplySize}
	}
	green := func(id CardID, name string, cat Category, cost int, eff Effect, acts ...int) Card {
		return Card{ID: id, Name: name, Kind: KindEstablishment, Cost: cost, Color: ColorGreen,
			Category: cat, Trigger: OnOwnRoll, Activation: acts, Effect: eff, Max: supplySize}
	}
	red := func(id CardID, name string, cost int, eff Effect, acts ...int) Card {
		return Card{ID: id, Name: name, Kind: KindEstablishment, Cost: cost, Color: ColorRed,
			Category: CategoryCup, Trigger: OnOtherRoll, Activation: acts, Effect: eff, Max: supplySize}
	}
	purple := func(id CardID, name string, cost int, eff Effect, acts ...int) Card {
		return Card{ID: id, Name: name, Kind: KindEstablishment, Cost: cost, Color: ColorPurple,
			Category: CategoryMajor, Trigger: OnOwnRoll, Activation: acts, Effect: eff, Unique: true}
	}
	landmark := func(id CardID, name string, cost int, eff Effect) Card {
		return Card{ID: id, Name: name, Kind: KindLandmark, Cost: cost,
			Category: CategoryLandmark, Effect: eff}
	}
	grant := func(c Capability) Effect { return Effect{Kind: EffectGrantCapability, Capability: c} }
	harbor := func(c Card) Card {
		c.Expansion = ExpansionHarbor
		return c
	}
	needsHarbor := func(c Card) Card {
		c.Requires = Harbor
		return harbor(c)
	}

	amusement := landmark(AmusementPark, "Amusement Park", 16,
		Effect{Kind: EffectRerollOrBonusTurn, Capability: CapBonusTurnOnDoubles})
	amusement.Trigger = OnDoubles
	radio := landmark(RadioTower, "Radio Tower", 22,
		Effect{Kind: EffectRerollOrBonusTurn, Capability: CapReroll})
	cityHall := harbor(landmark(CityHall, "City Hall", 0, grant(CapCoinIfBroke)))
	cityHall.StartsBuilt = true

	return NewCatalog(
		blue(WheatField, "Wheat Field", CategoryWheat, 1, income(1), 1),
		blue(Ranch, "Ranch", CategoryCow, 1, income(1), 2),
		green(Bakery, "Bakery", CategoryBread, 1, income(1), 2, 3),
		red(Cafe, "Café", 2, fee(1), 3),
		green(ConvenienceStore, "Convenience Store", CategoryBread, 2, income(3), 4),
		blue(Forest, "Forest", CategoryGear, 3, income(1), 5),
		purple(Stadium, "Stadium", 6,
			Effect{Kind: EffectTransferFromPlayer, Source: SourceEachOther, Amount: 2}, 6),
		purple(TVStation, "TV Station", 7,
			Effect{Kind: EffectTransferFromPlayer, Source: SourceChosen, Amount: 5}, 6),
		purple(BusinessCenter, "Business Center", 8, Effect{Kind: EffectExchangeCards}, 6),
		green(CheeseFactory, "Cheese Factory", CategoryFactory, 5, perCategory(3, CategoryCow), 7),
		green(FurnitureFactory, "Furniture Factory", CategoryFactory, 3, perCategory(3, CategoryGear), 8),
		blue(Mine, "Mine", CategoryGear, 6, income(5), 9),
		red(FamilyRestaurant, "Family Restaurant", 3, fee(2), 9, 10),
		blue(AppleOrchard, "Apple Orchard", CategoryWheat, 3, income(3), 10),
		green(FruitAndVegetableMarket, "Fruit and Vegetable Market", CategoryFruit, 2,
			perCategory(2, CategoryWheat), 11, 12),

		needsHarbor(red(SushiBar, "Sushi Bar", 4, fee(3), 1)),
		harbor(blue(FlowerOrchard, "Flower Orchard", CategoryWheat, 2, income(1), 4)),
		harbor(green(FlowerShop, "Flower Shop", CategoryBread, 1,
			Effect{Kind: EffectIncomePerOwned, Amount: 1, PerCard: FlowerOrchard}, 6)),
		harbor(red(PizzaJoint, "Pizza Joint", 1, fee(1), 7)),
		harbor(purple(Publisher, "Publisher", 5,
			Effect{Kind: EffectTransferFromPlayer, Source: SourceEachOther, Amount: 1,
				PerCategory: []Category{CategoryCup, CategoryBread}}, 7)),
		harbor(purple(TaxOffice, "Tax Office", 4,
			Effect{Kind: EffectTransferFromPlayer, Source: SourceEachOther, MinBalance: 10, Halve: true}, 8, 9)),
		harbor(red(HamburgerStand, "Hamburger Stand", 1, fee(1), 8)),
		needsHarbor(blue(MackerelBoat, "Mackerel Boat", CategoryBoat, 2, income(3), 8)),
		harbor(green(FoodWarehouse, "Food Warehouse", CategoryFactory, 2, perCategory(2, CategoryCup), 12, 13)),
		needsHarbor(blue(TunaBoat, "Tuna Boat", CategoryBoat, 5, Effect{Kind: EffectRollIncome}, 12, 13, 14)),

		cityHall,
		harbor(landmark(Harbor, "Harbor", 2, grant(CapAddTwo))),
		landmark(TrainStation, "Train Station", 4, grant(CapTwoDice)),
		landmark(ShoppingMall, "Shopping Mall", 10, grant(CapCupBreadBonus)),
		amusement,
		radio,
		harbor(landmark(Airport, "Airport", 30, grant(CapNothingBuiltBonus))),
	)
}
