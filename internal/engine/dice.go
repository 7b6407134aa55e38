package engine

import "math/rand/v2"

// Dice produces single six-sided die results.
type Dice interface {
	Roll() int
}

type randomDice struct {
	rng *rand.Rand
}

// NewRandomDice returns fair dice drawing from rng.
func NewRandomDice(rng *rand.Rand) Dice {
	return &randomDice{rng: rng}
}

func (d *randomDice) Roll() int {
	return d.rng.IntN(6) + 1
}

// ScriptedDice replays a fixed sequence of results, wrapping around.
type ScriptedDice struct {
	values []int
	next   int
}

// NewScriptedDice returns dice that yield values in order.
func NewScriptedDice(values ...int) *ScriptedDice {
	if len(values) == 0 {
		values = []int{1}
	}
	return &ScriptedDice{values: values}
}

func (d *ScriptedDice) Roll() int {
	v := d.values[d.next%len(d.values)]
	d.next++
	return v
}

func throw(d Dice, n int) Roll {
	r := Roll{Dice: make([]int, n)}
	for i := range r.Dice {
		r.Dice[i] = d.Roll()
		r.Total += r.Dice[i]
	}
	r.Doubles = n == 2 && r.Dice[0] == r.Dice[1]
	return r
}
