package powerup

import (
	"math/rand/v2"
	"powerchess/src/base"
)

// Eligibility deadband around an even position.
const GrantThreshold = 0.1

type Weights map[Kind]float64

func DefaultWeights() Weights {
	return Weights{Destroy: 0.5, DoubleMove: 0.5, AiHelps: 1.0, RandomPromotion: 0.8}
}

// Probability maps the multiplicator 1..10 linearly onto 0.1..1.0.
func Probability(multiplicator int) float64 {
	m := min(max(multiplicator, 1), 10)
	return float64(m) / 10
}

// Eligible reports whether color c is behind enough to receive a grant.
// score is from White's point of view.
func Eligible(c base.Color, score float64) bool {
	switch c {
	case base.White:
		return score <= -GrantThreshold
	case base.Black:
		return score >= GrantThreshold
	default:
		return false
	}
}

type Granter struct {
	multiplicator int
	weights       Weights
	rng           *rand.Rand
}

func NewGranter(multiplicator int, weights Weights, rng *rand.Rand) *Granter {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	return &Granter{multiplicator: multiplicator, weights: weights, rng: rng}
}

// Roll decides whether c gets a power-up for score and which one.
func (g *Granter) Roll(c base.Color, score float64) (Kind, bool) {
	if !Eligible(c, score) {
		return None, false
	}
	if g.rng.Float64() >= Probability(g.multiplicator) {
		return None, false
	}
	return g.pick()
}

func (g *Granter) pick() (Kind, bool) {
	total := 0.0
	for _, k := range Kinds {
		total += max(g.weights[k], 0)
	}
	if total <= 0 {
		return None, false
	}
	r := g.rng.Float64() * total
	for _, k := range Kinds {
		w := max(g.weights[k], 0)
		if r < w {
			return k, true
		}
		r -= w
	}
	// float rounding
	for i := len(Kinds) - 1; i >= 0; i-- {
		if g.weights[Kinds[i]] > 0 {
			return Kinds[i], true
		}
	}
	return None, false
}

// Grant rolls for c and stores the result in inv. A grant beyond capacity
// is dropped and reported as not granted.
func (g *Granter) Grant(inv *Inventory, c base.Color, score float64) (Kind, bool) {
	k, ok := g.Roll(c, score)
	if !ok {
		return None, false
	}
	if err := inv.Add(k); err != nil {
		return None, false
	}
	return k, true
}
