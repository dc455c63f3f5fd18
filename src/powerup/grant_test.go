package powerup

import (
	"math"
	"math/rand/v2"
	"powerchess/src/base"
	"testing"
)

func TestProbability(t *testing.T) {
	tests := map[int]float64{1: 0.1, 5: 0.5, 10: 1.0, 0: 0.1, 42: 1.0}
	for m, want := range tests {
		if got := Probability(m); math.Abs(got-want) > 1e-9 {
			t.Fatalf("m=%d: got %v, want %v", m, got, want)
		}
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		c     base.Color
		score float64
		want  bool
	}{
		{base.White, -0.1, true},
		{base.White, -0.05, false},
		{base.White, 0.5, false},
		{base.Black, 0.1, true},
		{base.Black, 0.09, false},
		{base.Black, -0.8, false},
	}
	for _, tt := range tests {
		if got := Eligible(tt.c, tt.score); got != tt.want {
			t.Fatalf("%v at %v: got %v", tt.c, tt.score, got)
		}
	}
}

func TestGrantAlwaysAtFullMultiplicator(t *testing.T) {
	g := NewGranter(10, nil, rand.New(rand.NewPCG(7, 7)))
	var inv Inventory
	for i := 0; i < Capacity; i++ {
		if _, ok := g.Grant(&inv, base.White, -0.5); !ok {
			t.Fatalf("grant %d refused at probability 1", i)
		}
	}
	if _, ok := g.Grant(&inv, base.White, -0.5); ok {
		t.Fatalf("grant beyond capacity must be dropped")
	}
	if inv.Len() != Capacity {
		t.Fatalf("inventory: %v", inv.Items())
	}
	if _, ok := g.Grant(&Inventory{}, base.White, 0.5); ok {
		t.Fatalf("white ahead must not be granted")
	}
}

func TestWeightedPick(t *testing.T) {
	g := NewGranter(10, Weights{AiHelps: 1}, rand.New(rand.NewPCG(3, 4)))
	for i := 0; i < 50; i++ {
		k, ok := g.Roll(base.Black, 0.4)
		if !ok || k != AiHelps {
			t.Fatalf("roll %d: %v %v", i, k, ok)
		}
	}
	counts := map[Kind]int{}
	g = NewGranter(10, DefaultWeights(), rand.New(rand.NewPCG(5, 6)))
	for i := 0; i < 2000; i++ {
		k, _ := g.Roll(base.Black, 0.4)
		counts[k]++
	}
	for _, k := range Kinds {
		if counts[k] == 0 {
			t.Fatalf("kind %v never picked: %v", k, counts)
		}
	}
	if counts[AiHelps] < counts[Destroy] {
		t.Fatalf("heavier weight picked less often: %v", counts)
	}
}
