package powerup

import (
	"errors"
	"math/rand/v2"
	"powerchess/src"
	"powerchess/src/base"
	"testing"
)

func TestInventoryCapacity(t *testing.T) {
	var inv Inventory
	for i := 0; i < Capacity; i++ {
		if err := inv.Add(Kinds[i%len(Kinds)]); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if err := inv.Add(Destroy); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("expected ErrInventoryFull, got %v", err)
	}
	if inv.Len() != Capacity {
		t.Fatalf("len: %d", inv.Len())
	}
	k, err := inv.Take(1)
	if err != nil || k != DoubleMove {
		t.Fatalf("take: %v %v", k, err)
	}
	if inv.At(1) != AiHelps {
		t.Fatalf("slots must shift left, got %v", inv.Items())
	}
	if _, err := inv.Take(7); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	if err := inv.Add(None); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestKindFromString(t *testing.T) {
	for _, k := range Kinds {
		got, err := KindFromString(k.String())
		if err != nil || got != k {
			t.Fatalf("%s: %v %v", k, got, err)
		}
	}
	if _, err := KindFromString("teleport"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("unknown kind: %v", err)
	}
}

// boardTarget runs handlers against a real game.
type boardTarget struct {
	gb    *src.GameBuilder
	extra int
	hints int
	rng   *rand.Rand
}

func (b *boardTarget) Actor() base.Color                  { return b.gb.Turn() }
func (b *boardTarget) Pieces() map[base.Square]base.Piece { return b.gb.Pieces() }
func (b *boardTarget) RemovePiece(sq base.Square) (base.Piece, error) {
	return b.gb.RemovePiece(sq)
}
func (b *boardTarget) ReplacePiece(sq base.Square, p base.Piece) error {
	return b.gb.ReplacePiece(sq, p)
}
func (b *boardTarget) GrantExtraPly()   { b.extra++ }
func (b *boardTarget) RequestHint()     { b.hints++ }
func (b *boardTarget) Rand() *rand.Rand { return b.rng }
