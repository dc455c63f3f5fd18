package src

import (
	"powerchess/src/base"
	"testing"
)

func TestPruneCastling(t *testing.T) {
	pieces := map[base.Square]base.Piece{
		base.NewSquare(7, 0): {Kind: base.Rook, Color: base.White},
		base.NewSquare(0, 7): {Kind: base.Rook, Color: base.Black},
	}
	if got := pruneCastling("KQkq", pieces); got != "Kq" {
		t.Fatalf("got %s, want Kq", got)
	}
	if got := pruneCastling("Qk", pieces); got != "-" {
		t.Fatalf("got %s, want -", got)
	}
}

func TestEpVictim(t *testing.T) {
	if got := epVictim("e3"); got.String() != "e4" {
		t.Fatalf("e3: got %s", got)
	}
	if got := epVictim("d6"); got.String() != "d5" {
		t.Fatalf("d6: got %s", got)
	}
	if got := epVictim("-"); got != base.NoSquare {
		t.Fatalf("dash: got %s", got)
	}
}
