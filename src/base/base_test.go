package base

import "testing"

func TestSquareAlgebraicRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		sq := Square(i)
		got, err := SquareFromAlgebraic(sq.String())
		if err != nil {
			t.Fatalf("parse %s: %v", sq, err)
		}
		if got != sq {
			t.Fatalf("square %d: got %d", sq, got)
		}
	}
	if s := Square(12).String(); s != "e2" {
		t.Fatalf("square 12: got %s, want e2", s)
	}
	if s := Square(28).String(); s != "e4" {
		t.Fatalf("square 28: got %s, want e4", s)
	}
}

func TestMoveFromUCI(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{in: "e2e4", want: Move{From: 12, To: 28}},
		{in: "e7e8q", want: Move{From: 52, To: 60, Promo: Queen}},
		{in: "a2a1n", want: Move{From: 8, To: 0, Promo: Knight}},
		{in: "e7e8k", wantErr: true},
		{in: "e9e8", wantErr: true},
		{in: "e2", wantErr: true},
	}
	for _, tt := range tests {
		got, err := MoveFromUCI(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%s: got %+v, want %+v", tt.in, got, tt.want)
		}
		if got.UCI() != tt.in {
			t.Fatalf("%s: UCI() = %s", tt.in, got.UCI())
		}
	}
}

func TestPieceRune(t *testing.T) {
	for _, r := range "KQRBNPkqrbnp" {
		if got := PieceFromRune(r).Rune(); got != r {
			t.Fatalf("rune %c: got %c", r, got)
		}
	}
	if !PieceFromRune('x').IsEmpty() {
		t.Fatalf("unknown rune must give empty piece")
	}
}

func TestOutcomeString(t *testing.T) {
	if s := (Outcome{}).String(); s != "*" {
		t.Fatalf("ongoing: %s", s)
	}
	o := Outcome{Winner: Black, Termination: Forfeit}
	if !o.Terminal() || o.String() != "0-1 (forfeit)" {
		t.Fatalf("forfeit outcome: %s", o)
	}
}
