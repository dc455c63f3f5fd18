package src

import (
	"errors"
	"powerchess/src/base"
	"powerchess/src/logic/history"
	"powerchess/src/logx"
	"strings"
	"testing"
)

func newGame(t *testing.T, fen string) *GameBuilder {
	t.Helper()
	gb := NewBuilderBoard(logx.NewNop())
	if fen == "" {
		gb.CreateClassic()
		return gb
	}
	if err := gb.CreateFromFEN(fen); err != nil {
		t.Fatalf("create from FEN: %v", err)
	}
	return gb
}

func TestPushPawnMove(t *testing.T) {
	gb := newGame(t, "")
	if n := len(gb.LegalMovesFrom(12)); n != 2 {
		t.Fatalf("e2 legal moves: got %d, want 2", n)
	}
	if err := gb.Push("e2e4"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if p := gb.PieceAt(28); p != (base.Piece{Kind: base.Pawn, Color: base.White}) {
		t.Fatalf("e4: got %v", p)
	}
	if p := gb.PieceAt(12); !p.IsEmpty() {
		t.Fatalf("e2 should be empty, got %v", p)
	}
	if gb.Turn() != base.Black {
		t.Fatalf("turn: got %v", gb.Turn())
	}
	if gb.History().Plies() != 1 {
		t.Fatalf("plies: %d", gb.History().Plies())
	}
}

func TestPushIllegal(t *testing.T) {
	gb := newGame(t, "")
	if err := gb.Push("e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if err := gb.Push("zz"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestPushNull(t *testing.T) {
	gb := newGame(t, "")
	if err := gb.Push("e2e4"); err != nil {
		t.Fatal(err)
	}
	if err := gb.PushNull(); err != nil {
		t.Fatalf("null: %v", err)
	}
	if gb.Turn() != base.White {
		t.Fatalf("turn after null: %v", gb.Turn())
	}
	f := strings.Fields(gb.FEN())
	if f[3] != "-" {
		t.Fatalf("en passant should be cleared: %s", gb.FEN())
	}
	if f[5] != "2" {
		t.Fatalf("fullmove should advance after black null: %s", gb.FEN())
	}
	if gb.History().Count(history.KindNull) != 1 {
		t.Fatalf("null entry missing")
	}
	if err := gb.Push("d2d4"); err != nil {
		t.Fatalf("second white move: %v", err)
	}
}

func TestRemovePiece(t *testing.T) {
	gb := newGame(t, "")
	if _, err := gb.RemovePiece(60); !errors.Is(err, ErrKingProtected) {
		t.Fatalf("king removal: %v", err)
	}
	if _, err := gb.RemovePiece(30); !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("empty removal: %v", err)
	}
	p, err := gb.RemovePiece(0)
	if err != nil {
		t.Fatalf("remove a1: %v", err)
	}
	if p != (base.Piece{Kind: base.Rook, Color: base.White}) {
		t.Fatalf("removed %v", p)
	}
	if !gb.PieceAt(0).IsEmpty() {
		t.Fatalf("a1 should be empty")
	}
	if f := strings.Fields(gb.FEN()); f[2] != "Kkq" {
		t.Fatalf("castling: got %s", f[2])
	}
	if gb.Turn() != base.White {
		t.Fatalf("removal must not consume a ply")
	}
}

func TestReplacePiece(t *testing.T) {
	gb := newGame(t, "")
	q := base.Piece{Kind: base.Queen, Color: base.White}
	if err := gb.ReplacePiece(8, q); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if gb.PieceAt(8) != q {
		t.Fatalf("a2: %v", gb.PieceAt(8))
	}
	if err := gb.ReplacePiece(4, q); !errors.Is(err, ErrKingProtected) {
		t.Fatalf("king replace: %v", err)
	}
}

func TestPromotion(t *testing.T) {
	gb := newGame(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	if !gb.IsPromotion(52, 60) {
		t.Fatalf("e7e8 should be a promotion")
	}
	if gb.IsPromotion(4, 12) {
		t.Fatalf("king move is no promotion")
	}
	if err := gb.Push("e7e8q"); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if gb.PieceAt(60) != (base.Piece{Kind: base.Queen, Color: base.White}) {
		t.Fatalf("e8: %v", gb.PieceAt(60))
	}
}

func TestCheckmateOutcome(t *testing.T) {
	gb := newGame(t, "")
	for _, mv := range []string{"f2f3", "e7e5", "g2g4"} {
		if err := gb.Push(mv); err != nil {
			t.Fatalf("%s: %v", mv, err)
		}
		if gb.Outcome().Terminal() {
			t.Fatalf("game ended early after %s", mv)
		}
	}
	if err := gb.Push("d8h4"); err != nil {
		t.Fatal(err)
	}
	if !gb.LastMoveGaveCheck() {
		t.Fatalf("mate must be flagged as check")
	}
	o := gb.Outcome()
	if o.Winner != base.Black || o.Termination != base.Checkmate {
		t.Fatalf("outcome: %v", o)
	}
}

func TestEditRewritesPosition(t *testing.T) {
	gb := newGame(t, "")
	if err := gb.ReplacePiece(8, base.Piece{Kind: base.Queen, Color: base.White}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := gb.RemovePiece(7); err != nil {
		t.Fatalf("remove h1: %v", err)
	}
	want := "rnbqkbnr/pppppppp/8/8/8/8/QPPPPPPP/RNBQKBN1 w Qkq - 0 1"
	if got := gb.FEN(); got != want {
		t.Fatalf("FEN: got %s, want %s", got, want)
	}
}
