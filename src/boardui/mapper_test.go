package boardui

import (
	"powerchess/src"
	"powerchess/src/base"
	"powerchess/src/logx"
	"testing"
)

func TestScreenSquareInverse(t *testing.T) {
	for _, rotated := range []bool{false, true} {
		m := NewMapper(120, 0, 0)
		m.SetRotated(rotated)
		for i := 0; i < 64; i++ {
			sq := base.Square(i)
			x, y := m.SquareToScreen(sq)
			got, ok := m.ScreenToSquare(x, y)
			if !ok || got != sq {
				t.Fatalf("rotated=%v square %d: got %d (%v)", rotated, sq, got, ok)
			}
			cx, cy := m.Center(sq)
			if got, _ := m.ScreenToSquare(cx, cy); got != sq {
				t.Fatalf("rotated=%v centre of %d maps to %d", rotated, sq, got)
			}
		}
	}
}

func TestRotationFlipsBothAxes(t *testing.T) {
	m := NewMapper(100, 10, 20)
	x, y := m.SquareToScreen(0) // a1 bottom-left
	if x != 10 || y != 720 {
		t.Fatalf("a1: %v,%v", x, y)
	}
	m.Rotate()
	x, y = m.SquareToScreen(0) // a1 top-right
	if x != 710 || y != 20 {
		t.Fatalf("rotated a1: %v,%v", x, y)
	}
	if _, ok := m.ScreenToSquare(5, 30); ok {
		t.Fatalf("left of the board must not map")
	}
	if _, ok := m.ScreenToSquare(815, 30); ok {
		t.Fatalf("right of the board must not map")
	}
}

func TestSelectOverlays(t *testing.T) {
	gb := src.NewBuilderBoard(logx.NewNop())
	if err := gb.CreateFromFEN("4k3/8/8/3p4/4N3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	m := NewMapper(100, 0, 0)
	knight := base.Square(28) // e4
	moves := gb.LegalMovesFrom(knight)
	m.Select(knight, moves, gb.Pieces())

	ovs := m.Overlays()
	if len(ovs) != 1+len(moves) {
		t.Fatalf("overlays: got %d, want %d", len(ovs), 1+len(moves))
	}
	attacks := 0
	for _, o := range ovs {
		switch o.Kind {
		case OverlaySelected:
			if o.Square != knight {
				t.Fatalf("selected overlay on %s", o.Square)
			}
		case OverlayAttack:
			attacks++
			if gb.PieceAt(o.Square).IsEmpty() {
				t.Fatalf("attack overlay on empty %s", o.Square)
			}
		case OverlayMove:
			if !gb.PieceAt(o.Square).IsEmpty() {
				t.Fatalf("normal overlay on occupied %s", o.Square)
			}
		}
	}
	if attacks != 0 {
		// d5 pawn is not a knight target from e4
		t.Fatalf("attacks: %d", attacks)
	}

	// reselect replaces everything
	m.Select(4, gb.LegalMovesFrom(4), gb.Pieces())
	for _, o := range m.Overlays() {
		if o.Square == knight {
			t.Fatalf("stale overlay from previous selection")
		}
	}
	m.Rotate()
	if len(m.Overlays()) != 0 || m.Selected() != base.NoSquare {
		t.Fatalf("rotation must clear overlays")
	}
}

func TestSelectAttack(t *testing.T) {
	gb := src.NewBuilderBoard(logx.NewNop())
	if err := gb.CreateFromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	m := NewMapper(100, 0, 0)
	m.Select(28, gb.LegalMovesFrom(28), gb.Pieces())
	o, ok := m.OverlayAt(35) // d5
	if !ok || o.Kind != OverlayAttack {
		t.Fatalf("d5 overlay: %+v %v", o, ok)
	}
	o, ok = m.OverlayAt(36) // e5
	if !ok || o.Kind != OverlayMove {
		t.Fatalf("e5 overlay: %+v %v", o, ok)
	}
}

func TestPromotionOverlays(t *testing.T) {
	m := NewMapper(100, 0, 0)
	m.ShowPromotion(60, base.White) // e8
	ovs := m.Overlays()
	if len(ovs) != 4 {
		t.Fatalf("promotion overlays: %d", len(ovs))
	}
	want := []base.Square{60, 52, 44, 36}
	for i, o := range ovs {
		if o.Square != want[i] || o.Promo != PromotionOrder[i] {
			t.Fatalf("choice %d: %+v", i, o)
		}
	}
	x, y := m.Center(52)
	if k, ok := m.PromotionAt(x, y); !ok || k != base.Knight {
		t.Fatalf("knight choice: %v %v", k, ok)
	}

	m.ShowPromotion(3, base.Black) // d1
	if o := m.Overlays()[3]; o.Square != 27 {
		t.Fatalf("black choices go up the file, got %s", o.Square)
	}
}

func TestResync(t *testing.T) {
	gb := src.NewBuilderBoard(logx.NewNop())
	gb.CreateClassic()
	m := NewMapper(100, 0, 0)
	m.Resync(gb.Pieces())
	if len(m.Figures()) != 32 {
		t.Fatalf("figures: %d", len(m.Figures()))
	}
	if err := gb.Push("e2e4"); err != nil {
		t.Fatal(err)
	}
	m.Resync(gb.Pieces())
	if _, ok := m.FigureAt(12); ok {
		t.Fatalf("e2 figure must be gone")
	}
	f, ok := m.FigureAt(28)
	if !ok || f.Piece != (base.Piece{Kind: base.Pawn, Color: base.White}) {
		t.Fatalf("e4 figure: %+v %v", f, ok)
	}
	cx, cy := m.Center(28)
	if f.X != cx || f.Y != cy {
		t.Fatalf("e4 figure not centred")
	}
}

func TestDrag(t *testing.T) {
	gb := src.NewBuilderBoard(logx.NewNop())
	gb.CreateClassic()
	m := NewMapper(100, 0, 0)
	m.Resync(gb.Pieces())
	cx, cy := m.Center(12)
	if !m.BeginDrag(12, cx+10, cy+10) {
		t.Fatalf("begin drag")
	}
	m.DragTo(400, 300)
	f, _ := m.FigureAt(12)
	if !f.Dragging || f.X != 390 || f.Y != 290 {
		t.Fatalf("dragged figure: %+v", f)
	}
	// resync keeps a dragged figure where the pointer is
	m.Resync(gb.Pieces())
	f, _ = m.FigureAt(12)
	if f.X != 390 {
		t.Fatalf("resync moved dragged figure")
	}
	if figs := m.Figures(); !figs[len(figs)-1].Dragging {
		t.Fatalf("dragged figure must be drawn last")
	}
	m.EndDrag()
	f, _ = m.FigureAt(12)
	if f.Dragging || f.X != cx || f.Y != cy {
		t.Fatalf("drop must recentre: %+v", f)
	}
	if m.BeginDrag(30, 0, 0) {
		t.Fatalf("empty square cannot be dragged")
	}
}
