package boardui

import (
	"powerchess/src/base"
	"powerchess/src/powerup"
	"sort"
)

type OverlayKind uint8

const (
	OverlaySelected OverlayKind = iota
	OverlayMove
	OverlayAttack
	OverlayPromotion
	OverlayPowerUp
	OverlayPowerUpBackground
	OverlayHint
)

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlay is a transient annotation bound to a board square or a panel slot.
type Overlay struct {
	Kind   OverlayKind
	Square base.Square
	Slot   int
	Promo  base.PieceKind // OverlayPromotion only
	Color  base.Color     // OverlayPromotion only
	Held   powerup.Kind   // OverlayPowerUp only
	Rect   Rect
}

// Figure is the visual copy of a piece.
type Figure struct {
	Piece    base.Piece
	Square   base.Square
	X, Y     float64 // centre
	Dragging bool
}

// Promotion choices from the destination square toward the mover.
var PromotionOrder = []base.PieceKind{base.Queen, base.Knight, base.Rook, base.Bishop}

// Mapper keeps square/pixel geometry, overlays and figures in sync with
// the authoritative board.
type Mapper struct {
	size    float64
	originX float64
	originY float64
	rotated bool

	overlays []Overlay
	selected base.Square
	figures  map[base.Square]*Figure
	drag     *Figure
	dragDX   float64
	dragDY   float64
	hint     *base.Move
}

func NewMapper(squareSize, originX, originY float64) *Mapper {
	return &Mapper{
		size:     squareSize,
		originX:  originX,
		originY:  originY,
		selected: base.NoSquare,
		figures:  make(map[base.Square]*Figure, 32),
	}
}

func (m *Mapper) SquareSize() float64 { return m.size }
func (m *Mapper) Rotated() bool       { return m.rotated }

// BoardRect is the screen area covered by the 8x8 grid.
func (m *Mapper) BoardRect() Rect {
	return Rect{X: m.originX, Y: m.originY, W: 8 * m.size, H: 8 * m.size}
}

// SetGeometry changes square size and origin and recentres the figures.
func (m *Mapper) SetGeometry(squareSize, originX, originY float64) {
	m.size, m.originX, m.originY = squareSize, originX, originY
	m.relayout()
}

// SetRotated flips the view; overlays are cleared on every change.
func (m *Mapper) SetRotated(r bool) {
	if m.rotated == r {
		return
	}
	m.rotated = r
	m.Clear()
	m.relayout()
}

func (m *Mapper) Rotate() { m.SetRotated(!m.rotated) }

// SquareToScreen returns the top-left pixel of sq.
func (m *Mapper) SquareToScreen(sq base.Square) (float64, float64) {
	col, row := sq.File(), 7-sq.Rank()
	if m.rotated {
		col, row = 7-col, 7-row
	}
	return m.originX + float64(col)*m.size, m.originY + float64(row)*m.size
}

// ScreenToSquare is the inverse of SquareToScreen; ok is false off the board.
func (m *Mapper) ScreenToSquare(x, y float64) (base.Square, bool) {
	if !m.BoardRect().Contains(x, y) {
		return base.NoSquare, false
	}
	col := int((x - m.originX) / m.size)
	row := int((y - m.originY) / m.size)
	if m.rotated {
		col, row = 7-col, 7-row
	}
	return base.NewSquare(col, 7-row), true
}

func (m *Mapper) Center(sq base.Square) (float64, float64) {
	x, y := m.SquareToScreen(sq)
	return x + m.size/2, y + m.size/2
}

// SquareRect is the pixel area of sq.
func (m *Mapper) SquareRect(sq base.Square) Rect {
	x, y := m.SquareToScreen(sq)
	return Rect{X: x, Y: y, W: m.size, H: m.size}
}

// Clear drops every overlay and the selection.
func (m *Mapper) Clear() {
	m.overlays = m.overlays[:0]
	m.selected = base.NoSquare
}

func (m *Mapper) Selected() base.Square { return m.selected }

// Select replaces all overlays with one selected overlay on sq and one per
// legal destination from sq, marked as attack when the target is occupied.
func (m *Mapper) Select(sq base.Square, moves []base.Move, pieces map[base.Square]base.Piece) {
	m.Clear()
	m.selected = sq
	m.overlays = append(m.overlays, Overlay{Kind: OverlaySelected, Square: sq, Slot: -1, Rect: m.SquareRect(sq)})
	seen := make(map[base.Square]bool, len(moves))
	for _, mv := range moves {
		if mv.From != sq || seen[mv.To] {
			continue
		}
		// one overlay per destination even with four promotion moves
		seen[mv.To] = true
		kind := OverlayMove
		if p, ok := pieces[mv.To]; ok && !p.IsEmpty() {
			kind = OverlayAttack
		}
		m.overlays = append(m.overlays, Overlay{Kind: kind, Square: mv.To, Slot: -1, Rect: m.SquareRect(mv.To)})
	}
}

// ShowPromotion replaces all overlays with the four choices for a pawn
// of color c arriving on to.
func (m *Mapper) ShowPromotion(to base.Square, c base.Color) {
	m.Clear()
	step := -8
	if c == base.Black {
		step = 8
	}
	for i, kind := range PromotionOrder {
		sq := to + base.Square(i*step)
		m.overlays = append(m.overlays, Overlay{
			Kind: OverlayPromotion, Square: sq, Slot: i, Promo: kind, Color: c, Rect: m.SquareRect(sq),
		})
	}
}

// OverlayAt returns the board overlay under sq.
func (m *Mapper) OverlayAt(sq base.Square) (Overlay, bool) {
	for _, o := range m.overlays {
		if o.Square == sq {
			return o, true
		}
	}
	return Overlay{}, false
}

// PromotionAt returns the choice under pixel (x, y).
func (m *Mapper) PromotionAt(x, y float64) (base.PieceKind, bool) {
	for _, o := range m.overlays {
		if o.Kind == OverlayPromotion && o.Rect.Contains(x, y) {
			return o.Promo, true
		}
	}
	return base.NoKind, false
}

func (m *Mapper) Overlays() []Overlay {
	out := append([]Overlay(nil), m.overlays...)
	if m.hint != nil {
		out = append(out,
			Overlay{Kind: OverlayHint, Square: m.hint.From, Slot: 0, Rect: m.SquareRect(m.hint.From)},
			Overlay{Kind: OverlayHint, Square: m.hint.To, Slot: 1, Rect: m.SquareRect(m.hint.To)},
		)
	}
	return out
}

func (m *Mapper) SetHint(mv *base.Move) { m.hint = mv }
func (m *Mapper) Hint() *base.Move     { return m.hint }

// Resync brings the figures in line with pieces: vacated or changed
// squares lose their figure, new or changed occupants get one, and every
// figure not being dragged snaps to its square centre.
func (m *Mapper) Resync(pieces map[base.Square]base.Piece) {
	for sq, f := range m.figures {
		if p, ok := pieces[sq]; !ok || p != f.Piece {
			if f == m.drag {
				m.drag = nil
			}
			delete(m.figures, sq)
		}
	}
	for sq, p := range pieces {
		if p.IsEmpty() {
			continue
		}
		if _, ok := m.figures[sq]; !ok {
			m.figures[sq] = &Figure{Piece: p, Square: sq}
		}
	}
	m.relayout()
}

func (m *Mapper) relayout() {
	for sq, f := range m.figures {
		if f.Dragging {
			continue
		}
		f.X, f.Y = m.Center(sq)
	}
}

// Figures returns copies ordered by square with the dragged one last.
func (m *Mapper) Figures() []Figure {
	out := make([]Figure, 0, len(m.figures))
	for _, f := range m.figures {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dragging != out[j].Dragging {
			return !out[i].Dragging
		}
		return out[i].Square < out[j].Square
	})
	return out
}

func (m *Mapper) FigureAt(sq base.Square) (Figure, bool) {
	f, ok := m.figures[sq]
	if !ok {
		return Figure{}, false
	}
	return *f, true
}

// BeginDrag picks up the figure on sq, keeping the grab offset.
func (m *Mapper) BeginDrag(sq base.Square, x, y float64) bool {
	f, ok := m.figures[sq]
	if !ok {
		return false
	}
	m.EndDrag()
	f.Dragging = true
	m.drag = f
	m.dragDX, m.dragDY = f.X-x, f.Y-y
	return true
}

func (m *Mapper) DragTo(x, y float64) {
	if m.drag == nil {
		return
	}
	m.drag.X, m.drag.Y = x+m.dragDX, y+m.dragDY
}

// Dragging returns the square the dragged figure came from.
func (m *Mapper) Dragging() (base.Square, bool) {
	if m.drag == nil {
		return base.NoSquare, false
	}
	return m.drag.Square, true
}

// EndDrag drops the figure back on its square.
func (m *Mapper) EndDrag() {
	if m.drag == nil {
		return
	}
	m.drag.Dragging = false
	m.drag.X, m.drag.Y = m.Center(m.drag.Square)
	m.drag = nil
}
