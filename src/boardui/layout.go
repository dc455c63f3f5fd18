package boardui

import "powerchess/src/powerup"

// Layout is the panel geometry right of the board.
type Layout struct {
	Width, Height float64
	BoardPx       float64 // x where the panel starts

	EvalBar   Rect
	Slots     [powerup.Capacity]Rect
	Offer     Rect
	Accept    Rect
	Forfeit   Rect
	Resume    Rect
	Restart   Rect
	Quit      Rect
	SlotSize  float64
	PanelMidX float64
}

const (
	buttonW      = 300
	buttonH      = 100
	pauseButtonW = 200
	pauseButtonH = 50
)

// NewLayout derives the panel for a window of w x h with the board
// ending at boardPx.
func NewLayout(w, h, boardPx float64) Layout {
	l := Layout{Width: w, Height: h, BoardPx: boardPx}
	l.SlotSize = float64(int((w - (boardPx + 100)) * 0.25))
	if l.SlotSize < 0 {
		l.SlotSize = 0
	}
	for i := range l.Slots {
		l.Slots[i] = Rect{X: w - float64(i+1)*(l.SlotSize+5), Y: 5, W: l.SlotSize, H: l.SlotSize}
	}
	l.PanelMidX = boardPx + (w-boardPx)*0.5
	l.Offer = Rect{X: l.PanelMidX - buttonW/2, Y: h * 0.5, W: buttonW, H: buttonH}
	l.Accept = Rect{X: l.PanelMidX - buttonW/2, Y: h*0.5 + 200, W: buttonW, H: buttonH}
	l.Forfeit = Rect{X: l.PanelMidX - buttonW/2, Y: h*0.5 - 200, W: buttonW, H: buttonH}
	l.EvalBar = Rect{X: boardPx + 15, Y: 10, W: 50, H: h - 20}

	cx, cy := w/2, h/2
	l.Resume = Rect{X: cx - pauseButtonW/2, Y: cy - 100 - pauseButtonH/2, W: pauseButtonW, H: pauseButtonH}
	l.Restart = Rect{X: cx - pauseButtonW/2, Y: cy - pauseButtonH/2, W: pauseButtonW, H: pauseButtonH}
	l.Quit = Rect{X: cx - pauseButtonW/2, Y: cy + 100 - pauseButtonH/2, W: pauseButtonW, H: pauseButtonH}
	return l
}

// SlotAt returns the power-up slot under (x, y).
func (l Layout) SlotAt(x, y float64) (int, bool) {
	for i, r := range l.Slots {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// PowerUpOverlays returns the slot backgrounds followed by one overlay per
// held power-up.
func (l Layout) PowerUpOverlays(held []powerup.Kind) []Overlay {
	out := make([]Overlay, 0, len(l.Slots)+len(held))
	for i, r := range l.Slots {
		out = append(out, Overlay{Kind: OverlayPowerUpBackground, Slot: i, Square: -1, Rect: r})
	}
	for i, k := range held {
		if i >= len(l.Slots) || k == powerup.None {
			break
		}
		out = append(out, Overlay{Kind: OverlayPowerUp, Slot: i, Square: -1, Held: k, Rect: l.Slots[i]})
	}
	return out
}
