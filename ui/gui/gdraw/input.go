package gdraw

import (
	"powerchess/src/input"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerPoller turns ebiten mouse, touch and keyboard state into
// input events, one batch per tick.
type pointerPoller struct {
	lastX, lastY int
	touch        ebiten.TouchID
	touching     bool
	w, h         int

	justPressed, justReleased bool
}

func (p *pointerPoller) poll(w, h int) []input.Event {
	var evs []input.Event
	if w != p.w || h != p.h {
		if p.w != 0 {
			evs = append(evs, input.Event{Kind: input.Resize, X: float64(w), Y: float64(h)})
		}
		p.w, p.h = w, h
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		evs = append(evs, input.Escape())
	}

	p.justPressed, p.justReleased = false, false
	x, y := ebiten.CursorPosition()
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			p.touching = false
			p.justReleased = true
			return append(evs, input.Up(float64(p.lastX), float64(p.lastY)))
		}
		x, y = ebiten.TouchPosition(p.touch)
	} else if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touch, p.touching = ids[0], true
		x, y = ebiten.TouchPosition(p.touch)
		p.lastX, p.lastY = x, y
		p.justPressed = true
		return append(evs, input.Down(float64(x), float64(y)))
	}

	if x != p.lastX || y != p.lastY {
		evs = append(evs, input.Move(float64(x), float64(y)))
		p.lastX, p.lastY = x, y
	}
	if p.touching {
		return evs
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		p.justPressed = true
		evs = append(evs, input.Down(float64(x), float64(y)))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		p.justReleased = true
		evs = append(evs, input.Up(float64(x), float64(y)))
	}
	return evs
}

func (p *pointerPoller) cursor() (int, int) { return p.lastX, p.lastY }
