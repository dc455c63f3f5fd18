package ghelper

import (
	"math"
	"powerchess/src/boardui"
	"powerchess/ui/gui/gbase"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ease moves cur toward target, frame-rate independent.
func ease(cur, target, speed, dt float64) float64 {
	t := 1 - math.Exp(-speed*dt)
	return cur + (target-cur)*t
}

// ---- Button ----

type buttonState uint8

const (
	buttonIdle buttonState = iota
	buttonHover
	buttonPressed
	buttonReleased // short bounce after a click
)

// Button only animates; the click itself reaches the match as a pointer
// event on the same rectangle.
type Button struct {
	Label    string
	Rect     boardui.Rect
	Disabled bool

	img     *ebiten.Image
	state   buttonState
	scale   float64
	offsetY float64
}

const buttonSpeed = 10.0

// NewButton renders a button covering r.
func NewButton(label string, r boardui.Rect, theme gbase.Palette) *Button {
	w, h := max(int(r.W), 6), max(int(r.H), 6)
	return &Button{
		Label: label,
		Rect:  r,
		img:   RenderRoundedRect(w, h, 12, theme.ButtonFill, theme.ButtonStroke, 3),
		scale: 1,
	}
}

// HandleInput updates the press state and reports a completed click.
func (b *Button) HandleInput(px, py int, justPressed, justReleased bool) bool {
	inside := !b.Disabled && b.Rect.Contains(float64(px), float64(py))
	switch {
	case justPressed && inside:
		b.state = buttonPressed
	case justReleased && b.state == buttonPressed:
		if inside {
			b.state = buttonReleased
			return true
		}
		b.state = buttonIdle
	case b.state == buttonPressed:
	case b.state == buttonReleased && math.Abs(b.scale-1.03) > 0.005:
	case inside:
		b.state = buttonHover
	default:
		b.state = buttonIdle
	}
	return false
}

func (b *Button) target() (scale, offsetY float64) {
	switch b.state {
	case buttonPressed:
		return 0.96, 3
	case buttonReleased:
		return 1.03, 0
	case buttonHover:
		return 1.02, 0
	}
	return 1, 0
}

// UpdateAnim advances the press animation by dt seconds.
func (b *Button) UpdateAnim(dt float64) {
	scale, off := b.target()
	b.scale = ease(b.scale, scale, buttonSpeed, dt)
	b.offsetY = ease(b.offsetY, off, buttonSpeed, dt)
}

func (b *Button) DrawAnimated(screen *ebiten.Image, face font.Face, theme gbase.Palette) {
	if b.img == nil {
		return
	}
	cx, cy := b.Rect.Center()
	cy += b.offsetY

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.img.Bounds().Dx())/2, -float64(b.img.Bounds().Dy())/2)
	op.GeoM.Scale(b.scale, b.scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	if b.Disabled {
		op.ColorScale.ScaleAlpha(0.4)
	}
	screen.DrawImage(b.img, op)

	bounds := text.BoundString(face, b.Label)
	text.Draw(screen, b.Label, face, int(cx)-bounds.Dx()/2, int(cy)+bounds.Dy()/2, theme.ButtonText)
}

// ---- MessageBox ----

// MessageBox is the opening animation of a modal; Scale runs 0..1.
type MessageBox struct {
	Text      string
	Scale     float64
	Animating bool
}

const messageSpeed = 6.0

func (mb *MessageBox) ShowMessage(msg string) {
	mb.Text = msg
	mb.Scale = 0
	mb.Animating = true
}

func (mb *MessageBox) AnimateMessage(dt float64) {
	if !mb.Animating {
		return
	}
	mb.Scale = min(1, mb.Scale+messageSpeed*dt)
	mb.Animating = mb.Scale < 1
}
