package gdraw

import (
	"image/color"
	"powerchess/src/base"
	"powerchess/src/boardui"
	"powerchess/ui/gui/gctx"
	"powerchess/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// ---- Scene ----

type Scene interface {
	Update(ctx *gctx.GUIGameContext) (SceneType, error)
	Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image)
}

type SceneType int

const (
	ScenePlay SceneType = iota
	ScenePostGame
	SceneNotChanged
)

func (t SceneType) String() string {
	switch t {
	case ScenePlay:
		return "play"
	case ScenePostGame:
		return "post-game"
	default:
		return "not-changed"
	}
}

// ToScene builds the scene for t, or returns s for SceneNotChanged.
func (t SceneType) ToScene(s Scene, ctx *gctx.GUIGameContext) (Scene, error) {
	switch t {
	case ScenePlay:
		return NewGUIPlayDrawer(ctx)
	case ScenePostGame:
		return NewGUIPostGameDrawer(ctx)
	default:
	}
	return s, nil
}

// drawBoard paints the 64 squares of mp.
func drawBoard(ctx *gctx.GUIGameContext, mp *boardui.Mapper, screen *ebiten.Image) {
	for sq := base.Square(0); sq < 64; sq++ {
		c := ctx.Theme.DarkSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			c = ctx.Theme.LightSquare
		}
		ghelper.DrawRect(screen, mp.SquareRect(sq), c)
	}
}

func drawFigures(ctx *gctx.GUIGameContext, figures []boardui.Figure, size float64, screen *ebiten.Image) {
	px := int(size)
	for _, f := range figures {
		img := ctx.AssetsWorker.Piece(f.Piece, px)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(f.X-size/2, f.Y-size/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

// DrawModal dims the screen and draws a centred box with title and message.
// scale runs 0..1 while the box opens.
func DrawModal(ctx *gctx.GUIGameContext, scale float64, title, message string, screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	ghelper.DrawRect(screen, boardui.Rect{W: float64(w), H: float64(h)}, ctx.Theme.ModalBg)

	fonts := ctx.AssetsWorker.Fonts()
	tb := text.BoundString(fonts.Bold, title)
	mb := text.BoundString(fonts.Normal, message)
	mw := max(tb.Dx(), mb.Dx()) + 64
	mh := tb.Dy() + mb.Dy() + 120

	scale = min(max(scale, 0), 1)
	currW := max(int(float64(mw)*scale), 6)
	currH := max(int(float64(mh)*scale), 6)
	mx := (w - currW) / 2
	my := (h - currH) / 2

	modalImg := ghelper.RenderRoundedRect(currW, currH, 16, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 3)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx), float64(my))
	screen.DrawImage(modalImg, op)

	// text only once the box is (almost) open
	if scale > 0.85 {
		text.Draw(screen, title, fonts.Bold, mx+(currW-tb.Dx())/2, my+48, ctx.Theme.MenuText)
		text.Draw(screen, message, fonts.Normal, mx+(currW-mb.Dx())/2, my+48+tb.Dy()+24, ctx.Theme.MenuText)
	}
}

// outcomeText is the localised result line, e.g. "Black wins (checkmate)".
func outcomeText(ctx *gctx.GUIGameContext, o base.Outcome) string {
	key := "outcome.draw"
	switch o.Winner {
	case base.White:
		key = "outcome.1-0"
	case base.Black:
		key = "outcome.0-1"
	}
	return ctx.AssetsWorker.Lang().T(key) + " (" + o.Termination.String() + ")"
}

var shadow = color.RGBA{0x00, 0x00, 0x00, 0x40}
