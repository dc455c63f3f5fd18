package gdraw

import (
	"fmt"
	"powerchess/src/base"
	"powerchess/src/boardui"
	"powerchess/src/midgame"
	"powerchess/src/powerup"
	"powerchess/ui/gui/gbase"
	"powerchess/ui/gui/gctx"
	"powerchess/ui/gui/ghelper"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const tick = time.Second / gbase.TPS

// GUIPlayDrawer hosts one match: it feeds input to the mid-game, advances
// it one tick per Update and draws its View.
type GUIPlayDrawer struct {
	match  *midgame.MidGame
	poller pointerPoller

	// buttons, rebuilt when the layout changes
	layout                  boardui.Layout
	offer, accept, forfeit  *ghelper.Button
	resume, restart, quitBt *ghelper.Button
}

func NewGUIPlayDrawer(ctx *gctx.GUIGameContext) (*GUIPlayDrawer, error) {
	opts, err := ctx.Config.MatchOptions()
	if err != nil {
		return nil, err
	}
	if ctx.Window.W > 0 && ctx.Window.H > 0 {
		opts.Width, opts.Height = float64(ctx.Window.W), float64(ctx.Window.H)
		opts.SquareSize = float64(min(ctx.Window.H, ctx.Window.W/2) / 8)
	}
	m, err := midgame.New(opts, ctx.Engine, ctx.Logx.Named("midgame"))
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	pd := &GUIPlayDrawer{match: m}
	pd.poller.w, pd.poller.h = ctx.Window.W, ctx.Window.H
	pd.makeLayoutButtons(ctx)
	return pd, nil
}

func (pd *GUIPlayDrawer) makeLayoutButtons(ctx *gctx.GUIGameContext) {
	l := pd.match.Layout()
	lw := ctx.AssetsWorker.Lang()
	pd.layout = l
	pd.offer = ghelper.NewButton(lw.T("play.offer"), l.Offer, ctx.Theme)
	pd.accept = ghelper.NewButton(lw.T("play.accept"), l.Accept, ctx.Theme)
	pd.forfeit = ghelper.NewButton(lw.T("play.forfeit"), l.Forfeit, ctx.Theme)
	pd.resume = ghelper.NewButton(lw.T("pause.resume"), l.Resume, ctx.Theme)
	pd.restart = ghelper.NewButton(lw.T("pause.restart"), l.Restart, ctx.Theme)
	pd.quitBt = ghelper.NewButton(lw.T("pause.quit"), l.Quit, ctx.Theme)
}

func (pd *GUIPlayDrawer) buttons(paused bool) []*ghelper.Button {
	if paused {
		return []*ghelper.Button{pd.resume, pd.restart, pd.quitBt}
	}
	return []*ghelper.Button{pd.offer, pd.accept, pd.forfeit}
}

// Update
func (pd *GUIPlayDrawer) Update(ctx *gctx.GUIGameContext) (SceneType, error) {
	for _, ev := range pd.poller.poll(ctx.Window.W, ctx.Window.H) {
		pd.match.HandleEvent(ev)
	}
	if pd.match.Layout() != pd.layout {
		pd.makeLayoutButtons(ctx)
	}

	// buttons only animate here; clicks reach the match as pointer events
	v := pd.match.View()
	pd.offer.Disabled = !v.CanOffer
	pd.accept.Disabled = !v.CanAccept
	mx, my := pd.poller.cursor()
	for _, b := range pd.buttons(v.Paused) {
		b.HandleInput(mx, my, pd.poller.justPressed, pd.poller.justReleased)
		b.UpdateAnim(tick.Seconds())
	}

	tr, err := pd.match.Update(tick)
	if err != nil {
		return SceneNotChanged, fmt.Errorf("match %s: %w", v.MatchID, err)
	}
	switch tr {
	case midgame.ToPostGame:
		ctx.Finished = pd.match.Session()
		ctx.FinalBoard = pd.match.Board().FEN()
		return ScenePostGame, nil
	case midgame.ToQuit:
		pd.match.Wait()
		return SceneNotChanged, gbase.ErrExit
	}
	return SceneNotChanged, nil
}

func (pd *GUIPlayDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	v := pd.match.View()
	mp := pd.match.Mapper()
	fonts := ctx.AssetsWorker.Fonts()
	lw := ctx.AssetsWorker.Lang()

	drawBoard(ctx, mp, screen)
	if v.LastMove != nil {
		ghelper.DrawRectStroke(screen, mp.SquareRect(v.LastMove.From), 3, ctx.Theme.Accent)
		ghelper.DrawRectStroke(screen, mp.SquareRect(v.LastMove.To), 3, ctx.Theme.Accent)
	}
	for _, o := range v.Overlays {
		if o.Kind != boardui.OverlayPromotion {
			ghelper.DrawRect(screen, o.Rect, ctx.Theme.Overlays[o.Kind])
		}
	}
	for _, f := range v.Figures {
		if f.Dragging {
			ghelper.DrawRect(screen, mp.SquareRect(f.Square), shadow)
		}
	}
	drawFigures(ctx, v.Figures, v.SquareSize, screen)
	if v.Promoting {
		// choices cover the figures on their squares
		for _, o := range v.Overlays {
			if o.Kind != boardui.OverlayPromotion {
				continue
			}
			ghelper.DrawRect(screen, o.Rect, ctx.Theme.Overlays[o.Kind])
			x, y := o.Rect.Center()
			choice := boardui.Figure{Piece: base.Piece{Kind: o.Promo, Color: o.Color}, Square: o.Square, X: x, Y: y}
			drawFigures(ctx, []boardui.Figure{choice}, v.SquareSize, screen)
		}
	}

	pd.drawEvalBar(ctx, v, screen)
	pd.drawPanel(ctx, v, screen)

	status := lw.Tf("play.turn", v.ActorName)
	switch {
	case v.Thinking:
		status = lw.Tf("play.thinking", v.ActorName)
	case v.Promoting:
		status = lw.T("play.promote")
	case v.DrawOfferedBy != base.NoColor:
		status = lw.Tf("play.offered", v.DrawOfferedBy)
	}
	text.Draw(screen, status, fonts.Normal, int(v.Layout.PanelMidX)-150, int(v.Layout.Height*0.5)-240, ctx.Theme.MenuText)

	if v.Paused {
		DrawModal(ctx, 1, lw.T("pause.title"), "", screen)
	}
	for _, b := range pd.buttons(v.Paused) {
		b.DrawAnimated(screen, fonts.Pixel, ctx.Theme)
	}
}

// drawEvalBar fills the bar from the bottom with White's share.
func (pd *GUIPlayDrawer) drawEvalBar(ctx *gctx.GUIGameContext, v midgame.View, screen *ebiten.Image) {
	bar := v.Layout.EvalBar
	ghelper.DrawRect(screen, bar, ctx.Theme.EvalBlack)
	white := bar
	white.H = bar.H * (v.Evaluation + 1) / 2
	white.Y = bar.Y + bar.H - white.H
	if v.Rotated {
		white.Y = bar.Y
	}
	ghelper.DrawRect(screen, white, ctx.Theme.EvalWhite)
	ghelper.DrawRectStroke(screen, bar, 2, ctx.Theme.ButtonStroke)
}

func (pd *GUIPlayDrawer) drawPanel(ctx *gctx.GUIGameContext, v midgame.View, screen *ebiten.Image) {
	lw := ctx.AssetsWorker.Lang()
	for _, o := range v.Panel {
		ghelper.DrawRect(screen, o.Rect, ctx.Theme.Overlays[o.Kind])
		if o.Kind != boardui.OverlayPowerUp || o.Held == powerup.None {
			continue
		}
		label := lw.T("powerup." + o.Held.String())
		b := text.BoundString(ctx.AssetsWorker.Fonts().PixelLow, label)
		x, y := o.Rect.Center()
		text.Draw(screen, label, ctx.AssetsWorker.Fonts().PixelLow, int(x)-b.Dx()/2, int(y)+b.Dy()/2, ctx.Theme.ButtonText)
	}
}
