package gdraw

import (
	"fmt"
	"powerchess/src/boardui"
	"powerchess/ui/gui/gbase"
	"powerchess/ui/gui/gctx"
	"powerchess/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
)

// GUIPostGameDrawer shows the final position and the result.
type GUIPostGameDrawer struct {
	board  *boardui.Mapper
	result string
	msg    ghelper.MessageBox
	poller pointerPoller
	again  *ghelper.Button
	quit   *ghelper.Button
}

func NewGUIPostGameDrawer(ctx *gctx.GUIGameContext) (*GUIPostGameDrawer, error) {
	mp, err := ctx.Finished.BoardHandle()
	if err != nil {
		return nil, err
	}
	if ctx.Finished.Outcome == nil {
		return nil, fmt.Errorf("match %s ended without outcome", ctx.Finished.ID)
	}
	mp.Clear()
	mp.SetHint(nil)
	mp.EndDrag()

	pg := &GUIPostGameDrawer{board: mp, result: outcomeText(ctx, *ctx.Finished.Outcome)}
	ctx.Logx.Infof("post-game %s: %s, final position %s", ctx.Finished.ID, pg.result, ctx.FinalBoard)

	lw := ctx.AssetsWorker.Lang()
	w, h := float64(ctx.Window.W), float64(ctx.Window.H)
	pg.again = ghelper.NewButton(lw.T("post.again"), boardui.Rect{X: w/2 - 210, Y: h/2 + 80, W: 200, H: 50}, ctx.Theme)
	pg.quit = ghelper.NewButton(lw.T("post.quit"), boardui.Rect{X: w/2 + 10, Y: h/2 + 80, W: 200, H: 50}, ctx.Theme)
	pg.poller.w, pg.poller.h = ctx.Window.W, ctx.Window.H
	pg.msg.ShowMessage(pg.result)
	return pg, nil
}

func (pg *GUIPostGameDrawer) Update(ctx *gctx.GUIGameContext) (SceneType, error) {
	pg.poller.poll(ctx.Window.W, ctx.Window.H)
	pg.msg.AnimateMessage(tick.Seconds())
	mx, my := pg.poller.cursor()
	again := pg.again.HandleInput(mx, my, pg.poller.justPressed, pg.poller.justReleased)
	quit := pg.quit.HandleInput(mx, my, pg.poller.justPressed, pg.poller.justReleased)
	pg.again.UpdateAnim(tick.Seconds())
	pg.quit.UpdateAnim(tick.Seconds())
	switch {
	case quit:
		return SceneNotChanged, gbase.ErrExit
	case again:
		ctx.Finished = nil
		return ScenePlay, nil
	}
	return SceneNotChanged, nil
}

func (pg *GUIPostGameDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	drawBoard(ctx, pg.board, screen)
	drawFigures(ctx, pg.board.Figures(), pg.board.SquareSize(), screen)
	DrawModal(ctx, pg.msg.Scale, ctx.AssetsWorker.Lang().T("post.title"), pg.msg.Text, screen)
	if !pg.msg.Animating {
		pg.again.DrawAnimated(screen, ctx.AssetsWorker.Fonts().Pixel, ctx.Theme)
		pg.quit.DrawAnimated(screen, ctx.AssetsWorker.Fonts().Pixel, ctx.Theme)
	}
}
