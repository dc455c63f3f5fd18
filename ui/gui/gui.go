package gui

import (
	"errors"
	"powerchess/src/engine"
	"powerchess/src/logx"
	"powerchess/ui/gui/gbase"
	"powerchess/ui/gui/gbase/gconf"
	"powerchess/ui/gui/gctx"
	"powerchess/ui/gui/gdraw"
	"powerchess/ui/gui/ghelper"
	"powerchess/ui/gui/ghelper/gdialog"
	"powerchess/ui/gui/tools/lang"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	current gdraw.Scene
	ctx     *gctx.GUIGameContext
}

func NewGUI(cfg *gconf.Config, eng engine.Engine, logx logx.Logger) (*GUIProcessing, error) {
	assets, err := ghelper.NewGUIAssetsWorker(lang.LangFromString(cfg.Lang))
	if err != nil {
		return nil, err
	}
	ctx := gctx.NewGUIGameContext(cfg, assets, eng, logx)
	play, err := gdraw.NewGUIPlayDrawer(ctx)
	if err != nil {
		return nil, err
	}
	return &GUIProcessing{current: play, ctx: ctx}, nil
}

// Run blocks until the window closes. A fatal session error is logged,
// shown in a native dialog and returned.
func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.ctx.Window.W, gp.ctx.Window.H)
	ebiten.SetWindowTitle("PowerChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(gbase.TPS)

	err := ebiten.RunGame(gp)
	if errors.Is(err, gbase.ErrExit) {
		gp.ctx.Logx.Info("exit request")
		return nil
	}
	if err != nil {
		gp.ctx.Logx.Errorf("fatal: %v", err)
		gdialog.ShowError(gp.ctx.AssetsWorker.Lang().T("error.title"), err)
	}
	return err
}

func (gp *GUIProcessing) Update() error {
	if ebiten.IsWindowBeingClosed() {
		lw := gp.ctx.AssetsWorker.Lang()
		if _, playing := gp.current.(*gdraw.GUIPlayDrawer); !playing || gdialog.Confirm(lw.T("quit.title"), lw.T("quit.confirm")) {
			return gbase.ErrExit
		}
	}
	next, err := gp.current.Update(gp.ctx)
	if err != nil {
		return err
	}
	if next == gdraw.SceneNotChanged {
		return nil
	}
	gp.ctx.Logx.Infof("scene %s", next)
	scene, err := next.ToScene(gp.current, gp.ctx)
	if err != nil {
		return err
	}
	gp.current = scene
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.current.Draw(gp.ctx, screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	gp.ctx.Window.W, gp.ctx.Window.H = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
