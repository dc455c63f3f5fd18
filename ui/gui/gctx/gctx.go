package gctx

import (
	"powerchess/src/engine"
	"powerchess/src/logx"
	"powerchess/src/midgame"
	"powerchess/ui/gui/gbase"
	"powerchess/ui/gui/gbase/gconf"
	"powerchess/ui/gui/ghelper"
)

// ---- GUI Context ----

type GUIGameContext struct {
	Config       *gconf.Config
	AssetsWorker *ghelper.GUIAssetsWorker
	Theme        gbase.Palette
	Engine       engine.Engine // plays the computer side and scores positions
	Logx         logx.Logger
	Window       struct{ W, H int }

	// Finished is the session handed from the match to the post-game scene.
	Finished *midgame.Session
	// FinalBoard is the last FEN of the finished match.
	FinalBoard string
}

func NewGUIGameContext(c *gconf.Config, a *ghelper.GUIAssetsWorker, e engine.Engine, l logx.Logger) *GUIGameContext {
	return &GUIGameContext{
		Config:       c,
		AssetsWorker: a,
		Theme:        gbase.PaletteFromString(c.Theme),
		Engine:       e,
		Logx:         l,
		Window:       struct{ W, H int }{c.WindowW, c.WindowH},
	}
}
