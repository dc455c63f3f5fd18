package ghelper

import (
	"powerchess/src/base"
	"powerchess/ui/gui/ghelper/gfont"
	"powerchess/ui/gui/tools/lang"

	"github.com/hajimehoshi/ebiten/v2"
)

// GUIAssetsWorker owns fonts, labels and piece sprites. Sprites are rendered
// for one square size and re-rendered when the size changes.
type GUIAssetsWorker struct {
	fonts       *gfont.Fonts
	lang        *lang.GUILangWorker
	pieceImages map[base.Piece]*ebiten.Image
	pieceSize   int
}

func NewGUIAssetsWorker(l lang.LangType) (*GUIAssetsWorker, error) {
	fonts, err := gfont.LoadFonts()
	if err != nil {
		return nil, err
	}
	lw, err := lang.NewGUILangWorker(l)
	if err != nil {
		return nil, err
	}
	return &GUIAssetsWorker{fonts: fonts, lang: lw}, nil
}

// Piece returns the sprite of p for squares of size px.
func (aw *GUIAssetsWorker) Piece(p base.Piece, px int) *ebiten.Image {
	if px != aw.pieceSize || aw.pieceImages == nil {
		aw.renderPieces(px)
	}
	return aw.pieceImages[p]
}

func (aw *GUIAssetsWorker) renderPieces(px int) {
	aw.pieceSize = px
	aw.pieceImages = make(map[base.Piece]*ebiten.Image, 12)
	face, err := gfont.PieceFace(float64(px))
	if err != nil {
		face = aw.fonts.Bold
	}
	for _, c := range []base.Color{base.White, base.Black} {
		for k := base.King; k <= base.Pawn; k++ {
			p := base.Piece{Kind: k, Color: c}
			aw.pieceImages[p] = RenderPieceToken(p, px, face)
		}
	}
}

func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}

func (aw *GUIAssetsWorker) Lang() *lang.GUILangWorker {
	return aw.lang
}
