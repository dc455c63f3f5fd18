package ghelper

import (
	"image/color"
	"powerchess/src/base"
	"powerchess/src/boardui"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

func RenderRoundedRect(w, h, radius int, fill color.RGBA, stroke color.RGBA, strokeW float64) *ebiten.Image {
	// create a context with alpha and draw rounded rectangle using gg (anti-aliased)
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(radius))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

// RenderPieceToken draws p as a round token with its letter, size x size.
func RenderPieceToken(p base.Piece, size int, face font.Face) *ebiten.Image {
	dc := gg.NewContext(size, size)
	c := float64(size) / 2
	fill, ink := color.RGBA{0xfa, 0xfa, 0xfa, 0xff}, color.RGBA{0x20, 0x20, 0x20, 0xff}
	if p.Color == base.Black {
		fill, ink = ink, fill
	}
	dc.DrawCircle(c, c, c*0.8)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(color.RGBA{0x60, 0x60, 0x60, 0xff})
	dc.SetLineWidth(float64(size) / 30)
	dc.Stroke()
	if p.Kind == base.King {
		// crown ring
		dc.DrawCircle(c, c, c*0.65)
		dc.SetColor(ink)
		dc.SetLineWidth(float64(size) / 40)
		dc.Stroke()
	}
	dc.SetFontFace(face)
	dc.SetColor(ink)
	dc.DrawStringAnchored(string(base.Piece{Kind: p.Kind, Color: base.White}.Rune()), c, c, 0.5, 0.35)
	return ebiten.NewImageFromImage(dc.Image())
}

func DrawRect(screen *ebiten.Image, r boardui.Rect, c color.RGBA) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func DrawRectStroke(screen *ebiten.Image, r boardui.Rect, thickness float32, c color.Color) {
	if screen == nil || r.W <= 0 || r.H <= 0 || thickness <= 0 {
		return
	}
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), thickness, c, false)
}
