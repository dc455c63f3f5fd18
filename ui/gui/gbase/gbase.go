package gbase

import (
	"errors"
	"image/color"
	"powerchess/src/boardui"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

// --- UI constants ---

const (
	AppBgR = 90
	AppBgG = 120
	AppBgB = 130
	TPS    = 60 // ticks per second of the host loop
)

// ---- Styles (palettes) ----

type Palette struct {
	Bg           color.RGBA
	ButtonFill   color.RGBA
	ButtonStroke color.RGBA
	ButtonText   color.RGBA
	MenuText     color.RGBA
	Accent       color.RGBA
	ModalBg      color.RGBA

	LightSquare color.RGBA
	DarkSquare  color.RGBA
	EvalWhite   color.RGBA
	EvalBlack   color.RGBA
	Overlays    map[boardui.OverlayKind]color.RGBA
}

func (p Palette) String() string {
	switch p.Bg {
	case LightPalette.Bg:
		return "light"
	case DarkPalette.Bg:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "dark":
		return DarkPalette
	default:
	}
	return LightPalette
}

var LightPalette = Palette{
	Bg:           color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	ButtonFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	ButtonStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	ButtonText:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	MenuText:     color.RGBA{0x22, 0x22, 0x22, 0xff},
	Accent:       color.RGBA{0x22, 0x88, 0xcc, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x88},
	LightSquare:  color.RGBA{0xee, 0xd8, 0xb5, 0xff},
	DarkSquare:   color.RGBA{0xb5, 0x88, 0x63, 0xff},
	EvalWhite:    color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
	EvalBlack:    color.RGBA{0x30, 0x30, 0x30, 0xff},
	Overlays:     overlayColors,
}

var DarkPalette = Palette{
	Bg:           color.RGBA{0x12, 0x12, 0x12, 0xff},
	ButtonFill:   color.RGBA{0x20, 0x20, 0x20, 0xff},
	ButtonStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	ButtonText:   color.RGBA{0xee, 0xee, 0xee, 0xff},
	MenuText:     color.RGBA{0xee, 0xee, 0xee, 0xff},
	Accent:       color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x99},
	LightSquare:  color.RGBA{0x9e, 0xa8, 0xb3, 0xff},
	DarkSquare:   color.RGBA{0x4b, 0x5a, 0x6b, 0xff},
	EvalWhite:    color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	EvalBlack:    color.RGBA{0x10, 0x10, 0x10, 0xff},
	Overlays:     overlayColors,
}

// translucent tints drawn over squares and slots
var overlayColors = map[boardui.OverlayKind]color.RGBA{
	boardui.OverlaySelected:          {0xf6, 0xf6, 0x69, 0x90},
	boardui.OverlayMove:              {0x4c, 0xaf, 0x50, 0x80},
	boardui.OverlayAttack:            {0xe5, 0x39, 0x35, 0x90},
	boardui.OverlayPromotion:         {0xff, 0xff, 0xff, 0xe0},
	boardui.OverlayPowerUp:           {0x7e, 0x57, 0xc2, 0xd0},
	boardui.OverlayPowerUpBackground: {0x00, 0x00, 0x00, 0x30},
	boardui.OverlayHint:              {0x21, 0x96, 0xf3, 0x80},
}
