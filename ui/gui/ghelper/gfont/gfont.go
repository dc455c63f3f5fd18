package gfont

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Pixel    font.Face
	PixelLow font.Face
	Normal   font.Face
	Bold     font.Face
}

func face(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// LoadFonts builds the faces from the Go fonts bundled with x/image, so no
// asset directory is needed.
func LoadFonts() (*Fonts, error) {
	var err error
	fonts := &Fonts{PixelLow: basicfont.Face7x13}

	if fonts.Pixel, err = face(goregular.TTF, 14); err != nil {
		return nil, err
	}
	if fonts.Normal, err = face(goregular.TTF, 20); err != nil {
		return nil, err
	}
	// for titles and piece letters
	if fonts.Bold, err = face(gobold.TTF, 28); err != nil {
		return nil, err
	}
	return fonts, nil
}

// PieceFace returns a bold face sized for a piece token of size px.
func PieceFace(px float64) (font.Face, error) {
	return face(gobold.TTF, px*0.5)
}
