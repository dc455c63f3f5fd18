package cli

import (
	"fmt"
	"io"
	"powerchess/src/base"
	"strings"
)

// ANSI-code
const (
	reset   = "\033[0m"
	lightBg = "\033[47m"
	darkBg  = "\033[100m"
	whiteF  = "\033[97m"
	blackF  = "\033[30m"
	dimF    = "\033[90m"
)

var glyphs = map[base.PieceKind][2]string{
	base.King:   {"♔", "♚"},
	base.Queen:  {"♕", "♛"},
	base.Rook:   {"♖", "♜"},
	base.Bishop: {"♗", "♝"},
	base.Knight: {"♘", "♞"},
	base.Pawn:   {"♙", "♟"},
}

func pieceGlyph(p base.Piece) string {
	g, ok := glyphs[p.Kind]
	if !ok {
		return " "
	}
	if p.Color == base.Black {
		return g[1]
	}
	return g[0]
}

// PrintBoard writes the board from White's side. Without color it falls
// back to FEN letters so the dump stays readable in logs and pipes.
func PrintBoard(w io.Writer, pieces map[base.Square]base.Piece, color bool) {
	var b strings.Builder
	b.WriteString("\n   a  b  c  d  e  f  g  h\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&b, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			p, ok := pieces[base.NewSquare(file, rank)]
			if !ok {
				p = base.EmptyPiece
			}
			if !color {
				r := '.'
				if !p.IsEmpty() {
					r = p.Rune()
				}
				fmt.Fprintf(&b, " %c ", r)
				continue
			}

			var bg, fg string
			if (rank+file)%2 == 1 {
				bg = lightBg
			} else {
				bg = darkBg
			}
			switch {
			case p.IsEmpty():
				fg = dimF
			case bg == lightBg:
				// outline and filled glyphs tell the sides apart
				fg = blackF
			case p.Color == base.White:
				fg = whiteF
			default:
				fg = blackF
			}
			fmt.Fprintf(&b, "%s%s %s %s", bg, fg, pieceGlyph(p), reset)
		}
		fmt.Fprintf(&b, " %d\n", rank+1)
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n\n")
	io.WriteString(w, b.String())
}
