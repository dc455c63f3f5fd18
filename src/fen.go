package src

import (
	"fmt"
	"powerchess/src/base"
	"strings"
)

// fenFields is a split FEN record: placement, side, castling, en passant,
// halfmove clock, fullmove number.
type fenFields [6]string

func splitFEN(fen string) (fenFields, error) {
	var f fenFields
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return f, fmt.Errorf("invalid FEN %q", fen)
	}
	copy(f[:], parts)
	if len(parts) < 6 {
		f[4], f[5] = "0", "1"
	}
	return f, nil
}

func (f fenFields) String() string {
	return strings.Join(f[:], " ")
}

// pruneCastling drops the castling right tied to a rook corner that no
// longer holds its own rook.
func pruneCastling(rights string, pieces map[base.Square]base.Piece) string {
	if rights == "-" {
		return rights
	}
	corners := []struct {
		flag byte
		sq   base.Square
		rook base.Piece
	}{
		{'K', base.NewSquare(7, 0), base.Piece{Kind: base.Rook, Color: base.White}},
		{'Q', base.NewSquare(0, 0), base.Piece{Kind: base.Rook, Color: base.White}},
		{'k', base.NewSquare(7, 7), base.Piece{Kind: base.Rook, Color: base.Black}},
		{'q', base.NewSquare(0, 7), base.Piece{Kind: base.Rook, Color: base.Black}},
	}
	out := make([]byte, 0, 4)
	for i := 0; i < len(rights); i++ {
		keep := true
		for _, c := range corners {
			if rights[i] == c.flag && pieces[c.sq] != c.rook {
				keep = false
			}
		}
		if keep {
			out = append(out, rights[i])
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return string(out)
}

// epVictim returns the square of the pawn that can be taken en passant.
func epVictim(ep string) base.Square {
	sq, err := base.SquareFromAlgebraic(ep)
	if err != nil {
		return base.NoSquare
	}
	if sq.Rank() == 2 {
		return sq + 8
	}
	return sq - 8
}
