package base

import "fmt"

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

func ColorFromString(s string) (Color, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return NoColor, fmt.Errorf("unknown color %q", s)
	}
}

type PieceKind uint8

const (
	NoKind PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// standard material values, king excluded
var MaterialValue = map[PieceKind]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
}

type Piece struct {
	Kind  PieceKind
	Color Color
}

var EmptyPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Rune returns the FEN letter of the piece (upper case for White).
func (p Piece) Rune() rune {
	var r rune
	switch p.Kind {
	case King:
		r = 'k'
	case Queen:
		r = 'q'
	case Rook:
		r = 'r'
	case Bishop:
		r = 'b'
	case Knight:
		r = 'n'
	case Pawn:
		r = 'p'
	default:
		return '.'
	}
	if p.Color == White {
		r -= 'a' - 'A'
	}
	return r
}

func (p Piece) String() string {
	return string(p.Rune())
}

func PieceFromRune(r rune) Piece {
	c := Black
	if r >= 'A' && r <= 'Z' {
		c = White
		r += 'a' - 'A'
	}
	switch r {
	case 'k':
		return Piece{King, c}
	case 'q':
		return Piece{Queen, c}
	case 'r':
		return Piece{Rook, c}
	case 'b':
		return Piece{Bishop, c}
	case 'n':
		return Piece{Knight, c}
	case 'p':
		return Piece{Pawn, c}
	default:
		return EmptyPiece
	}
}

// Square is 0..63, a1 = 0, rank-major from White's home rank.
type Square int8

const NoSquare Square = -1

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func (s Square) Valid() bool { return s >= 0 && s < 64 }
func (s Square) File() int   { return int(s) % 8 }
func (s Square) Rank() int   { return int(s) / 8 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]rune{rune(s.File() + 'a'), rune(s.Rank() + '1')})
}

func SquareFromAlgebraic(pos string) (Square, error) {
	// 'a' ~ 'h' to number
	// '1' ~ '8' to 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return NoSquare, fmt.Errorf("invalid position %q", pos)
	}
	return NewSquare(int(pos[0]-'a'), int(pos[1]-'1')), nil
}

// LastRank is the promotion rank for pawns of color c.
func LastRank(c Color) int {
	if c == Black {
		return 0
	}
	return 7
}

type Move struct {
	From    Square
	To      Square
	Promo   PieceKind
	Capture bool
}

// UCI returns the move in long algebraic form, e.g. e2e4 or e7e8q.
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promo != NoKind {
		s += string(Piece{Kind: m.Promo, Color: Black}.Rune())
	}
	return s
}

func (m Move) String() string { return m.UCI() }

func MoveFromUCI(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("invalid uci move %q", s)
	}
	from, err := SquareFromAlgebraic(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := SquareFromAlgebraic(s[2:4])
	if err != nil {
		return Move{}, err
	}
	mv := Move{From: from, To: to}
	if len(s) == 5 {
		mv.Promo = PieceFromRune(rune(s[4])).Kind
		if mv.Promo == NoKind || mv.Promo == King || mv.Promo == Pawn {
			return Move{}, fmt.Errorf("invalid promotion in %q", s)
		}
	}
	return mv, nil
}

type Termination uint8

const (
	NotTerminated Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	Repetition
	MoveRule
	DrawAgreed
	Forfeit
)

func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case Repetition:
		return "repetition"
	case MoveRule:
		return "move rule"
	case DrawAgreed:
		return "draw agreed"
	case Forfeit:
		return "forfeit"
	default:
		return "none"
	}
}

// Outcome of a match; Winner is NoColor for draws.
type Outcome struct {
	Winner      Color
	Termination Termination
}

func (o Outcome) Terminal() bool { return o.Termination != NotTerminated }

func (o Outcome) String() string {
	if !o.Terminal() {
		return "*"
	}
	switch o.Winner {
	case White:
		return "1-0 (" + o.Termination.String() + ")"
	case Black:
		return "0-1 (" + o.Termination.String() + ")"
	default:
		return "1/2-1/2 (" + o.Termination.String() + ")"
	}
}
