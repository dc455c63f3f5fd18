package src

import (
	"errors"
	"fmt"
	"powerchess/src/base"
	"powerchess/src/logic/history"
	"powerchess/src/logx"
	"strconv"

	"github.com/corentings/chess/v2"
)

var (
	ErrNoGame        = errors.New("game is not created")
	ErrIllegalMove   = errors.New("illegal move")
	ErrEmptySquare   = errors.New("square is empty")
	ErrKingProtected = errors.New("king cannot be removed or replaced")
	ErrExposesKing   = errors.New("edit leaves the side not to move in check")
)

// at firts use Create* methods
type GameBuilder struct {
	game      *chess.Game
	history   *history.History
	lastCheck bool
	logger    logx.Logger
}

func NewBuilderBoard(logger logx.Logger) *GameBuilder {
	return &GameBuilder{history: history.NewHistory(), logger: logger}
}

func (gb *GameBuilder) CreateFromFEN(fen string) error {
	gb.logger.Debugf("create game by FEN: %v", fen)
	opt, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("error parse FEN: %w", err)
	}
	gb.game = chess.NewGame(opt)
	gb.history = history.NewHistory()
	gb.lastCheck = false
	return nil
}

func (gb *GameBuilder) CreateClassic() {
	gb.logger.Debug("create classic game")
	if err := gb.CreateFromFEN(base.FEN_START_GAME); err != nil {
		gb.logger.DPanicf("start position rejected: %v", err)
	}
}

func (gb *GameBuilder) History() *history.History { return gb.history }

// return FEN of this game
func (gb *GameBuilder) FEN() string {
	if gb.game == nil {
		return ""
	}
	return gb.game.Position().String()
}

func (gb *GameBuilder) Turn() base.Color {
	if gb.game == nil {
		return base.NoColor
	}
	return fromColor(gb.game.Position().Turn())
}

func (gb *GameBuilder) PieceAt(sq base.Square) base.Piece {
	if gb.game == nil || !sq.Valid() {
		return base.EmptyPiece
	}
	return fromPiece(gb.game.Position().Board().Piece(chess.Square(sq)))
}

// Pieces returns the occupied squares of the current position.
func (gb *GameBuilder) Pieces() map[base.Square]base.Piece {
	out := make(map[base.Square]base.Piece, 32)
	if gb.game == nil {
		return out
	}
	for sq, p := range gb.game.Position().Board().SquareMap() {
		bp := fromPiece(p)
		if !bp.IsEmpty() {
			out[base.Square(sq)] = bp
		}
	}
	return out
}

func (gb *GameBuilder) LegalMoves() []base.Move {
	if gb.game == nil {
		return nil
	}
	valid := gb.game.ValidMoves()
	out := make([]base.Move, 0, len(valid))
	for _, m := range valid {
		out = append(out, base.Move{
			From:    base.Square(m.S1()),
			To:      base.Square(m.S2()),
			Promo:   fromPieceType(m.Promo()),
			Capture: m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant),
		})
	}
	return out
}

func (gb *GameBuilder) LegalMovesFrom(sq base.Square) []base.Move {
	var out []base.Move
	for _, m := range gb.LegalMoves() {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// IsPromotion reports whether from->to is a legal pawn move onto the last rank.
func (gb *GameBuilder) IsPromotion(from, to base.Square) bool {
	for _, m := range gb.LegalMovesFrom(from) {
		if m.To == to && m.Promo != base.NoKind {
			return true
		}
	}
	return false
}

// Push applies a move given in UCI notation (e2e4, e7e8q).
func (gb *GameBuilder) Push(uci string) error {
	if gb.game == nil {
		return ErrNoGame
	}
	mv, err := base.MoveFromUCI(uci)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	actor := gb.Turn()
	check, found := false, false
	for _, m := range gb.game.ValidMoves() {
		if base.Square(m.S1()) == mv.From && base.Square(m.S2()) == mv.To && fromPieceType(m.Promo()) == mv.Promo {
			found = true
			check = m.HasTag(chess.Check)
			mv.Capture = m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, uci, gb.FEN())
	}
	if err := gb.game.PushNotationMove(mv.UCI(), chess.UCINotation{}, nil); err != nil {
		return fmt.Errorf("push %s: %w", uci, err)
	}
	gb.lastCheck = check
	gb.logger.Infof("%s move %s", actor, mv)
	gb.history.Push(history.Entry{Kind: history.KindMove, Color: actor, Move: mv, FEN: gb.FEN()})
	return nil
}

// PushNull passes the turn without moving: side flips, en passant is
// cleared and the clocks advance as for a quiet move.
func (gb *GameBuilder) PushNull() error {
	if gb.game == nil {
		return ErrNoGame
	}
	f, err := splitFEN(gb.FEN())
	if err != nil {
		return err
	}
	actor := gb.Turn()
	if actor == base.White {
		f[1] = "b"
	} else {
		f[1] = "w"
		if n, err := strconv.Atoi(f[5]); err == nil {
			f[5] = strconv.Itoa(n + 1)
		}
	}
	f[3] = "-"
	if n, err := strconv.Atoi(f[4]); err == nil {
		f[4] = strconv.Itoa(n + 1)
	}
	if err := gb.rebuild(f); err != nil {
		return err
	}
	gb.lastCheck = false
	gb.logger.Infof("%s null move", actor)
	gb.history.Push(history.Entry{Kind: history.KindNull, Color: actor, FEN: gb.FEN()})
	return nil
}

// RemovePiece deletes a non-king piece without consuming a ply.
func (gb *GameBuilder) RemovePiece(sq base.Square) (base.Piece, error) {
	p := gb.PieceAt(sq)
	if p.IsEmpty() {
		return p, ErrEmptySquare
	}
	if p.Kind == base.King {
		return p, ErrKingProtected
	}
	if err := gb.edit(sq, base.EmptyPiece); err != nil {
		return p, err
	}
	gb.logger.Infof("%s removed %s on %s", gb.Turn(), p, sq)
	gb.history.Push(history.Entry{Kind: history.KindDestroy, Color: gb.Turn(), Square: sq, Piece: p, FEN: gb.FEN()})
	return p, nil
}

// ReplacePiece puts np on an occupied non-king square without consuming a ply.
func (gb *GameBuilder) ReplacePiece(sq base.Square, np base.Piece) error {
	p := gb.PieceAt(sq)
	if p.IsEmpty() {
		return ErrEmptySquare
	}
	if p.Kind == base.King || np.Kind == base.King || np.IsEmpty() {
		return ErrKingProtected
	}
	if err := gb.edit(sq, np); err != nil {
		return err
	}
	gb.logger.Infof("%s replaced %s on %s with %s", gb.Turn(), p, sq, np)
	gb.history.Push(history.Entry{Kind: history.KindPromote, Color: gb.Turn(), Square: sq, Piece: np, FEN: gb.FEN()})
	return nil
}

func (gb *GameBuilder) edit(sq base.Square, np base.Piece) error {
	if gb.game == nil {
		return ErrNoGame
	}
	before := gb.FEN()
	f, err := splitFEN(before)
	if err != nil {
		return err
	}
	pieces := gb.Pieces()
	board := gb.game.Position().Board().SquareMap()
	if np.IsEmpty() {
		delete(pieces, sq)
		delete(board, chess.Square(sq))
	} else {
		pieces[sq] = np
		board[chess.Square(sq)] = toPiece(np)
	}
	f[0] = chess.NewBoard(board).String()
	f[2] = pruneCastling(f[2], pieces)
	if f[3] != "-" && epVictim(f[3]) == sq {
		f[3] = "-"
	}
	if err := gb.rebuild(f); err != nil {
		return err
	}
	if gb.attacksKing() {
		if err := gb.rebuild(mustSplit(before)); err != nil {
			return err
		}
		return ErrExposesKing
	}
	gb.lastCheck = false
	return nil
}

// attacksKing reports whether the side to move could capture the enemy king.
func (gb *GameBuilder) attacksKing() bool {
	enemy := gb.Turn().Other()
	for _, m := range gb.LegalMoves() {
		p := gb.PieceAt(m.To)
		if p.Kind == base.King && p.Color == enemy {
			return true
		}
	}
	return false
}

func (gb *GameBuilder) rebuild(f fenFields) error {
	opt, err := chess.FEN(f.String())
	if err != nil {
		return fmt.Errorf("rebuild position %q: %w", f.String(), err)
	}
	gb.game = chess.NewGame(opt)
	return nil
}

func mustSplit(fen string) fenFields {
	f, _ := splitFEN(fen)
	return f
}

// LastMoveGaveCheck reports whether the latest committed move checked the opponent.
func (gb *GameBuilder) LastMoveGaveCheck() bool { return gb.lastCheck }

func (gb *GameBuilder) Outcome() base.Outcome {
	if gb.game == nil {
		return base.Outcome{}
	}
	var o base.Outcome
	switch gb.game.Outcome() {
	case chess.WhiteWon:
		o.Winner = base.White
	case chess.BlackWon:
		o.Winner = base.Black
	case chess.Draw:
		o.Winner = base.NoColor
	default:
		if len(gb.game.ValidMoves()) == 0 {
			return base.Outcome{Termination: base.Stalemate}
		}
		return base.Outcome{}
	}
	switch gb.game.Method() {
	case chess.Checkmate:
		o.Termination = base.Checkmate
	case chess.Stalemate:
		o.Termination = base.Stalemate
	case chess.InsufficientMaterial:
		o.Termination = base.InsufficientMaterial
	case chess.ThreefoldRepetition, chess.FivefoldRepetition:
		o.Termination = base.Repetition
	case chess.FiftyMoveRule, chess.SeventyFiveMoveRule:
		o.Termination = base.MoveRule
	case chess.DrawOffer:
		o.Termination = base.DrawAgreed
	default:
		o.Termination = base.Forfeit
	}
	return o
}

func fromColor(c chess.Color) base.Color {
	switch c {
	case chess.White:
		return base.White
	case chess.Black:
		return base.Black
	default:
		return base.NoColor
	}
}

func fromPieceType(t chess.PieceType) base.PieceKind {
	switch t {
	case chess.King:
		return base.King
	case chess.Queen:
		return base.Queen
	case chess.Rook:
		return base.Rook
	case chess.Bishop:
		return base.Bishop
	case chess.Knight:
		return base.Knight
	case chess.Pawn:
		return base.Pawn
	default:
		return base.NoKind
	}
}

func toPiece(p base.Piece) chess.Piece {
	if p.IsEmpty() {
		return chess.NoPiece
	}
	c := chess.White
	if p.Color == base.Black {
		c = chess.Black
	}
	var t chess.PieceType
	switch p.Kind {
	case base.King:
		t = chess.King
	case base.Queen:
		t = chess.Queen
	case base.Rook:
		t = chess.Rook
	case base.Bishop:
		t = chess.Bishop
	case base.Knight:
		t = chess.Knight
	default:
		t = chess.Pawn
	}
	return chess.NewPiece(t, c)
}

func fromPiece(p chess.Piece) base.Piece {
	if p == chess.NoPiece {
		return base.EmptyPiece
	}
	return base.Piece{Kind: fromPieceType(p.Type()), Color: fromColor(p.Color())}
}
