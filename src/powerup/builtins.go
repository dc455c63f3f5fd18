package powerup

import (
	"errors"
	"powerchess/src"
	"powerchess/src/base"
	"sort"
)

func init() {
	mustRegister(Destroy, NewDestroyHandler)
	mustRegister(DoubleMove, NewDoubleMoveHandler)
	mustRegister(AiHelps, NewAiHelpsHandler)
	mustRegister(RandomPromotion, NewRandomPromotionHandler)
}

func mustRegister(k Kind, ctor func() Handler) {
	if err := Register(k, ctor); err != nil {
		panic(err)
	}
}

var promotionKinds = []base.PieceKind{base.Queen, base.Rook, base.Bishop, base.Knight}

func squaresOf(pieces map[base.Square]base.Piece, keep func(base.Piece) bool) []base.Square {
	var out []base.Square
	for sq, p := range pieces {
		if keep(p) {
			out = append(out, sq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewDestroyHandler removes one random opponent piece other than the king.
func NewDestroyHandler() Handler {
	return HandlerFunc(func(t Target) error {
		enemy := t.Actor().Other()
		cand := squaresOf(t.Pieces(), func(p base.Piece) bool {
			return p.Color == enemy && p.Kind != base.King
		})
		rng := t.Rand()
		rng.Shuffle(len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })
		for _, sq := range cand {
			_, err := t.RemovePiece(sq)
			if errors.Is(err, src.ErrExposesKing) {
				continue
			}
			return err
		}
		return nil
	})
}

// NewDoubleMoveHandler gives the actor a second ply after the next move.
func NewDoubleMoveHandler() Handler {
	return HandlerFunc(func(t Target) error {
		t.GrantExtraPly()
		return nil
	})
}

// NewAiHelpsHandler asks the engine for a hint move.
func NewAiHelpsHandler() Handler {
	return HandlerFunc(func(t Target) error {
		t.RequestHint()
		return nil
	})
}

// NewRandomPromotionHandler turns one random own pawn into a random
// queen, rook, bishop or knight.
func NewRandomPromotionHandler() Handler {
	return HandlerFunc(func(t Target) error {
		own := t.Actor()
		cand := squaresOf(t.Pieces(), func(p base.Piece) bool {
			return p.Color == own && p.Kind == base.Pawn
		})
		rng := t.Rand()
		rng.Shuffle(len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })
		for _, sq := range cand {
			np := base.Piece{Kind: promotionKinds[rng.IntN(len(promotionKinds))], Color: own}
			err := t.ReplacePiece(sq, np)
			if errors.Is(err, src.ErrExposesKing) {
				continue
			}
			return err
		}
		return nil
	})
}
