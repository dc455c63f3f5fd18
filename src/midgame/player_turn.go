package midgame

import (
	"context"
	"errors"
	"math/rand/v2"
	"powerchess/src/base"
	"powerchess/src/boardui"
	"powerchess/src/engine"
	"powerchess/src/input"
	"powerchess/src/powerup"
	"time"
)

// PlayerTurn runs the input protocol of a human for one turn.
type PlayerTurn struct {
	m      *MidGame
	player *Player
	ts     TurnState
	isDone bool

	// pointer
	pressed  bool
	pressAt  time.Duration
	pressX   float64
	pressY   float64
	dragging bool

	// promotion gate
	promoPending bool
	promoFrom    base.Square
	promoTo      base.Square

	powerUpUsed bool
	extraPly    bool
	hint        *engine.Future[string]
	hintPly     int
	hintCancel  context.CancelFunc
}

var _ powerup.Target = (*PlayerTurn)(nil)

func newPlayerTurn(m *MidGame, p *Player) *PlayerTurn {
	return &PlayerTurn{m: m, player: p}
}

func (pt *PlayerTurn) enter(ts TurnState) {
	pt.ts = ts
	pt.isDone = false
	pt.pressed, pt.dragging = false, false
	pt.promoPending = false
	pt.powerUpUsed, pt.extraPly = false, false
	pt.cancelHint()
	pt.m.mapper.Clear()
	pt.m.mapper.SetHint(nil)
	pt.m.mapper.Resync(pt.m.board.Pieces())
}

func (pt *PlayerTurn) resume() {
	pt.pressed, pt.dragging = false, false
	pt.m.mapper.EndDrag()
	pt.m.mapper.Resync(pt.m.board.Pieces())
}

func (pt *PlayerTurn) done() bool           { return pt.isDone }
func (pt *PlayerTurn) turnState() TurnState { return pt.ts }

// Promoting reports whether input waits for a promotion choice.
func (pt *PlayerTurn) Promoting() bool { return pt.promoPending }

func (pt *PlayerTurn) handleEvent(ev input.Event) {
	if pt.isDone {
		return
	}
	switch ev.Kind {
	case input.PointerDown:
		pt.pressed = true
		pt.pressAt = pt.m.now
		pt.pressX, pt.pressY = ev.X, ev.Y
	case input.PointerMove:
		if pt.dragging {
			pt.m.mapper.DragTo(ev.X, ev.Y)
		}
	case input.PointerUp:
		if !pt.pressed {
			return
		}
		pt.pressed = false
		if pt.dragging {
			pt.dragging = false
			pt.drop(ev.X, ev.Y)
			return
		}
		if pt.m.now-pt.pressAt <= LongPress {
			pt.click(ev.X, ev.Y)
		}
	}
}

func (pt *PlayerTurn) update() error {
	if err := pt.pollHint(); err != nil {
		return err
	}
	if pt.isDone || !pt.pressed || pt.dragging || pt.promoPending {
		return nil
	}
	if pt.m.now-pt.pressAt <= LongPress {
		return nil
	}
	// long press: pick up an own piece
	sq, ok := pt.m.mapper.ScreenToSquare(pt.pressX, pt.pressY)
	if !ok || pt.m.board.PieceAt(sq).Color != pt.player.Color {
		return nil
	}
	pt.selectSquare(sq)
	if pt.m.mapper.BeginDrag(sq, pt.pressX, pt.pressY) {
		pt.dragging = true
	}
	return nil
}

func (pt *PlayerTurn) selectSquare(sq base.Square) {
	pt.m.mapper.Select(sq, pt.m.board.LegalMovesFrom(sq), pt.m.board.Pieces())
}

func (pt *PlayerTurn) isMoveOverlay(sq base.Square) bool {
	o, ok := pt.m.mapper.OverlayAt(sq)
	return ok && (o.Kind == boardui.OverlayMove || o.Kind == boardui.OverlayAttack)
}

// drop resolves the release of a dragged piece.
func (pt *PlayerTurn) drop(x, y float64) {
	mp := pt.m.mapper
	from, _ := mp.Dragging()
	mp.EndDrag()
	sq, ok := mp.ScreenToSquare(x, y)
	switch {
	case !ok:
		mp.Resync(pt.m.board.Pieces())
	case sq == from || pt.m.board.PieceAt(sq).Color == pt.player.Color:
		mp.Clear()
		mp.Resync(pt.m.board.Pieces())
	case pt.isMoveOverlay(sq):
		pt.commit(from, sq)
	default:
		pt.m.logger.Debugf("drop on %s ignored", sq)
		mp.Resync(pt.m.board.Pieces())
	}
}

// click handles a short press.
func (pt *PlayerTurn) click(x, y float64) {
	mp := pt.m.mapper
	if pt.promoPending {
		if kind, ok := mp.PromotionAt(x, y); ok {
			pt.finishPromotion(kind)
		}
		return
	}
	sq, onBoard := mp.ScreenToSquare(x, y)
	if !onBoard {
		pt.panelClick(x, y)
		return
	}
	switch {
	case pt.isMoveOverlay(sq) && mp.Selected() != base.NoSquare:
		pt.commit(mp.Selected(), sq)
	case sq == mp.Selected():
		mp.Clear()
	case pt.m.board.PieceAt(sq).Color == pt.player.Color:
		pt.selectSquare(sq)
	default:
		mp.Clear()
	}
}

func (pt *PlayerTurn) panelClick(x, y float64) {
	l := pt.m.layout
	if slot, ok := l.SlotAt(x, y); ok {
		if err := pt.activate(slot); err != nil {
			pt.m.logger.Debugf("power-up slot %d: %v", slot, err)
		}
		return
	}
	switch {
	case l.Offer.Contains(x, y):
		pt.offerDraw()
	case l.Accept.Contains(x, y):
		if err := pt.acceptDraw(); err != nil {
			pt.m.logger.Debugf("accept draw: %v", err)
		}
	case l.Forfeit.Contains(x, y):
		pt.forfeit()
	}
}

func (pt *PlayerTurn) commit(from, to base.Square) {
	if pt.m.board.IsPromotion(from, to) {
		pt.promoPending = true
		pt.promoFrom, pt.promoTo = from, to
		pt.m.mapper.ShowPromotion(to, pt.player.Color)
		pt.m.mapper.Resync(pt.m.board.Pieces())
		return
	}
	pt.push(base.Move{From: from, To: to})
}

func (pt *PlayerTurn) finishPromotion(kind base.PieceKind) {
	pt.promoPending = false
	pt.push(base.Move{From: pt.promoFrom, To: pt.promoTo, Promo: kind})
}

func (pt *PlayerTurn) push(mv base.Move) {
	b, mp := pt.m.board, pt.m.mapper
	if err := b.Push(mv.UCI()); err != nil {
		pt.m.logger.Debugf("rejected %s: %v", mv, err)
		mp.Clear()
		mp.Resync(b.Pieces())
		return
	}
	mp.Clear()
	mp.SetHint(nil)
	pt.cancelHint()
	mp.Resync(b.Pieces())

	if pt.extraPly {
		pt.extraPly = false
		if !b.LastMoveGaveCheck() && !b.Outcome().Terminal() {
			if err := b.PushNull(); err != nil {
				pt.m.logger.Errorf("null move: %v", err)
			} else {
				mp.Resync(b.Pieces())
				// the handed-back position may already be over
				if !b.Outcome().Terminal() {
					return
				}
			}
		}
	}
	pt.isDone = true
}

// activate consumes and applies the power-up in slot.
func (pt *PlayerTurn) activate(slot int) error {
	if pt.promoPending {
		return ErrInputGated
	}
	if pt.powerUpUsed {
		return ErrPowerUpUsed
	}
	kind, err := pt.player.Inventory.Take(slot)
	if err != nil {
		return err
	}
	pt.powerUpUsed = true
	pt.m.logger.Infof("%s activates %s", pt.player.Name, kind)
	err = powerup.Apply(kind, pt)
	pt.m.mapper.Clear()
	pt.m.mapper.Resync(pt.m.board.Pieces())
	if err != nil {
		return err
	}
	if pt.m.board.Outcome().Terminal() {
		pt.isDone = true
	}
	return nil
}

func (pt *PlayerTurn) offerDraw() {
	if pt.ts.DrawOfferedBy == base.NoColor {
		pt.ts.DrawOfferedBy = pt.player.Color
		pt.m.logger.Infof("%s offers a draw", pt.player.Name)
	}
}

func (pt *PlayerTurn) acceptDraw() error {
	if pt.ts.DrawOfferedBy != pt.player.Color.Other() {
		return ErrNoStandingOffer
	}
	pt.ts.DrawAccepted = true
	pt.isDone = true
	pt.m.logger.Infof("%s accepts the draw", pt.player.Name)
	return nil
}

func (pt *PlayerTurn) forfeit() {
	pt.ts.Forfeit = true
	pt.isDone = true
	pt.m.logger.Infof("%s forfeits", pt.player.Name)
}

func (pt *PlayerTurn) pollHint() error {
	if pt.hint == nil {
		return nil
	}
	uci, ok, err := pt.hint.Poll()
	if !ok {
		return nil
	}
	pt.hint = nil
	if err != nil {
		if !errors.Is(err, engine.ErrEngineFailure) {
			err = errors.Join(engine.ErrEngineFailure, err)
		}
		return err
	}
	if pt.hintPly != pt.m.board.History().Len() {
		return nil
	}
	mv, err := base.MoveFromUCI(uci)
	if err != nil {
		pt.m.logger.Debugf("unusable hint %q", uci)
		return nil
	}
	pt.m.mapper.SetHint(&mv)
	return nil
}

// powerup.Target

func (pt *PlayerTurn) Actor() base.Color                  { return pt.player.Color }
func (pt *PlayerTurn) Pieces() map[base.Square]base.Piece { return pt.m.board.Pieces() }
func (pt *PlayerTurn) Rand() *rand.Rand                   { return pt.m.rng }
func (pt *PlayerTurn) GrantExtraPly()                     { pt.extraPly = true }

func (pt *PlayerTurn) RemovePiece(sq base.Square) (base.Piece, error) {
	return pt.m.board.RemovePiece(sq)
}

func (pt *PlayerTurn) ReplacePiece(sq base.Square, p base.Piece) error {
	return pt.m.board.ReplacePiece(sq, p)
}

func (pt *PlayerTurn) RequestHint() {
	fen := pt.m.board.FEN()
	params := pt.m.aiParams
	eng := pt.m.eng
	pt.cancelHint()
	parent, stop := context.WithCancel(context.Background())
	pt.hintPly = pt.m.board.History().Len()
	pt.hintCancel = stop
	pt.hint = engine.Go(func() (string, error) {
		if err := parent.Err(); err != nil {
			return "", err
		}
		ctx, cancel := engine.RequestContext(parent, params)
		defer cancel()
		return eng.Play(ctx, fen, params)
	})
}

// cancelHint abandons an outstanding hint so it stops holding the engine.
func (pt *PlayerTurn) cancelHint() {
	if pt.hintCancel != nil {
		pt.hintCancel()
		pt.hintCancel = nil
	}
	pt.hint = nil
}
