package midgame

import (
	"context"
	"errors"
	"fmt"
	"powerchess/src/engine"
	"powerchess/src/input"
)

// AiTurn asks the engine for one move and applies it.
type AiTurn struct {
	m      *MidGame
	player *Player
	ts     TurnState
	isDone bool
	move   *engine.Future[string]
}

func newAiTurn(m *MidGame, p *Player) *AiTurn {
	return &AiTurn{m: m, player: p}
}

func (at *AiTurn) enter(ts TurnState) {
	at.ts = ts
	at.isDone = false
	at.m.mapper.Clear()
	fen := at.m.board.FEN()
	params := at.m.aiParams
	eng := at.m.eng
	at.m.logger.Debugf("%s thinks for %dms", at.player.Name, params.MaxTimeMs)
	at.move = engine.Go(func() (string, error) {
		ctx, cancel := engine.RequestContext(context.Background(), params)
		defer cancel()
		return eng.Play(ctx, fen, params)
	})
}

func (at *AiTurn) resume()                { at.m.mapper.Resync(at.m.board.Pieces()) }
func (at *AiTurn) handleEvent(input.Event) {}
func (at *AiTurn) done() bool             { return at.isDone }
func (at *AiTurn) turnState() TurnState   { return at.ts }

// Thinking reports whether the engine request is outstanding.
func (at *AiTurn) Thinking() bool { return at.move != nil }

func (at *AiTurn) update() error {
	if at.move == nil {
		return nil
	}
	uci, ok, err := at.move.Poll()
	if !ok {
		return nil
	}
	at.move = nil
	if err != nil {
		if !errors.Is(err, engine.ErrEngineFailure) {
			err = errors.Join(engine.ErrEngineFailure, err)
		}
		return fmt.Errorf("%s move: %w", at.player.Name, err)
	}
	if err := at.m.board.Push(uci); err != nil {
		return fmt.Errorf("%w: engine move %q: %v", engine.ErrEngineFailure, uci, err)
	}
	at.m.mapper.Resync(at.m.board.Pieces())
	at.isDone = true
	return nil
}
