package midgame

import (
	"powerchess/src/base"
	"powerchess/src/boardui"
	"powerchess/src/logic/history"
)

// View is everything a host needs to draw one frame.
type View struct {
	MatchID    string
	Figures    []boardui.Figure
	Overlays   []boardui.Overlay // board overlays, hint included
	Panel      []boardui.Overlay // power-up slots of the acting human
	Layout     boardui.Layout
	Board      boardui.Rect
	SquareSize float64
	Rotated    bool

	Evaluation float64
	Turn       base.Color
	ActorName  string
	Human      bool
	Thinking   bool
	Paused     bool
	Promoting  bool

	DrawOfferedBy base.Color
	CanOffer      bool
	CanAccept     bool
	Hint          *base.Move
	Plies         int
	LastMove      *base.Move
}

func (m *MidGame) View() View {
	turn := m.active
	if turn == PauseTurn {
		turn = m.states[PauseTurn].(*Pause).resumeTo
	}
	ts := m.states[turn].turnState()
	actor := m.players[turn.Actor()]
	v := View{
		MatchID:       m.session.ID.String(),
		Figures:       m.mapper.Figures(),
		Overlays:      m.mapper.Overlays(),
		Layout:        m.layout,
		Board:         m.mapper.BoardRect(),
		SquareSize:    m.mapper.SquareSize(),
		Rotated:       m.mapper.Rotated(),
		Evaluation:    m.eval.Value(),
		Turn:          m.board.Turn(),
		ActorName:     actor.Name,
		Human:         actor.Human,
		Paused:        m.active == PauseTurn,
		DrawOfferedBy: ts.DrawOfferedBy,
		Hint:          m.mapper.Hint(),
		Plies:         m.board.History().Plies(),
	}
	switch st := m.states[turn].(type) {
	case *PlayerTurn:
		v.Promoting = st.Promoting()
		v.Panel = m.layout.PowerUpOverlays(actor.Inventory.Items())
		v.CanOffer = ts.DrawOfferedBy == base.NoColor
		v.CanAccept = ts.DrawOfferedBy == actor.Color.Other()
	case *AiTurn:
		v.Thinking = st.Thinking()
	}
	if e, ok := m.board.History().Last(); ok && e.Kind == history.KindMove {
		mv := e.Move
		v.LastMove = &mv
	}
	return v
}
