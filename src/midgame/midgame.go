package midgame

import (
	"fmt"
	"math"
	"math/rand/v2"
	"powerchess/src"
	"powerchess/src/base"
	"powerchess/src/boardui"
	"powerchess/src/engine"
	"powerchess/src/evaluation"
	"powerchess/src/input"
	"powerchess/src/logx"
	"powerchess/src/powerup"
	"time"

	"github.com/google/uuid"
)

type Transition uint8

const (
	Stay Transition = iota
	ToPostGame
	ToQuit
)

func (t Transition) String() string {
	switch t {
	case ToPostGame:
		return "post-game"
	case ToQuit:
		return "quit"
	default:
		return "stay"
	}
}

// LongPress separates a click from the start of a drag.
const LongPress = 200 * time.Millisecond

type Options struct {
	SinglePlayer  bool
	StartingColor base.Color
	Difficulty    int // 1..10
	Multiplicator int // 1..10
	Weights       powerup.Weights
	EvalBudget    time.Duration
	Seed          uint64 // 0 picks a random seed
	Width         float64
	Height        float64
	SquareSize    float64
	Background    string
	FEN           string // empty for the standard start
}

func DefaultOptions() Options {
	return Options{
		SinglePlayer:  true,
		StartingColor: base.White,
		Difficulty:    3,
		Multiplicator: 5,
		Weights:       powerup.DefaultWeights(),
		EvalBudget:    800 * time.Millisecond,
		Width:         1920,
		Height:        960,
		SquareSize:    120,
	}
}

// subState is one of Player1Turn, Player2Turn or Pause.
type subState interface {
	enter(ts TurnState)
	resume()
	handleEvent(ev input.Event)
	update() error
	done() bool
	turnState() TurnState
}

// MidGame sequences the turns of one match.
type MidGame struct {
	opts     Options
	eng      engine.Engine
	logger   logx.Logger
	rng      *rand.Rand
	aiParams engine.SearchParams

	session *Session
	board   *src.GameBuilder
	mapper  *boardui.Mapper
	layout  boardui.Layout
	players map[base.Color]*Player
	eval    *evaluation.Service
	granter *powerup.Granter
	grants  map[int]base.Color // ply -> human waiting for its score

	states map[TurnID]subState
	active TurnID
	now    time.Duration
	quit   bool
}

func New(opts Options, eng engine.Engine, logger logx.Logger) (*MidGame, error) {
	lvl := engine.LevelFromDifficulty(opts.Difficulty)
	if lvl == engine.LevelInvalid {
		return nil, fmt.Errorf("difficulty %d out of range 1..10", opts.Difficulty)
	}
	if opts.Multiplicator < 1 || opts.Multiplicator > 10 {
		return nil, fmt.Errorf("multiplicator %d out of range 1..10", opts.Multiplicator)
	}
	if opts.StartingColor != base.White && opts.StartingColor != base.Black {
		return nil, fmt.Errorf("invalid starting color %v", opts.StartingColor)
	}
	if opts.SquareSize <= 0 {
		opts.SquareSize = 120
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	m := &MidGame{
		opts:     opts,
		eng:      eng,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		aiParams: engine.LevelToParams(lvl),
	}
	if err := m.setup(); err != nil {
		return nil, err
	}
	return m, nil
}

// setup (re)creates board, players, turn state and match id.
func (m *MidGame) setup() error {
	board := src.NewBuilderBoard(m.logger.Named("board"))
	if m.opts.FEN != "" {
		if err := board.CreateFromFEN(m.opts.FEN); err != nil {
			return err
		}
	} else {
		board.CreateClassic()
	}
	m.board = board
	m.mapper = boardui.NewMapper(m.opts.SquareSize, 0, 0)
	m.layout = boardui.NewLayout(m.opts.Width, m.opts.Height, 8*m.opts.SquareSize)
	m.session = &Session{
		ID:            uuid.New(),
		SinglePlayer:  m.opts.SinglePlayer,
		StartingColor: m.opts.StartingColor,
		Difficulty:    m.opts.Difficulty,
		Multiplicator: m.opts.Multiplicator,
		BoardUI:       m.mapper,
		Background:    m.opts.Background,
	}
	evalParams := engine.SearchParams{MaxTimeMs: m.opts.EvalBudget.Milliseconds()}
	m.eval = evaluation.NewService(m.eng, evalParams, m.logger.Named("evaluation"))
	m.granter = powerup.NewGranter(m.opts.Multiplicator, m.opts.Weights, m.rng)
	m.grants = make(map[int]base.Color)

	m.states = make(map[TurnID]subState, 3)
	m.players = make(map[base.Color]*Player, 2)
	if m.opts.SinglePlayer {
		human := m.opts.StartingColor
		m.players[human] = &Player{Name: "Player 1", Color: human, Human: true}
		m.players[human.Other()] = &Player{Name: "Computer", Color: human.Other()}
		m.states[turnOf(human)] = newPlayerTurn(m, m.players[human])
		m.states[turnOf(human.Other())] = newAiTurn(m, m.players[human.Other()])
		m.mapper.SetRotated(human == base.Black)
	} else {
		m.players[base.White] = &Player{Name: "Player 1", Color: base.White, Human: true}
		m.players[base.Black] = &Player{Name: "Player 2", Color: base.Black, Human: true}
		m.states[Player1Turn] = newPlayerTurn(m, m.players[base.White])
		m.states[Player2Turn] = newPlayerTurn(m, m.players[base.Black])
		m.mapper.SetRotated(board.Turn() == base.Black)
	}
	m.states[PauseTurn] = newPause(m)

	m.active = turnOf(board.Turn())
	m.mapper.Resync(board.Pieces())
	m.requestEvaluation()
	m.logger.Infof("match %s started: single=%v human=%v difficulty=%d", m.session.ID, m.opts.SinglePlayer, m.opts.StartingColor, m.opts.Difficulty)
	m.states[m.active].enter(TurnState{Current: m.active})
	return nil
}

func (m *MidGame) Session() *Session           { return m.session }
func (m *MidGame) Board() *src.GameBuilder     { return m.board }
func (m *MidGame) Mapper() *boardui.Mapper     { return m.mapper }
func (m *MidGame) Layout() boardui.Layout      { return m.layout }
func (m *MidGame) Active() TurnID              { return m.active }
func (m *MidGame) Paused() bool                { return m.active == PauseTurn }
func (m *MidGame) Player(c base.Color) *Player { return m.players[c] }
func (m *MidGame) Evaluation() float64         { return m.eval.Value() }

// TurnState returns the state of the active sub-state.
func (m *MidGame) TurnState() TurnState { return m.states[m.active].turnState() }

// HandleEvent routes one input event.
func (m *MidGame) HandleEvent(ev input.Event) {
	switch ev.Kind {
	case input.Quit:
		m.quit = true
		return
	case input.Resize:
		m.Resize(ev.X, ev.Y)
		return
	case input.Key:
		if ev.Key == input.KeyEscape {
			m.togglePause()
		}
		return
	}
	m.states[m.active].handleEvent(ev)
}

// Resize fits board and panel into a w x h window.
func (m *MidGame) Resize(w, h float64) {
	sq := math.Floor(math.Min(h, w/2) / 8)
	if sq < 8 {
		m.logger.Debugf("ignore resize to %vx%v", w, h)
		return
	}
	m.opts.Width, m.opts.Height, m.opts.SquareSize = w, h, sq
	m.mapper.SetGeometry(sq, 0, 0)
	m.layout = boardui.NewLayout(w, h, 8*sq)
}

func (m *MidGame) togglePause() {
	if m.active == PauseTurn {
		p := m.states[PauseTurn].(*Pause)
		m.active = p.resumeTo
		m.logger.Infof("resume %s", m.active)
		m.states[m.active].resume()
		return
	}
	ts := m.states[m.active].turnState()
	m.logger.Infof("pause %s", m.active)
	m.active = PauseTurn
	m.states[PauseTurn].enter(ts)
}

// Update advances the clock by dt and runs the active sub-state.
// A returned error is fatal for the session.
func (m *MidGame) Update(dt time.Duration) (Transition, error) {
	m.now += dt
	if m.quit {
		return ToQuit, nil
	}
	if err := m.pollEvaluation(); err != nil {
		return Stay, err
	}
	if m.active == PauseTurn {
		// the interrupted turn keeps polling its engine request
		p := m.states[PauseTurn].(*Pause)
		var err error
		if pt, ok := m.states[p.resumeTo].(*PlayerTurn); ok {
			err = pt.pollHint()
		} else {
			err = m.states[p.resumeTo].update()
		}
		if err != nil {
			return Stay, err
		}
	}
	st := m.states[m.active]
	if err := st.update(); err != nil {
		return Stay, err
	}
	if m.quit {
		return ToQuit, nil
	}
	if !st.done() {
		return Stay, nil
	}
	return m.afterTurn(st.turnState())
}

func (m *MidGame) afterTurn(ts TurnState) (Transition, error) {
	actor := m.active.Actor()
	if ts.Restart {
		m.logger.Infof("match %s restarted", m.session.ID)
		return Stay, m.setup()
	}
	if o := m.board.Outcome(); o.Terminal() {
		return m.finish(o), nil
	}
	if ts.Forfeit {
		return m.finish(base.Outcome{Winner: actor.Other(), Termination: base.Forfeit}), nil
	}
	if ts.DrawAccepted && ts.DrawOfferedBy == actor.Other() {
		return m.finish(base.Outcome{Winner: base.NoColor, Termination: base.DrawAgreed}), nil
	}
	ts.DrawAccepted = false
	if ts.DrawOfferedBy != base.NoColor && ts.DrawOfferedBy != actor {
		m.logger.Debugf("draw offer by %s lapsed", ts.DrawOfferedBy)
		ts.DrawOfferedBy = base.NoColor
	}

	next := m.active.Other()
	if !m.session.SinglePlayer {
		m.mapper.SetRotated(next.Actor() == base.Black)
	}
	ply := m.requestEvaluation()
	if p := m.players[next.Actor()]; p.Human {
		m.grants[ply] = p.Color
	}
	ts.Current = next
	m.active = next
	m.logger.Debugf("turn %s at ply %d", next, ply)
	m.states[next].enter(ts)
	return Stay, nil
}

func (m *MidGame) finish(o base.Outcome) Transition {
	m.session.Outcome = &o
	m.logger.Infof("match %s over: %s after %s", m.session.ID, o, m.board.History())
	return ToPostGame
}

func (m *MidGame) requestEvaluation() int {
	ply := m.board.History().Plies()
	m.eval.Request(ply, m.board.FEN(), m.board.Turn(), m.board.Pieces())
	return ply
}

func (m *MidGame) pollEvaluation() error {
	rs, err := m.eval.Poll()
	if err != nil {
		return fmt.Errorf("evaluation: %w", err)
	}
	for _, r := range rs {
		color, ok := m.grants[r.Ply]
		if !ok {
			continue
		}
		delete(m.grants, r.Ply)
		if !r.HasScore {
			continue
		}
		p := m.players[color]
		if k, ok := m.granter.Grant(&p.Inventory, color, r.Score); ok {
			m.logger.Infof("%s granted %s at %.2f", p.Name, k, r.Score)
		}
	}
	return nil
}

func (m *MidGame) humanTurn() (*PlayerTurn, error) {
	if pt, ok := m.states[m.active].(*PlayerTurn); ok {
		return pt, nil
	}
	return nil, ErrNotHumanTurn
}

// ActivatePowerUp uses the power-up in inventory slot i of the acting human.
func (m *MidGame) ActivatePowerUp(slot int) error {
	pt, err := m.humanTurn()
	if err != nil {
		return err
	}
	return pt.activate(slot)
}

func (m *MidGame) OfferDraw() error {
	pt, err := m.humanTurn()
	if err != nil {
		return err
	}
	pt.offerDraw()
	return nil
}

// AcceptDraw ends the turn when the opponent has a standing offer.
func (m *MidGame) AcceptDraw() error {
	pt, err := m.humanTurn()
	if err != nil {
		return err
	}
	return pt.acceptDraw()
}

func (m *MidGame) Forfeit() error {
	pt, err := m.humanTurn()
	if err != nil {
		return err
	}
	pt.forfeit()
	return nil
}

// Wait blocks until queued evaluations finished; used on teardown.
func (m *MidGame) Wait() { m.eval.Wait() }
