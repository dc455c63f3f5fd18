package midgame

import "powerchess/src/input"

// Pause holds the interrupted turn until resumed, restarted or quit.
type Pause struct {
	m        *MidGame
	ts       TurnState
	resumeTo TurnID
	isDone   bool
}

func newPause(m *MidGame) *Pause { return &Pause{m: m} }

func (p *Pause) enter(ts TurnState) {
	p.ts = ts
	p.resumeTo = ts.Current
	p.isDone = false
}

func (p *Pause) resume()              {}
func (p *Pause) update() error        { return nil }
func (p *Pause) done() bool           { return p.isDone }
func (p *Pause) turnState() TurnState { return p.ts }

func (p *Pause) handleEvent(ev input.Event) {
	if ev.Kind != input.PointerUp {
		return
	}
	l := p.m.layout
	switch {
	case l.Resume.Contains(ev.X, ev.Y):
		p.m.togglePause()
	case l.Restart.Contains(ev.X, ev.Y):
		p.ts.Restart = true
		p.isDone = true
	case l.Quit.Contains(ev.X, ev.Y):
		p.m.quit = true
	}
}
