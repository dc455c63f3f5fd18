// Package enginetest provides a scripted in-process engine for tests.
package enginetest

import (
	"context"
	"powerchess/src"
	"powerchess/src/engine"
	"powerchess/src/logx"
	"sync"
)

// Fake answers Play with the first legal move (or PlayFunc) and Analyse
// with AnalyseFunc. It does not serialise calls so tests can observe
// overlapping requests through MaxInFlight.
type Fake struct {
	PlayFunc    func(fen string) (string, error)
	AnalyseFunc func(fen string) (engine.AnalysisInfo, error)
	// PlayGate and AnalyseGate, when set, make each request of that kind
	// wait for one value.
	PlayGate    chan struct{}
	AnalyseGate chan struct{}

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	plays       []string
	analyses    []string
	params      []engine.SearchParams
	closed      bool
}

var _ engine.Engine = (*Fake)(nil)

func New() *Fake { return &Fake{} }

func (f *Fake) Init() error { return nil }

func (f *Fake) enter(fen string, prm engine.SearchParams, play bool) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	if play {
		f.plays = append(f.plays, fen)
	} else {
		f.analyses = append(f.analyses, fen)
	}
	f.params = append(f.params, prm)
	f.mu.Unlock()
}

func (f *Fake) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fake) Play(ctx context.Context, fen string, prm engine.SearchParams) (string, error) {
	if f.isClosed() {
		return "", engine.ErrEngineClosed
	}
	f.enter(fen, prm, true)
	defer f.leave()
	if err := wait(ctx, f.PlayGate); err != nil {
		return "", err
	}
	if f.PlayFunc != nil {
		return f.PlayFunc(fen)
	}
	return FirstLegal(fen)
}

func (f *Fake) Analyse(ctx context.Context, fen string, prm engine.SearchParams) (engine.AnalysisInfo, error) {
	if f.isClosed() {
		return engine.AnalysisInfo{}, engine.ErrEngineClosed
	}
	f.enter(fen, prm, false)
	defer f.leave()
	if err := wait(ctx, f.AnalyseGate); err != nil {
		return engine.AnalysisInfo{}, err
	}
	if f.AnalyseFunc != nil {
		return f.AnalyseFunc(fen)
	}
	return engine.AnalysisInfo{HasScore: true}, nil
}

func (f *Fake) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Fake) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// MaxInFlight is the highest number of simultaneous requests observed.
func (f *Fake) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

// InFlight is the number of requests currently inside the fake.
func (f *Fake) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

func (f *Fake) Plays() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.plays...)
}

func (f *Fake) Analyses() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.analyses...)
}

func (f *Fake) Params() []engine.SearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]engine.SearchParams(nil), f.params...)
}

// FirstLegal returns the first legal move of fen in UCI notation.
func FirstLegal(fen string) (string, error) {
	gb := src.NewBuilderBoard(logx.NewNop())
	if err := gb.CreateFromFEN(fen); err != nil {
		return "", err
	}
	moves := gb.LegalMoves()
	if len(moves) == 0 {
		return "", engine.ErrNoBestMove
	}
	return moves[0].UCI(), nil
}
