package evaluation

import (
	"errors"
	"math"
	"powerchess/src/base"
	"powerchess/src/engine"
	"powerchess/src/engine/enginetest"
	"powerchess/src/logx"
	"testing"
	"time"
)

func startPieces() map[base.Square]base.Piece {
	pieces := map[base.Square]base.Piece{}
	back := []base.PieceKind{base.Rook, base.Knight, base.Bishop, base.Queen, base.King, base.Bishop, base.Knight, base.Rook}
	for f := 0; f < 8; f++ {
		pieces[base.NewSquare(f, 0)] = base.Piece{Kind: back[f], Color: base.White}
		pieces[base.NewSquare(f, 1)] = base.Piece{Kind: base.Pawn, Color: base.White}
		pieces[base.NewSquare(f, 6)] = base.Piece{Kind: base.Pawn, Color: base.Black}
		pieces[base.NewSquare(f, 7)] = base.Piece{Kind: back[f], Color: base.Black}
	}
	return pieces
}

func TestMaterialWeight(t *testing.T) {
	if w := MaterialWeight(startPieces()); w != 78 {
		t.Fatalf("start weight: got %d, want 78", w)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		info engine.AnalysisInfo
		turn base.Color
		w    int
		want float64
		ok   bool
	}{
		{"no score", engine.AnalysisInfo{}, base.White, 78, 0, false},
		{"white cp", engine.AnalysisInfo{HasScore: true, ScoreCP: 100}, base.White, 78, 1 / Scale(78), true},
		{"black to move flips", engine.AnalysisInfo{HasScore: true, ScoreCP: 100}, base.Black, 78, -1 / Scale(78), true},
		{"clamped", engine.AnalysisInfo{HasScore: true, ScoreCP: 5000}, base.White, 4, 1, true},
		{"mate for side", engine.AnalysisInfo{HasScore: true, MateIn: 3}, base.Black, 40, -1, true},
		{"mated side", engine.AnalysisInfo{HasScore: true, MateIn: -2}, base.Black, 40, 1, true},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.info, tt.turn, tt.w)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("%s: got %v/%v, want %v/%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScaleShrinksWithMaterial(t *testing.T) {
	if !(Scale(78) < Scale(20) && Scale(20) < Scale(0)) {
		t.Fatalf("scale must grow as material leaves: %v %v %v", Scale(78), Scale(20), Scale(0))
	}
	if Scale(0) != 39 {
		t.Fatalf("empty board scale: %v", Scale(0))
	}
}

func waitPending(t *testing.T, s *Service, want int) []Result {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var got []Result
	for time.Now().Before(deadline) {
		rs, err := s.Poll()
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		got = append(got, rs...)
		if len(got) >= want {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out with %d of %d results", len(got), want)
	return nil
}

func TestRequestsNeverOverlap(t *testing.T) {
	fake := enginetest.New()
	fake.AnalyseGate = make(chan struct{})
	fake.AnalyseFunc = func(fen string) (engine.AnalysisInfo, error) {
		return engine.AnalysisInfo{HasScore: true, ScoreCP: 300}, nil
	}
	s := NewService(fake, engine.SearchParams{MaxTimeMs: 10}, logx.NewNop())
	pieces := startPieces()
	for ply := 1; ply <= 3; ply++ {
		s.Request(ply, base.FEN_START_GAME, base.White, pieces)
	}
	if s.Pending() != 3 {
		t.Fatalf("pending: %d", s.Pending())
	}
	for i := 0; i < 3; i++ {
		fake.AnalyseGate <- struct{}{}
	}
	rs := waitPending(t, s, 3)
	for i, r := range rs {
		if r.Ply != i+1 {
			t.Fatalf("results out of order: %+v", rs)
		}
	}
	if fake.MaxInFlight() != 1 {
		t.Fatalf("max in flight: got %d, want 1", fake.MaxInFlight())
	}
	if s.Ply() != 3 || s.Value() <= 0 {
		t.Fatalf("value %v for ply %d", s.Value(), s.Ply())
	}
}

func TestMissingScoreKeepsValue(t *testing.T) {
	fake := enginetest.New()
	calls := 0
	fake.AnalyseFunc = func(string) (engine.AnalysisInfo, error) {
		calls++
		if calls == 1 {
			return engine.AnalysisInfo{HasScore: true, ScoreCP: -200}, nil
		}
		return engine.AnalysisInfo{}, nil
	}
	s := NewService(fake, engine.SearchParams{}, logx.NewNop())
	s.Request(1, base.FEN_START_GAME, base.White, startPieces())
	s.Request(2, base.FEN_START_GAME, base.White, startPieces())
	waitPending(t, s, 2)
	if s.Ply() != 1 || s.Value() >= 0 {
		t.Fatalf("missing score must keep previous value: %v ply %d", s.Value(), s.Ply())
	}
}

func TestEngineFailureSurfaces(t *testing.T) {
	fake := enginetest.New()
	fake.AnalyseFunc = func(string) (engine.AnalysisInfo, error) {
		return engine.AnalysisInfo{}, engine.ErrEngineFailure
	}
	s := NewService(fake, engine.SearchParams{}, logx.NewNop())
	s.Request(1, base.FEN_START_GAME, base.White, startPieces())
	s.Wait()
	if _, err := s.Poll(); !errors.Is(err, engine.ErrEngineFailure) {
		t.Fatalf("expected engine failure, got %v", err)
	}
}
