package evaluation

import (
	"context"
	"fmt"
	"math"
	"powerchess/src/base"
	"powerchess/src/engine"
	"powerchess/src/logx"
)

// Result is the outcome of one request. Score is meaningful only when
// HasScore is set.
type Result struct {
	Ply      int
	Score    float64
	HasScore bool
}

// Service scores positions in the background. Requests never overlap:
// each worker waits for its predecessor before calling the engine.
type Service struct {
	eng     engine.Engine
	params  engine.SearchParams
	logger  logx.Logger
	pending []*engine.Future[Result]
	last    *engine.Future[Result]
	value   float64
	ply     int
}

func NewService(eng engine.Engine, params engine.SearchParams, logger logx.Logger) *Service {
	return &Service{eng: eng, params: params, logger: logger, ply: -1}
}

// Value is the latest normalised score from White's point of view.
func (s *Service) Value() float64 { return s.value }

// Ply reports which ply Value belongs to, -1 before the first result.
func (s *Service) Ply() int { return s.ply }

// Pending is the number of unconsumed requests.
func (s *Service) Pending() int { return len(s.pending) }

// Request queues a scoring of fen, reached after ply plies with turn to move.
func (s *Service) Request(ply int, fen string, turn base.Color, pieces map[base.Square]base.Piece) {
	weight := MaterialWeight(pieces)
	prev := s.last
	s.logger.Debugf("evaluation requested for ply %d", ply)
	f := engine.Go(func() (Result, error) {
		if prev != nil {
			<-prev.Done()
		}
		ctx, cancel := engine.RequestContext(context.Background(), s.params)
		defer cancel()
		info, err := s.eng.Analyse(ctx, fen, s.params)
		if err != nil {
			return Result{Ply: ply}, fmt.Errorf("evaluate ply %d: %w", ply, err)
		}
		score, ok := Normalize(info, turn, weight)
		return Result{Ply: ply, Score: score, HasScore: ok}, nil
	})
	s.last = f
	s.pending = append(s.pending, f)
}

// Poll consumes finished requests in request order and updates Value.
// A missing score keeps the previous value.
func (s *Service) Poll() ([]Result, error) {
	var out []Result
	for len(s.pending) > 0 {
		r, ok, err := s.pending[0].Poll()
		if !ok {
			break
		}
		s.pending = s.pending[1:]
		if err != nil {
			s.logger.Errorf("evaluation failed: %v", err)
			return out, err
		}
		if r.HasScore {
			s.value = r.Score
			s.ply = r.Ply
		} else {
			s.logger.Debugf("no score for ply %d", r.Ply)
		}
		out = append(out, r)
	}
	return out, nil
}

// Wait blocks until every queued request finished; used on teardown.
func (s *Service) Wait() {
	if s.last != nil {
		<-s.last.Done()
	}
}

// MaterialWeight sums standard piece values, kings excluded.
func MaterialWeight(pieces map[base.Square]base.Piece) int {
	w := 0
	for _, p := range pieces {
		w += base.MaterialValue[p.Kind]
	}
	return w
}

// Scale is the divisor applied to a pawn-unit score for the given material.
// It shrinks as material comes off the board.
func Scale(weight int) float64 {
	return 39 / (1 + math.Log(float64(weight)+1))
}

// Normalize maps an engine score for the side to move onto [-1, 1] from
// White's point of view.
func Normalize(info engine.AnalysisInfo, turn base.Color, weight int) (float64, bool) {
	if !info.HasScore {
		return 0, false
	}
	var v float64
	if info.MateIn != 0 {
		v = 1
		if info.MateIn < 0 {
			v = -1
		}
	} else {
		v = float64(info.ScoreCP) / 100 / Scale(weight)
		v = math.Max(-1, math.Min(1, v))
	}
	if turn == base.Black {
		v = -v
	}
	return v, true
}
