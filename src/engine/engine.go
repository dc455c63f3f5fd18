package engine

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEngineFailure = errors.New("engine failure")
	ErrEngineClosed  = errors.New("engine closed")
	ErrNoBestMove    = errors.New("engine returned no move")
)

type AnalysisInfo struct {
	Depth    int      // search depth reached
	Nodes    int64    // nodes searched
	HasScore bool     // false when the engine reported no score
	ScoreCP  int      // centipawns (+ = advantage for side to move)
	MateIn   int      // mate in N moves for side to move, negative when mated (0 if none)
	PV       []string // principal variation in UCI notation
	BestMove string   // first move of PV or bestmove reply
}

type SearchParams struct {
	MaxDepth  int   // 0 = unlimited (but bounded by MaxTimeMs)
	MaxTimeMs int64 // movetime budget
}

func (p SearchParams) Budget() time.Duration {
	return time.Duration(p.MaxTimeMs) * time.Millisecond
}

type LevelAnalyze int

const (
	LevelOne LevelAnalyze = iota
	LevelTwo
	LevelThree
	LevelFour
	LevelFive
	LevelSix
	LevelSeven
	LevelEight
	LevelNine
	LevelTen
	// ...
	LevelLast
	LevelInvalid
)

const (
	UCIHandshakeTimeout = 2 * time.Second  // uci / isready
	UCIBestMoveTimeout  = 30 * time.Second // go ...
	// RequestGrace is added to a search budget to get the request deadline.
	RequestGrace = 5 * time.Second
)

// Engine is a long-lived handle to an external move-search process.
// Implementations serialise requests; callers may still issue them from
// several goroutines.
type Engine interface {
	Init() error
	// Play returns the best move in UCI notation for fen within budget.
	Play(ctx context.Context, fen string, params SearchParams) (string, error)
	// Analyse scores fen; HasScore is false when no score was reported.
	Analyse(ctx context.Context, fen string, params SearchParams) (AnalysisInfo, error)
	Close()
}

// LevelFromDifficulty maps the user facing difficulty 1..10 to a level.
func LevelFromDifficulty(d int) LevelAnalyze {
	if d < 1 || d > 10 {
		return LevelInvalid
	}
	return LevelAnalyze(d - 1)
}

func LevelToParams(lvl LevelAnalyze) SearchParams {
	switch lvl {
	case LevelOne:
		return SearchParams{MaxDepth: 1, MaxTimeMs: 500}
	case LevelTwo:
		return SearchParams{MaxDepth: 2, MaxTimeMs: 800}
	case LevelThree:
		return SearchParams{MaxDepth: 3, MaxTimeMs: 1000}
	case LevelFour:
		return SearchParams{MaxDepth: 5, MaxTimeMs: 1500}
	case LevelFive:
		return SearchParams{MaxDepth: 7, MaxTimeMs: 2500}
	case LevelSix:
		return SearchParams{MaxDepth: 9, MaxTimeMs: 4000}
	case LevelSeven:
		return SearchParams{MaxDepth: 11, MaxTimeMs: 6000}
	case LevelEight:
		return SearchParams{MaxDepth: 13, MaxTimeMs: 8000}
	case LevelNine:
		return SearchParams{MaxDepth: 16, MaxTimeMs: 10000}
	case LevelTen:
		return SearchParams{MaxDepth: 18, MaxTimeMs: 15000}
	default:
		// Full strength, still time bounded
		return SearchParams{MaxDepth: 0, MaxTimeMs: 20000}
	}
}

// RequestContext bounds a request by its budget plus RequestGrace.
func RequestContext(parent context.Context, params SearchParams) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, params.Budget()+RequestGrace)
}
