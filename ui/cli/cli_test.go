package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"powerchess/src"
	"powerchess/src/base"
	"powerchess/src/engine"
	"powerchess/src/engine/enginetest"
	"powerchess/src/logic/history"
	"powerchess/src/logx"
	"strings"
	"testing"
)

func plain(w io.Writer, pieces map[base.Square]base.Piece) { PrintBoard(w, pieces, false) }

func newConsole(t *testing.T, fen, input string, eng engine.Engine) (*CLIProcessing, *src.GameBuilder, *bytes.Buffer) {
	t.Helper()
	gb := src.NewBuilderBoard(logx.NewNop())
	if fen == "" {
		gb.CreateClassic()
	} else if err := gb.CreateFromFEN(fen); err != nil {
		t.Fatalf("fen: %v", err)
	}
	out := &bytes.Buffer{}
	params := engine.SearchParams{MaxDepth: 1, MaxTimeMs: 50}
	return NewCLI(gb, eng, params, plain, strings.NewReader(input), out, 1, logx.NewNop()), gb, out
}

func TestConsoleMoves(t *testing.T) {
	c, gb, out := newConsole(t, "", "e2e4\ne7e5\nmoves\nq\n", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := gb.History().String(); got != "e2e4 e7e5" {
		t.Fatalf("history %q", got)
	}
	if !strings.Contains(out.String(), "Moves: e2e4 e7e5") {
		t.Fatalf("no history line in output:\n%s", out)
	}
	if !strings.HasSuffix(out.String(), "Quitting\n") {
		t.Fatalf("missing quit line")
	}
}

func TestConsoleIllegalMoveKeepsGoing(t *testing.T) {
	c, gb, out := newConsole(t, "", "e2e5\ne2e4\n", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "invalid move e2e5") {
		t.Fatalf("illegal move not reported:\n%s", out)
	}
	if gb.History().Len() != 1 {
		t.Fatalf("history len %d", gb.History().Len())
	}
}

func TestConsoleEngineMove(t *testing.T) {
	fake := enginetest.New()
	fake.PlayFunc = func(string) (string, error) { return "g1f3", nil }
	c, gb, out := newConsole(t, "", "?\n", fake)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gb.History().String() != "g1f3" {
		t.Fatalf("history %q", gb.History())
	}
	if !strings.Contains(out.String(), "Engine plays g1f3") {
		t.Fatalf("engine move not printed")
	}
}

func TestConsoleEngineFailureStops(t *testing.T) {
	fake := enginetest.New()
	fake.PlayFunc = func(string) (string, error) { return "", engine.ErrEngineFailure }
	c, _, _ := newConsole(t, "", "?\ne2e4\n", fake)
	if err := c.Run(context.Background()); !errors.Is(err, engine.ErrEngineFailure) {
		t.Fatalf("err %v", err)
	}
}

func TestConsoleEval(t *testing.T) {
	fake := enginetest.New()
	fake.AnalyseFunc = func(string) (engine.AnalysisInfo, error) {
		return engine.AnalysisInfo{HasScore: true, MateIn: 2, Depth: 9, PV: []string{"e2e4"}}, nil
	}
	c, _, out := newConsole(t, "", "eval\n", fake)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Evaluation: +1.00 (depth 9, pv e2e4)") {
		t.Fatalf("eval line missing:\n%s", out)
	}
}

func TestConsoleDoubleMove(t *testing.T) {
	c, gb, out := newConsole(t, "", "use double-move\ne2e4\nd2d4\n", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := gb.History().String(); got != "e2e4 -- d2d4" {
		t.Fatalf("history %q", got)
	}
	if !strings.Contains(out.String(), "white moves again") {
		t.Fatalf("extra ply not announced:\n%s", out)
	}
}

func TestConsoleDestroy(t *testing.T) {
	c, gb, _ := newConsole(t, "4k3/8/8/3p4/8/8/8/R3K3 w - - 0 1", "use destroy\n", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	sq, _ := base.SquareFromAlgebraic("d5")
	if p := gb.PieceAt(sq); !p.IsEmpty() {
		t.Fatalf("d5 still holds %v", p)
	}
	if gb.History().Count(history.KindDestroy) != 1 {
		t.Fatalf("destroy not recorded: %s", gb.History())
	}
}

func TestConsoleUnknownPowerUp(t *testing.T) {
	c, _, out := newConsole(t, "", "use teleport\n", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "invalid kind") {
		t.Fatalf("unknown power-up not reported:\n%s", out)
	}
}

func TestConsoleHint(t *testing.T) {
	fake := enginetest.New()
	fake.PlayFunc = func(string) (string, error) { return "d2d4", nil }
	c, gb, out := newConsole(t, "", "use ai-helps\n", fake)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Hint: d2d4") {
		t.Fatalf("hint missing:\n%s", out)
	}
	if gb.History().Len() != 0 {
		t.Fatalf("hint must not move")
	}
}

func TestConsoleStopsOnMate(t *testing.T) {
	c, gb, out := newConsole(t, "", "f2f3\ne7e5\ng2g4\nd8h4\ne2e4\n", nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Game over: 0-1") {
		t.Fatalf("mate not reported:\n%s", out)
	}
	if gb.History().Len() != 4 {
		t.Fatalf("input after mate was read: %s", gb.History())
	}
}

func TestPrintBoardPlain(t *testing.T) {
	gb := src.NewBuilderBoard(logx.NewNop())
	gb.CreateClassic()
	var b bytes.Buffer
	PrintBoard(&b, gb.Pieces(), false)
	lines := strings.Split(b.String(), "\n")
	if lines[2] != "8  r  n  b  q  k  b  n  r  8" {
		t.Fatalf("rank 8 %q", lines[2])
	}
	if lines[5] != "5  .  .  .  .  .  .  .  .  5" {
		t.Fatalf("rank 5 %q", lines[5])
	}
}
