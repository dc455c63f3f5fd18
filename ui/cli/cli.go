package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"powerchess/src"
	"powerchess/src/base"
	"powerchess/src/engine"
	"powerchess/src/evaluation"
	"powerchess/src/logx"
	"powerchess/src/powerup"
	"strings"
)

type DrawFunc func(w io.Writer, pieces map[base.Square]base.Piece)

// CLIProcessing is a line-mode console over one board: UCI moves, engine
// moves and power-ups without the mid-game turn machine.
type CLIProcessing struct {
	builder *src.GameBuilder
	engine  engine.Engine // may be nil
	params  engine.SearchParams
	draw    DrawFunc
	in      io.Reader
	out     io.Writer
	rng     *rand.Rand
	logx    logx.Logger

	extraPly bool
}

var _ powerup.Target = (*CLIProcessing)(nil)

func NewCLI(b *src.GameBuilder, eng engine.Engine, params engine.SearchParams, draw DrawFunc, in io.Reader, out io.Writer, seed uint64, l logx.Logger) *CLIProcessing {
	return &CLIProcessing{
		builder: b,
		engine:  eng,
		params:  params,
		draw:    draw,
		in:      in,
		out:     out,
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
		logx:    l,
	}
}

const help = "Enter a UCI move (e2e4, e7e8q), '?' for an engine move, 'eval', 'use <power-up>', 'moves', 'fen' or 'q'."

// Run reads commands until quit, EOF or the end of the game.
func (c *CLIProcessing) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	c.redraw()
	fmt.Fprintln(c.out, help)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "Q" || line == "quit" {
			fmt.Fprintln(c.out, "Quitting")
			return nil
		}
		if err := c.command(ctx, line); err != nil {
			if errors.Is(err, engine.ErrEngineFailure) {
				return err
			}
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}
		if o := c.builder.Outcome(); o.Terminal() {
			fmt.Fprintf(c.out, "Game over: %s\n", o)
			return nil
		}
	}
	return scanner.Err()
}

func (c *CLIProcessing) command(ctx context.Context, line string) error {
	switch {
	case line == "moves":
		fmt.Fprintf(c.out, "Moves: %s\n", c.builder.History())
	case line == "fen":
		fmt.Fprintf(c.out, "FEN: %s\n", c.builder.FEN())
	case line == "?":
		uci, err := c.ask(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Engine plays %s\n", uci)
		return c.move(uci)
	case line == "eval":
		return c.evaluate(ctx)
	case strings.HasPrefix(line, "use "):
		k, err := powerup.KindFromString(strings.TrimSpace(strings.TrimPrefix(line, "use ")))
		if err != nil {
			return err
		}
		if err := powerup.Apply(k, c); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s used by %s\n", k, c.Actor())
		c.redraw()
	default:
		return c.move(line)
	}
	return nil
}

func (c *CLIProcessing) move(uci string) error {
	if err := c.builder.Push(uci); err != nil {
		return fmt.Errorf("invalid move %s: %w", uci, err)
	}
	if c.extraPly {
		c.extraPly = false
		if !c.builder.LastMoveGaveCheck() && !c.builder.Outcome().Terminal() {
			if err := c.builder.PushNull(); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s moves again\n", c.builder.Turn())
		}
	}
	c.redraw()
	return nil
}

func (c *CLIProcessing) ask(ctx context.Context) (string, error) {
	if c.engine == nil {
		return "", errors.New("no engine configured")
	}
	rctx, cancel := engine.RequestContext(ctx, c.params)
	defer cancel()
	return c.engine.Play(rctx, c.builder.FEN(), c.params)
}

func (c *CLIProcessing) evaluate(ctx context.Context) error {
	if c.engine == nil {
		return errors.New("no engine configured")
	}
	rctx, cancel := engine.RequestContext(ctx, c.params)
	defer cancel()
	info, err := c.engine.Analyse(rctx, c.builder.FEN(), c.params)
	if err != nil {
		return err
	}
	score, ok := evaluation.Normalize(info, c.builder.Turn(), evaluation.MaterialWeight(c.builder.Pieces()))
	if !ok {
		fmt.Fprintln(c.out, "Evaluation: no score")
		return nil
	}
	fmt.Fprintf(c.out, "Evaluation: %+.2f (depth %d, pv %s)\n", score, info.Depth, strings.Join(info.PV, " "))
	return nil
}

func (c *CLIProcessing) redraw() {
	c.draw(c.out, c.builder.Pieces())
	fmt.Fprintf(c.out, "FEN: %s\n", c.builder.FEN())
	fmt.Fprintf(c.out, "Moves: %s\n", c.builder.History())
	status := "Normal"
	if c.builder.LastMoveGaveCheck() {
		status = "Check"
	}
	if o := c.builder.Outcome(); o.Terminal() {
		status = o.String()
	}
	fmt.Fprintf(c.out, "Status: %s\n", status)
}

// powerup.Target

func (c *CLIProcessing) Actor() base.Color                  { return c.builder.Turn() }
func (c *CLIProcessing) Pieces() map[base.Square]base.Piece { return c.builder.Pieces() }
func (c *CLIProcessing) Rand() *rand.Rand                   { return c.rng }
func (c *CLIProcessing) GrantExtraPly()                     { c.extraPly = true }

func (c *CLIProcessing) RemovePiece(sq base.Square) (base.Piece, error) {
	return c.builder.RemovePiece(sq)
}

func (c *CLIProcessing) ReplacePiece(sq base.Square, p base.Piece) error {
	return c.builder.ReplacePiece(sq, p)
}

// RequestHint answers synchronously; the console has no frame loop.
func (c *CLIProcessing) RequestHint() {
	uci, err := c.ask(context.Background())
	if err != nil {
		c.logx.Warnf("hint: %v", err)
		fmt.Fprintf(c.out, "No hint: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Hint: %s\n", uci)
}
