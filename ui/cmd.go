package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"powerchess/src"
	"powerchess/src/base"
	"powerchess/src/engine"
	"powerchess/src/engine/uci"
	"powerchess/src/logx"
	clic "powerchess/ui/cli"
	"powerchess/ui/gui"
	"powerchess/ui/gui/gbase/gconf"
	"strings"

	"github.com/urfave/cli/v3"
)

const logfile string = "powerchess.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("debug"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(c *cli.Command) (*gconf.Config, error) {
	cfg, err := gconf.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("engine") {
		cfg.EnginePath = c.String("engine")
	}
	if c.IsSet("difficulty") {
		cfg.Difficulty = int(c.Int("difficulty"))
	}
	if c.IsSet("two-players") {
		cfg.SinglePlayer = !c.Bool("two-players")
	}
	if c.IsSet("color") {
		cfg.Color = c.String("color")
	}
	if c.IsSet("seed") {
		cfg.Seed = uint64(c.Uint("seed"))
	}
	if c.IsSet("fen") {
		cfg.FEN = c.String("fen")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	cfg.Correct()
	return cfg, nil
}

func openEngine(cfg *gconf.Config, l logx.Logger) (*uci.UCIExecutor, error) {
	e := uci.NewUCIExec(l.Named("uci"), cfg.EnginePath, cfg.EngineArgs...)
	if err := e.Init(); err != nil {
		return nil, fmt.Errorf("engine %s: %w", cfg.EnginePath, err)
	}
	return e, nil
}

func withLogger(c *cli.Command, run func(cfg *gconf.Config, l *logx.Logx) error) error {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error open logfile: %w", err)
	}
	defer file.Close()
	l := GetLogger(file, c)
	defer l.Sync() //nolint:errcheck

	cfg, err := loadConfig(c)
	if err != nil {
		l.Errorf("config: %v", err)
		return err
	}
	return run(cfg, l)
}

func RunGUI(c *cli.Command) error {
	return withLogger(c, func(cfg *gconf.Config, l *logx.Logx) error {
		eng, err := openEngine(cfg, l)
		if err != nil {
			l.Errorf("%v", err)
			return err
		}
		defer eng.Close()
		g, err := gui.NewGUI(cfg, eng, l)
		if err != nil {
			return err
		}
		return g.Run()
	})
}

// RunConsole plays on stdin/stdout. The console still works without an
// engine, minus '?', 'eval' and hints.
func RunConsole(ctx context.Context, c *cli.Command) error {
	return withLogger(c, func(cfg *gconf.Config, l *logx.Logx) error {
		var eng engine.Engine
		if e, err := openEngine(cfg, l); err != nil {
			l.Warnf("console without engine: %v", err)
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			defer e.Close()
			eng = e
		}

		gb := src.NewBuilderBoard(l.Named("board"))
		if cfg.FEN != "" {
			if err := gb.CreateFromFEN(cfg.FEN); err != nil {
				return err
			}
		} else {
			gb.CreateClassic()
		}

		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		color := logx.Colorful(os.Stdout)
		draw := func(w io.Writer, pieces map[base.Square]base.Piece) { clic.PrintBoard(w, pieces, color) }
		params := engine.LevelToParams(engine.LevelFromDifficulty(cfg.Difficulty))
		return clic.NewCLI(gb, eng, params, draw, os.Stdin, os.Stdout, seed, l.Named("console")).Run(ctx)
	})
}

// CheckEngine starts the engine and scores the initial position once.
func CheckEngine(ctx context.Context, c *cli.Command) error {
	return withLogger(c, func(cfg *gconf.Config, l *logx.Logx) error {
		eng, err := openEngine(cfg, l)
		if err != nil {
			return err
		}
		defer eng.Close()

		gb := src.NewBuilderBoard(l.Named("board"))
		gb.CreateClassic()
		params := engine.LevelToParams(engine.LevelFromDifficulty(cfg.Difficulty))
		rctx, cancel := engine.RequestContext(ctx, params)
		defer cancel()
		info, err := eng.Analyse(rctx, gb.FEN(), params)
		if err != nil {
			return err
		}
		fmt.Printf("engine %s ok: depth %d, score %dcp, pv %s\n", cfg.EnginePath, info.Depth, info.ScoreCP, strings.Join(info.PV, " "))
		return nil
	})
}

// WriteConfig stores the default configuration unless the file exists.
func WriteConfig(c *cli.Command) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := gconf.Default().Save(path); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}

func RunPowerChess() error {
	cfgf := &cli.StringFlag{
		Name:  "config",
		Value: gconf.DefaultFile,
		Usage: "path to YAML config",
	}
	ef := &cli.StringFlag{
		Name:    "engine",
		Aliases: []string{"e"},
		Usage:   "path to UCI engine",
	}
	dif := &cli.IntFlag{
		Name:  "difficulty",
		Usage: "computer strength 1..10",
	}
	tf := &cli.BoolFlag{
		Name:  "two-players",
		Usage: "two humans on one board",
	}
	colf := &cli.StringFlag{
		Name:  "color",
		Usage: "side of the (first) human: white/black",
	}
	sf := &cli.UintFlag{
		Name:  "seed",
		Usage: "random seed for power-ups, 0 for random",
	}
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "string FEN format",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	force := &cli.BoolFlag{
		Name:  "force",
		Usage: "overwrite an existing file",
	}
	// flags of the root command are visible to every subcommand
	rootff := []cli.Flag{cfgf, ef, dif, tf, colf, sf, ff, df, lf, cf}

	play := func(ctx context.Context, c *cli.Command) error { return RunGUI(c) }
	return (&cli.Command{
		Name:   "powerchess",
		Usage:  "chess with power-ups",
		Flags:  rootff,
		Action: play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "open the game window",
				Action: play,
			},
			{
				Name:   "console",
				Usage:  "play in the terminal with UCI moves",
				Action: RunConsole,
			},
			{
				Name:   "check-engine",
				Usage:  "start the engine and analyse the initial position",
				Action: CheckEngine,
			},
			{
				Name:  "config",
				Usage: "write the default config file",
				Flags: []cli.Flag{force},
				Action: func(ctx context.Context, c *cli.Command) error {
					return WriteConfig(c)
				},
			},
		},
	}).Run(context.Background(), os.Args)
}
