package gconf

import (
	"fmt"
	"os"
	"powerchess/src/base"
	"powerchess/src/midgame"
	"powerchess/src/powerup"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "powerchess.yaml"

type Config struct {
	EnginePath    string             `yaml:"engine_path"`    // UCI binary, e.g. stockfish
	EngineArgs    []string           `yaml:"engine_args"`    //
	SinglePlayer  bool               `yaml:"single_player"`  // false for two humans
	Color         string             `yaml:"color"`          // white/black, the human side
	Difficulty    int                `yaml:"difficulty"`     // 1..10
	Multiplicator int                `yaml:"multiplicator"`  // 1..10
	Weights       map[string]float64 `yaml:"weights"`        // power-up name -> weight
	EvalBudgetMs  int                `yaml:"eval_budget_ms"` //
	WindowW       int                `yaml:"window_w"`       //
	WindowH       int                `yaml:"window_h"`       //
	Theme         string             `yaml:"theme"`          // light/dark
	Lang          string             `yaml:"language"`       // en/ru
	Background    string             `yaml:"background"`     // board background name
	Debug         bool               `yaml:"debug"`          // true/false
	Seed          uint64             `yaml:"seed"`           // 0 for random
	FEN           string             `yaml:"fen"`            // empty for the standard start
}

func defaultConfig() Config {
	w := map[string]float64{}
	for k, v := range powerup.DefaultWeights() {
		w[k.String()] = v
	}
	return Config{
		EnginePath:    "stockfish",
		SinglePlayer:  true,
		Color:         "white",
		Difficulty:    3,
		Multiplicator: 5,
		Weights:       w,
		EvalBudgetMs:  800,
		WindowW:       1920,
		WindowH:       960,
		Theme:         "light",
		Lang:          "en",
		Background:    "wood",
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	def := defaultConfig()
	return &def
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &c, nil
	} else if err != nil {
		return nil, err
	}
	// a weights table in the file replaces the default one
	c.Weights = nil
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error decode config %s: %w", path, err)
	}
	correctableConfig(&c)
	return &c, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Correct clamps values set outside Load, e.g. from command line flags.
func (c *Config) Correct() { correctableConfig(c) }

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.Lang != "en" && c.Lang != "ru" {
		c.Lang = def.Lang
	}
	if _, err := base.ColorFromString(c.Color); err != nil {
		c.Color = def.Color
	}
	if c.Difficulty < 1 || c.Difficulty > 10 {
		c.Difficulty = def.Difficulty
	}
	if c.Multiplicator < 1 || c.Multiplicator > 10 {
		c.Multiplicator = def.Multiplicator
	}
	if c.EvalBudgetMs <= 0 {
		c.EvalBudgetMs = def.EvalBudgetMs
	}
	if c.WindowH < 480 || c.WindowW < 960 {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
	for name, w := range c.Weights {
		if _, err := powerup.KindFromString(name); err != nil || w < 0 {
			delete(c.Weights, name)
		}
	}
	if len(c.Weights) == 0 {
		c.Weights = def.Weights
	}
	if c.SinglePlayer && c.EnginePath == "" {
		c.EnginePath = def.EnginePath
	}
}

// MatchOptions converts the file values into options for a new match.
func (c *Config) MatchOptions() (midgame.Options, error) {
	color, err := base.ColorFromString(c.Color)
	if err != nil {
		return midgame.Options{}, err
	}
	weights := powerup.Weights{}
	for name, w := range c.Weights {
		k, err := powerup.KindFromString(name)
		if err != nil {
			return midgame.Options{}, err
		}
		weights[k] = w
	}
	opts := midgame.DefaultOptions()
	opts.SinglePlayer = c.SinglePlayer
	opts.StartingColor = color
	opts.Difficulty = c.Difficulty
	opts.Multiplicator = c.Multiplicator
	opts.Weights = weights
	opts.EvalBudget = time.Duration(c.EvalBudgetMs) * time.Millisecond
	opts.Seed = c.Seed
	opts.Width = float64(c.WindowW)
	opts.Height = float64(c.WindowH)
	opts.SquareSize = float64(min(c.WindowH, c.WindowW/2) / 8)
	opts.Background = c.Background
	opts.FEN = c.FEN
	return opts, nil
}
