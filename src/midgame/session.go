package midgame

import (
	"errors"
	"powerchess/src/base"
	"powerchess/src/boardui"
	"powerchess/src/powerup"

	"github.com/google/uuid"
)

var (
	ErrNoStandingOffer = errors.New("midgame: no draw offer from the opponent")
	ErrNotHumanTurn    = errors.New("midgame: no human turn is active")
	ErrPowerUpUsed     = errors.New("midgame: a power-up was already used this turn")
	ErrInputGated      = errors.New("midgame: waiting for promotion choice")
	ErrNoBoardUI       = errors.New("midgame: session has no board UI")
)

type TurnID uint8

const (
	Player1Turn TurnID = iota
	Player2Turn
	PauseTurn
)

func (t TurnID) String() string {
	switch t {
	case Player1Turn:
		return "player1-turn"
	case Player2Turn:
		return "player2-turn"
	case PauseTurn:
		return "pause"
	default:
		return "unknown"
	}
}

// Actor is the color moving in a turn state; NoColor for Pause.
func (t TurnID) Actor() base.Color {
	switch t {
	case Player1Turn:
		return base.White
	case Player2Turn:
		return base.Black
	default:
		return base.NoColor
	}
}

func (t TurnID) Other() TurnID {
	if t == Player1Turn {
		return Player2Turn
	}
	return Player1Turn
}

func turnOf(c base.Color) TurnID {
	if c == base.Black {
		return Player2Turn
	}
	return Player1Turn
}

// Session is created at match startup and read by every turn.
type Session struct {
	ID            uuid.UUID
	SinglePlayer  bool
	StartingColor base.Color
	Difficulty    int
	Multiplicator int
	Outcome       *base.Outcome // set on exit to post-game
	BoardUI       *boardui.Mapper
	Background    string
}

// BoardHandle returns the board UI or ErrNoBoardUI.
func (s *Session) BoardHandle() (*boardui.Mapper, error) {
	if s == nil || s.BoardUI == nil {
		return nil, ErrNoBoardUI
	}
	return s.BoardUI, nil
}

// TurnState is copied forward from one sub-state to the next.
type TurnState struct {
	Current       TurnID
	DrawOfferedBy base.Color
	DrawAccepted  bool
	Forfeit       bool
	Restart       bool
}

type Player struct {
	Name      string
	Color     base.Color
	Human     bool
	Inventory powerup.Inventory
}
