// Package input holds host-neutral input events fed to the mid-game.
package input

type Kind uint8

const (
	PointerDown Kind = iota
	PointerUp
	PointerMove
	Key
	Quit
	Resize
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointerMove:
		return "pointer-move"
	case Key:
		return "key"
	case Quit:
		return "quit"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyEscape
)

// Event is one input occurrence. X/Y hold the pointer position, or the new
// window size for Resize.
type Event struct {
	Kind Kind
	X, Y float64
	Key  KeyCode
}

func Down(x, y float64) Event { return Event{Kind: PointerDown, X: x, Y: y} }
func Up(x, y float64) Event   { return Event{Kind: PointerUp, X: x, Y: y} }
func Move(x, y float64) Event { return Event{Kind: PointerMove, X: x, Y: y} }
func Escape() Event           { return Event{Kind: Key, Key: KeyEscape} }
