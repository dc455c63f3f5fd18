package history

import (
	"fmt"
	"powerchess/src/base"
	"strings"
)

type EntryKind uint8

const (
	KindMove EntryKind = iota
	KindNull
	KindDestroy
	KindPromote
)

func (k EntryKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindNull:
		return "null"
	case KindDestroy:
		return "destroy"
	case KindPromote:
		return "promote"
	default:
		return "unknown"
	}
}

// Entry is one board mutation. Only KindMove and KindNull consume a ply.
type Entry struct {
	Kind   EntryKind
	Color  base.Color // actor
	Move   base.Move  // KindMove
	Square base.Square
	Piece  base.Piece // removed piece (destroy) or new piece (promote)
	FEN    string     // position after the entry
}

// append-only match log
type History struct {
	entries []Entry
}

func NewHistory() *History {
	return &History{entries: make([]Entry, 0, 64)}
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
}

func (h *History) Last() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Plies counts moves and null moves.
func (h *History) Plies() int {
	n := 0
	for _, e := range h.entries {
		if e.Kind == KindMove || e.Kind == KindNull {
			n++
		}
	}
	return n
}

func (h *History) Count(kind EntryKind) int {
	n := 0
	for _, e := range h.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// MovesByColor returns the committed moves of c in order.
func (h *History) MovesByColor(c base.Color) []base.Move {
	var out []base.Move
	for _, e := range h.entries {
		if e.Kind == KindMove && e.Color == c {
			out = append(out, e.Move)
		}
	}
	return out
}

// returned string with all plies
// example: "e2e4 -- e4e5 (x)d7"
func (h *History) String() string {
	var b strings.Builder
	for i, e := range h.entries {
		if i > 0 {
			b.WriteString(" ")
		}
		switch e.Kind {
		case KindMove:
			b.WriteString(e.Move.UCI())
		case KindNull:
			b.WriteString("--")
		case KindDestroy:
			b.WriteString(fmt.Sprintf("(x)%s", e.Square))
		case KindPromote:
			b.WriteString(fmt.Sprintf("(%s)%s", e.Piece, e.Square))
		}
	}
	return b.String()
}
