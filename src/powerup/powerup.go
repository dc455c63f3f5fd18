package powerup

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	None Kind = iota
	Destroy
	DoubleMove
	AiHelps
	RandomPromotion
)

// Kinds lists every grantable power-up in a fixed order.
var Kinds = []Kind{Destroy, DoubleMove, AiHelps, RandomPromotion}

// Capacity is the most power-ups a player can hold.
const Capacity = 4

var (
	ErrInvalidKind   = errors.New("powerup: invalid kind")
	ErrInventoryFull = errors.New("powerup: inventory full")
	ErrNotOwned      = errors.New("powerup: not owned")
)

func (k Kind) String() string {
	switch k {
	case Destroy:
		return "destroy"
	case DoubleMove:
		return "double-move"
	case AiHelps:
		return "ai-helps"
	case RandomPromotion:
		return "random-promotion"
	default:
		return "none"
	}
}

func KindFromString(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Inventory is an ordered list of held power-ups.
type Inventory struct {
	items []Kind
}

func (inv *Inventory) Len() int { return len(inv.items) }

func (inv *Inventory) Items() []Kind {
	return append([]Kind(nil), inv.items...)
}

// At returns the power-up in slot i or None.
func (inv *Inventory) At(i int) Kind {
	if i < 0 || i >= len(inv.items) {
		return None
	}
	return inv.items[i]
}

func (inv *Inventory) Add(k Kind) error {
	if k == None || k > RandomPromotion {
		return ErrInvalidKind
	}
	if len(inv.items) >= Capacity {
		return ErrInventoryFull
	}
	inv.items = append(inv.items, k)
	return nil
}

// Take removes and returns the power-up in slot i.
func (inv *Inventory) Take(i int) (Kind, error) {
	if i < 0 || i >= len(inv.items) {
		return None, fmt.Errorf("%w: slot %d", ErrNotOwned, i)
	}
	k := inv.items[i]
	inv.items = append(inv.items[:i], inv.items[i+1:]...)
	return k, nil
}
