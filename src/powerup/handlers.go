package powerup

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"powerchess/src/base"
	"sort"
	"sync"
)

// Target is the slice of a running turn a power-up may act on.
type Target interface {
	Actor() base.Color
	Pieces() map[base.Square]base.Piece
	RemovePiece(sq base.Square) (base.Piece, error)
	ReplacePiece(sq base.Square, p base.Piece) error
	// GrantExtraPly lets the actor move again after the current move.
	GrantExtraPly()
	// RequestHint asks the engine for the actor's best move.
	RequestHint()
	Rand() *rand.Rand
}

// Handler applies one power-up kind.
type Handler interface {
	Apply(t Target) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(t Target) error

func (f HandlerFunc) Apply(t Target) error { return f(t) }

type handlerFactory func() Handler

var (
	registryMu sync.RWMutex
	registry   map[Kind]handlerFactory

	ErrDuplicateRegistration = errors.New("powerup: handler already registered")
	ErrNilFactory            = errors.New("powerup: nil handler factory")
	ErrNotRegistered         = errors.New("powerup: handler not registered")
	ErrNilHandler            = errors.New("powerup: handler factory produced nil handler")
)

// Register associates a kind with a handler factory.
func Register(k Kind, ctor func() Handler) error {
	if k == None {
		return ErrInvalidKind
	}
	if ctor == nil {
		return ErrNilFactory
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if registry == nil {
		registry = make(map[Kind]handlerFactory, len(Kinds))
	}
	if _, exists := registry[k]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, k)
	}
	registry[k] = ctor
	return nil
}

func resolve(k Kind) (Handler, error) {
	registryMu.RLock()
	ctor := registry[k]
	registryMu.RUnlock()

	if ctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, k)
	}
	h := ctor()
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilHandler, k)
	}
	return h, nil
}

// Apply runs the handler registered for k against t.
func Apply(k Kind, t Target) error {
	h, err := resolve(k)
	if err != nil {
		return err
	}
	if err := h.Apply(t); err != nil {
		return fmt.Errorf("apply %s: %w", k, err)
	}
	return nil
}

// Registered lists kinds with a handler, ordered.
func Registered() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
