package player

import (
	"errors"
	"fmt"

	"github.com/Emre-Akgul/Chess-AI/board"
	"golang.org/x/exp/slices"
)

var ErrUnknownStrategy = errors.New("player: unknown strategy")

// Constructor builds a player for one side of one game.
type Constructor func(name string, color board.Color, cfg Config) Player

// Registry maps strategy names to constructors. Strategies are registered
// explicitly at start-up; nothing is discovered at run time.
type Registry struct {
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry holds the strategies this module ships.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("RandomPlayer", NewRandomPlayer)
	r.Register("Level0ThinkerPlayer", NewLevel0Thinker)
	r.Register("IterativeThinkerPlayer", NewIterativeThinker)
	return r
}

// Register adds or replaces a strategy.
func (r *Registry) Register(name string, ctor Constructor) {
	r.ctors[name] = ctor
}

func (r *Registry) Has(name string) bool {
	_, ok := r.ctors[name]
	return ok
}

// Names lists registered strategies in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates a player named after its strategy and colour, e.g. "RandomPlayerwhite".
func (r *Registry) New(strategy string, color board.Color, cfg Config) (Player, error) {
	ctor, ok := r.ctors[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	return ctor(strategy+color.String(), color, cfg), nil
}
