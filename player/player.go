package player

import (
	"fmt"
	"time"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/engine"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

const DefaultDepth = 3

// Player picks and plays a move on the position it is given.
type Player interface {
	Name() string
	Color() board.Color
	// MakeMove plays the chosen move on pos and returns it.
	MakeMove(pos *board.Position) (board.Move, error)
}

// Config carries the knobs every strategy constructor receives.
type Config struct {
	Depth  int
	Seed   uint64 // 0 picks a time-based seed
	Logger *zerolog.Logger
}

func (c Config) depth() int {
	if c.Depth <= 0 {
		return DefaultDepth
	}
	return c.Depth
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}

func (c Config) rng() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

type identity struct {
	name  string
	color board.Color
}

func (id identity) Name() string       { return id.name }
func (id identity) Color() board.Color { return id.color }

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	identity
	rng *rand.Rand
}

func NewRandomPlayer(name string, color board.Color, cfg Config) Player {
	return &RandomPlayer{identity: identity{name, color}, rng: cfg.rng()}
}

func (p *RandomPlayer) MakeMove(pos *board.Position) (board.Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return board.NullMove, engine.ErrNoLegalMoves
	}
	m := moves[p.rng.Intn(len(moves))]
	if err := pos.Push(m); err != nil {
		return board.NullMove, err
	}
	return m, nil
}

// ThinkerPlayer searches with the alpha-beta engine.
type ThinkerPlayer struct {
	identity
	depth    int
	selector *engine.Selector
	log      zerolog.Logger
}

func newThinker(name string, color board.Color, cfg Config, mode engine.Mode) *ThinkerPlayer {
	log := cfg.logger().With().Str("player", name).Logger()
	return &ThinkerPlayer{
		identity: identity{name, color},
		depth:    cfg.depth(),
		selector: engine.NewSelector(
			engine.WithMode(mode),
			engine.WithRand(cfg.rng()),
			engine.WithLogger(log),
		),
		log: log,
	}
}

func NewLevel0Thinker(name string, color board.Color, cfg Config) Player {
	return newThinker(name, color, cfg, engine.FixedDepth)
}

func NewIterativeThinker(name string, color board.Color, cfg Config) Player {
	return newThinker(name, color, cfg, engine.IterativeDeepening)
}

func (p *ThinkerPlayer) Depth() int {
	return p.depth
}

func (p *ThinkerPlayer) MakeMove(pos *board.Position) (board.Move, error) {
	res, err := p.selector.ChooseMove(pos, p.depth)
	if err != nil {
		return board.NullMove, fmt.Errorf("%s: %w", p.name, err)
	}
	p.log.Debug().
		Str("move", res.Move.String()).
		Str("score", res.Score.String()).
		Int("ties", len(res.Ties)).
		Uint64("nodes", res.Nodes).
		Msg("move chosen")
	return res.Move, nil
}
