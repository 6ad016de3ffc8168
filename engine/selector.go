package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

var (
	ErrNoLegalMoves = errors.New("engine: no legal moves")
	ErrInvalidDepth = errors.New("engine: search depth must be positive")
)

type Mode int

const (
	// FixedDepth searches the root once at the requested depth.
	FixedDepth Mode = iota
	// IterativeDeepening searches depths 1..max and answers from the deepest one.
	IterativeDeepening
)

func (m Mode) String() string {
	if m == IterativeDeepening {
		return "iterative"
	}
	return "fixed"
}

// Result describes the move ChooseMove played.
type Result struct {
	Move  board.Move
	Score Score
	Depth int
	// Ties holds every root move that scored exactly Score; Move is one of them.
	Ties  []board.Move
	Nodes uint64
}

// Selector is the root driver. It is not safe for concurrent use because of its
// random source; give each goroutine its own Selector.
type Selector struct {
	mode Mode
	rng  *rand.Rand
	log  zerolog.Logger
}

type Option func(*Selector)

func WithMode(mode Mode) Option {
	return func(s *Selector) { s.mode = mode }
}

// WithRand sets the tie-break source; tests pass a seeded one.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Selector) { s.log = log }
}

func NewSelector(opts ...Option) *Selector {
	s := &Selector{mode: FixedDepth, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Selector) Mode() Mode {
	return s.mode
}

// ChooseMove searches pos to maxDepth plies, plays the chosen move on pos and
// returns it. When several root moves share the best score one is picked uniformly
// at random. With no legal moves it returns ErrNoLegalMoves and leaves pos alone;
// the caller decides whether that is mate or a draw.
func (s *Selector) ChooseMove(pos Position, maxDepth int) (res Result, err error) {
	if maxDepth <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	legal := pos.LegalMoves()
	if len(legal) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	defer func() {
		if r := recover(); r != nil {
			corrupt, ok := r.(*board.CorruptionError)
			if !ok {
				panic(r)
			}
			res, err = Result{}, fmt.Errorf("engine: search aborted: %w", corrupt)
		}
	}()

	moves := OrderMoves(pos, legal)
	var searcher Searcher

	first := maxDepth
	if s.mode == IterativeDeepening {
		first = 1
	}
	var best Score
	var ties []board.Move
	for depth := first; depth <= maxDepth; depth++ {
		best, ties = s.searchRoot(&searcher, pos, moves, depth)
		s.log.Debug().
			Int("depth", depth).
			Str("score", best.String()).
			Int("ties", len(ties)).
			Uint64("nodes", searcher.Nodes()).
			Msg("root search complete")
	}

	chosen := ties[0]
	if len(ties) > 1 {
		chosen = ties[s.rng.Intn(len(ties))]
	}
	if err := pos.Push(chosen); err != nil {
		return Result{}, fmt.Errorf("engine: playing %s: %w", chosen, err)
	}

	return Result{
		Move:  chosen,
		Score: best,
		Depth: maxDepth,
		Ties:  ties,
		Nodes: searcher.Nodes(),
	}, nil
}

// searchRoot scores every root move with a fresh full window and returns the best
// score for the side to move together with all moves that reach it exactly.
func (s *Selector) searchRoot(searcher *Searcher, pos Position, moves []board.Move, depth int) (Score, []board.Move) {
	maximizing := pos.SideToMove() == board.White
	best := MateScore
	if maximizing {
		best = -MateScore
	}
	var ties []board.Move
	for _, m := range moves {
		score := searcher.child(pos, m, depth, -MateScore, MateScore, !maximizing)
		switch {
		case score == best:
			ties = append(ties, m)
		case maximizing && score > best, !maximizing && score < best:
			best = score
			ties = append(ties[:0], m)
		}
	}
	return best, ties
}
