package engine

import (
	"math"

	"github.com/Emre-Akgul/Chess-AI/board"
)

// Searcher runs the recursive minimax with alpha-beta pruning and principal
// variation re-search. It holds no position state, only a node counter.
type Searcher struct {
	nodes uint64
}

func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search returns the minimax value of pos searched to depth plies, from White's
// point of view, within the window (alpha, beta). Scores outside the window are
// bounds (fail-soft). pos is left exactly as it was found.
func (s *Searcher) Search(pos Position, depth int, alpha, beta Score, maximizing bool) Score {
	s.nodes++

	if depth <= 0 || pos.IsGameOver() {
		return Evaluate(pos)
	}

	moves := OrderMoves(pos, pos.LegalMoves())

	if maximizing {
		best := -MateScore
		for i, m := range moves {
			var value Score
			// (alpha, alpha+1) is empty while alpha is still -Inf, so that probe is skipped
			if i == 0 || math.IsInf(float64(alpha), -1) {
				value = s.child(pos, m, depth, alpha, beta, false)
			} else {
				value = s.child(pos, m, depth, alpha, alpha+1, false)
				if alpha < value && value < beta {
					value = s.child(pos, m, depth, alpha, beta, false)
				}
			}
			best = max(best, value)
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := MateScore
	for i, m := range moves {
		var value Score
		if i == 0 || math.IsInf(float64(beta), 1) {
			value = s.child(pos, m, depth, alpha, beta, true)
		} else {
			value = s.child(pos, m, depth, beta-1, beta, true)
			if alpha < value && value < beta {
				value = s.child(pos, m, depth, alpha, beta, true)
			}
		}
		best = min(best, value)
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return best
}

// child searches the position after m one ply shallower. The undo is deferred so
// it runs on every way out, panics included.
func (s *Searcher) child(pos Position, m board.Move, depth int, alpha, beta Score, maximizing bool) Score {
	undo := pos.Apply(m)
	defer undo()
	return s.Search(pos, depth-1, alpha, beta, maximizing)
}
