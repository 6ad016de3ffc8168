package engine

import (
	"cmp"

	"github.com/Emre-Akgul/Chess-AI/board"
	"golang.org/x/exp/slices"
)

// Move ordering bands, lowest searched first:
//   - 0: moves giving check
//   - 0.1..2: captures, MVV-LVA inside the band
//   - 3: promotions
//   - 3..5: "threats" on an occupied destination (captures already own that case)
//   - 5: moves to the four centre squares
//   - 6: king moves onto a castled-king square
//   - 7: everything else
const (
	checkPriority     = 0.0
	promotionPriority = 3.0
	centerPriority    = 5.0
	castlePriority    = 6.0
	quietPriority     = 7.0
)

// d4 e4 d5 e5
var centerSquares = [...]board.Square{27, 28, 35, 36}

// g1 c1 g8 c8
var castledKingSquares = [...]board.Square{6, 2, 62, 58}

type rankedMove struct {
	move     board.Move
	priority float64
}

// pawnValue is the material value of a piece kind in whole pawns (1, 3, 3, 5, 9, 0).
func pawnValue(kind board.PieceKind) float64 {
	return float64(PieceValue[kind]) / 100
}

// Priority ranks m for search order; lower is searched earlier. The move is applied
// to test for check and taken back before returning.
func Priority(pos Position, m board.Move) float64 {
	if givesCheck(pos, m) {
		return checkPriority
	}

	mover, _ := pos.PieceAt(m.From())
	if victim, ok := pos.PieceAt(m.To()); ok {
		return capturePriority(victim.Kind, mover.Kind)
	}

	if m.IsPromotion() {
		return promotionPriority
	}

	// Unreachable while captures are classified first.
	if attacked, ok := pos.PieceAt(m.To()); ok {
		return 5 - pawnValue(attacked.Kind)/9*2
	}

	if isOneOf(m.To(), centerSquares[:]) {
		return centerPriority
	}
	if mover.Kind == board.King && isOneOf(m.To(), castledKingSquares[:]) {
		return castlePriority
	}
	return quietPriority
}

func givesCheck(pos Position, m board.Move) bool {
	undo := pos.Apply(m)
	defer undo()
	return pos.InCheck()
}

// capturePriority maps victim minus attacker, clamped to [-8, 8], onto 2..0.1.
func capturePriority(victim, attacker board.PieceKind) float64 {
	delta := pawnValue(victim) - pawnValue(attacker)
	delta = max(-8, min(8, delta))
	scaled := ((delta + 8) / 16) * 1.9
	return 2 - scaled
}

func isOneOf(sq board.Square, set []board.Square) bool {
	for _, s := range set {
		if s == sq {
			return true
		}
	}
	return false
}

// OrderMoves returns moves sorted by ascending Priority; equal priorities keep
// generation order.
func OrderMoves(pos Position, moves []board.Move) []board.Move {
	ranked := make([]rankedMove, len(moves))
	for i, m := range moves {
		ranked[i] = rankedMove{move: m, priority: Priority(pos, m)}
	}
	slices.SortStableFunc(ranked, func(a, b rankedMove) int {
		return cmp.Compare(a.priority, b.priority)
	})
	ordered := make([]board.Move, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.move
	}
	return ordered
}
