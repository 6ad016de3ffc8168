package engine

import (
	"math"
	"strconv"

	"github.com/Emre-Akgul/Chess-AI/board"
)

// Score is an evaluation from White's point of view, in pawns. A forced mate is
// +Inf (White mates) or -Inf (Black mates). Mate scores are sentinels, not numbers:
// they compare correctly but must never be added to, scaled or averaged.
type Score float64

var MateScore = Score(math.Inf(1))

func (s Score) IsMate() bool {
	return math.IsInf(float64(s), 0)
}

func (s Score) String() string {
	switch {
	case math.IsInf(float64(s), 1):
		return "mate(white)"
	case math.IsInf(float64(s), -1):
		return "mate(black)"
	}
	return strconv.FormatFloat(float64(s), 'f', 2, 64)
}

// Material values in centipawns, indexed by board.PieceKind.
var PieceValue = [7]int{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// Piece-square tables in centipawns from White's side, a1 first (rank 1 is the first row).
// Black looks up the mirrored square. Bishops, rooks and queens only count material.
var PSQT = [7][64]int{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

// Evaluate scores pos statically. It has no state and does not touch the position.
func Evaluate(pos Position) Score {
	if pos.IsCheckmate() {
		if pos.SideToMove() == board.White {
			return -MateScore
		}
		return MateScore
	}
	if pos.IsDraw() {
		return 0
	}
	return Score(material(pos)) / 100
}

// material sums in integer centipawns so a symmetric position is exactly zero.
func material(pos Position) int {
	total := 0
	for sq := board.Square(0); sq < 64; sq++ {
		piece, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		if piece.Color == board.White {
			total += PieceValue[piece.Kind] + PSQT[piece.Kind][sq]
		} else {
			total -= PieceValue[piece.Kind] + PSQT[piece.Kind][sq.Mirror()]
		}
	}
	return total
}
