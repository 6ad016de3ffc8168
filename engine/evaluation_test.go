package engine

import (
	"math"
	"testing"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/stretchr/testify/require"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	p, err := board.FromFEN(fen)
	require.NoError(t, err)
	return p
}

func TestEvaluateStartIsZero(t *testing.T) {
	require.Equal(t, Score(0), Evaluate(board.New()))
}

func TestEvaluateMateSign(t *testing.T) {
	whiteMated := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.True(t, math.IsInf(float64(Evaluate(whiteMated)), -1))
	require.True(t, Evaluate(whiteMated).IsMate())

	blackMated := mustFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.Equal(t, MateScore, Evaluate(blackMated))
	require.Equal(t, "mate(white)", Evaluate(blackMated).String())
}

func TestEvaluateDrawsAreZero(t *testing.T) {
	for _, fen := range []string{
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",   // stalemate with a queen up
		"8/8/8/4k3/8/8/8/4KB2 w - - 0 1",   // insufficient material
		"7k/8/8/8/8/8/8/R6K b - - 150 120", // seventy-five moves
	} {
		require.Equal(t, Score(0), Evaluate(mustFEN(t, fen)), fen)
	}
}

func TestEvaluateMaterialAndSquares(t *testing.T) {
	// pawn on e4 is worth 100 + 20; both kings stand on zero squares
	require.Equal(t, Score(1.2), Evaluate(mustFEN(t, "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1")))
	// the same pawn for Black, mirrored to e5
	require.Equal(t, Score(-1.2), Evaluate(mustFEN(t, "4k3/8/8/4p3/8/8/8/4K3 w - - 0 1")))
}

func TestEvaluateColourSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"4k3/8/8/8/8/8/3P4/R3K3 w - - 0 1", "r3k3/3p4/8/8/8/8/8/4K3 b - - 0 1"},
		{"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
			"rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq - 2 3"},
	}
	for _, pair := range pairs {
		a, b := Evaluate(mustFEN(t, pair[0])), Evaluate(mustFEN(t, pair[1]))
		require.Equal(t, a, -b, pair[0])
	}
}

func TestEvaluateLeavesPositionAlone(t *testing.T) {
	p := mustFEN(t, kiwipete)
	before := p.FEN()
	Evaluate(p)
	require.Equal(t, before, p.FEN())
}

func TestScoreString(t *testing.T) {
	require.Equal(t, "mate(black)", (-MateScore).String())
	require.Equal(t, "-0.35", Score(-0.35).String())
	require.False(t, Score(12).IsMate())
}
