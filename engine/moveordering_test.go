package engine

import (
	"testing"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/stretchr/testify/require"
)

func move(t *testing.T, p *board.Position, uci string) board.Move {
	t.Helper()
	m, err := p.ParseMove(uci)
	require.NoError(t, err)
	return m
}

func TestPriorityBands(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move string
		want float64
	}{
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", 0},
		{"pawn takes queen", "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", "e4d5", 0.1},
		{"queen takes pawn", "4k3/8/8/3p4/8/8/8/3QK3 w - - 0 1", "d1d5", 2},
		{"knight takes bishop", "4k3/8/8/3b4/8/4N3/8/4K3 w - - 0 1", "e3d5", 1.05},
		{"king takes queen", "8/8/8/8/8/1k6/8/Kq6 w - - 0 1", "a1b1", 0.1},
		{"quiet promotion", "8/P6k/8/8/8/8/8/4K3 w - - 0 1", "a7a8n", 3},
		{"centre", board.Startpos, "e2e4", 5},
		{"castle", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1", "e1g1", 6},
		{"king to castled square", "4k3/8/8/8/8/8/8/5K2 w - - 0 1", "f1g1", 6},
		{"quiet", board.Startpos, "a2a3", 7},
		{"quiet knight", board.Startpos, "g1f3", 7},
	}
	for _, c := range cases {
		p := mustFEN(t, c.fen)
		before := p.FEN()
		got := Priority(p, move(t, p, c.move))
		require.InDelta(t, c.want, got, 1e-9, c.name)
		require.Equal(t, before, p.FEN(), c.name)
	}
}

func TestCapturePriorityRange(t *testing.T) {
	kinds := []board.PieceKind{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}
	for _, victim := range kinds {
		for _, attacker := range kinds {
			got := capturePriority(victim, attacker)
			require.GreaterOrEqual(t, got, 0.1-1e-9)
			require.LessOrEqual(t, got, 2+1e-9)
		}
	}
	// better trades come first
	require.Less(t, capturePriority(board.Queen, board.Pawn), capturePriority(board.Queen, board.Rook))
	require.Less(t, capturePriority(board.Rook, board.Knight), capturePriority(board.Pawn, board.Knight))
}

func TestOrderMovesIsSortedPermutation(t *testing.T) {
	for _, fen := range []string{board.Startpos, kiwipete} {
		p := mustFEN(t, fen)
		before := p.FEN()
		legal := p.LegalMoves()
		ordered := OrderMoves(p, legal)

		require.ElementsMatch(t, legal, ordered)
		for i := 1; i < len(ordered); i++ {
			require.LessOrEqual(t, Priority(p, ordered[i-1]), Priority(p, ordered[i]))
		}
		require.Equal(t, before, p.FEN())
	}
}

func TestOrderMovesKeepsGenerationOrderOnTies(t *testing.T) {
	p := board.New()
	legal := p.LegalMoves()
	var quiet []board.Move
	for _, m := range legal {
		if Priority(p, m) == quietPriority {
			quiet = append(quiet, m)
		}
	}
	ordered := OrderMoves(p, legal)
	require.Equal(t, quiet, ordered[len(ordered)-len(quiet):])
}
