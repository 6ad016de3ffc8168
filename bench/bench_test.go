package bench

import (
	"testing"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/engine"
)

const (
	kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func mustFEN(b *testing.B, fen string) *board.Position {
	p, err := board.FromFEN(fen)
	if err != nil {
		b.Fatalf("FromFEN: %v", err)
	}
	return p
}

func benchPerft(b *testing.B, fen string, depth int) {
	p := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Perft(depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, board.Startpos, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, kiwipete, 3)
}

func benchLegalMoves(b *testing.B, fen string) {
	p := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.LegalMoves()
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, board.Startpos)
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	benchLegalMoves(b, kiwipete)
}

func BenchmarkEvaluate_Pos6(b *testing.B) {
	p := mustFEN(b, pos6)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Evaluate(p)
	}
}

func BenchmarkOrderMoves_Kiwipete(b *testing.B) {
	p := mustFEN(b, kiwipete)
	moves := p.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.OrderMoves(p, moves)
	}
}

func benchSearch(b *testing.B, fen string, depth int) {
	p := mustFEN(b, fen)
	white := p.SideToMove() == board.White
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var s engine.Searcher
		_ = s.Search(p, depth, -engine.MateScore, engine.MateScore, white)
	}
}

func BenchmarkSearch_Initial_D3(b *testing.B) {
	benchSearch(b, board.Startpos, 3)
}

func BenchmarkSearch_Kiwipete_D2(b *testing.B) {
	benchSearch(b, kiwipete, 2)
}

func BenchmarkChooseMove_Iterative_D3(b *testing.B) {
	sel := engine.NewSelector(engine.WithMode(engine.IterativeDeepening), engine.WithSeed(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sel.ChooseMove(board.New(), 3); err != nil {
			b.Fatal(err)
		}
	}
}
