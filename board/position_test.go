package board_test

import (
	"errors"
	"testing"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/notnil/chess"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	p, err := board.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return p
}

func push(t *testing.T, p *board.Position, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if _, err := p.PushUCI(mv); err != nil {
			t.Fatalf("push %s: %v", mv, err)
		}
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	for _, fen := range []string{"", "not a fen", "8/8/8 w - - 0 1"} {
		if _, err := board.FromFEN(fen); !errors.Is(err, board.ErrInvalidFEN) {
			t.Fatalf("FromFEN(%q): got %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{board.Startpos, kiwipete} {
		if got := mustFEN(t, fen).FEN(); got != fen {
			t.Fatalf("FEN round trip: got %q want %q", got, fen)
		}
	}
}

func TestPerft(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{board.Startpos, 1, 20},
		{board.Startpos, 2, 400},
		{board.Startpos, 3, 8902},
		{kiwipete, 1, 48},
		{kiwipete, 2, 2039},
	}
	for _, c := range cases {
		p := mustFEN(t, c.fen)
		before := p.FEN()
		if got := p.Perft(c.depth); got != c.nodes {
			t.Fatalf("perft(%d) of %q: got %d want %d", c.depth, c.fen, got, c.nodes)
		}
		if got := p.FEN(); got != before {
			t.Fatalf("perft left the position changed: %q", got)
		}
	}
}

func TestPerftDivideInitialDepth2(t *testing.T) {
	div := board.New().PerftDivide(2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for m, n := range div {
		if n != 20 {
			t.Fatalf("%s: got %d children want 20", m, n)
		}
		sum += n
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}

// Legal move sets must agree with an independent implementation.
func TestLegalMovesMatchNotnil(t *testing.T) {
	fens := []string{
		board.Startpos,
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
	}
	for _, fen := range fens {
		ours := map[string]bool{}
		for _, m := range mustFEN(t, fen).LegalMoves() {
			ours[m.String()] = true
		}

		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("notnil FEN(%q): %v", fen, err)
		}
		ref := chess.NewGame(opt)
		theirs := ref.ValidMoves()
		if len(theirs) != len(ours) {
			t.Fatalf("%q: %d moves, notnil has %d", fen, len(ours), len(theirs))
		}
		for _, m := range theirs {
			uci := chess.UCINotation{}.Encode(ref.Position(), m)
			if !ours[uci] {
				t.Fatalf("%q: missing move %s", fen, uci)
			}
		}
	}
}

func TestApplyUndoRestoresPosition(t *testing.T) {
	p := mustFEN(t, kiwipete)
	fen, hash := p.FEN(), p.Hash()
	for _, m := range p.LegalMoves() {
		undo := p.Apply(m)
		if p.FEN() == fen {
			t.Fatalf("%s did not change the position", m)
		}
		for _, reply := range p.LegalMoves() {
			undoReply := p.Apply(reply)
			undoReply()
		}
		undo()
		if p.FEN() != fen || p.Hash() != hash {
			t.Fatalf("undo of %s: got %q", m, p.FEN())
		}
	}
}

func TestUndoOutOfOrderCorrupts(t *testing.T) {
	p := board.New()
	first := p.Apply(mustMove(t, p, "e2e4"))
	p.Apply(mustMove(t, p, "e7e5"))

	err := catch(first)
	var corrupt *board.CorruptionError
	if !errors.As(err, &corrupt) || corrupt.Repeat {
		t.Fatalf("expected out-of-order CorruptionError, got %v", err)
	}
	if !errors.Is(err, board.ErrCorrupted) {
		t.Fatalf("CorruptionError should unwrap to ErrCorrupted")
	}
	if !errors.Is(p.Err(), board.ErrCorrupted) {
		t.Fatalf("position should report corruption, got %v", p.Err())
	}
	if err := p.Push(board.NullMove); !errors.Is(err, board.ErrCorrupted) {
		t.Fatalf("Push on corrupted position: got %v", err)
	}
	if err := catch(func() { p.Apply(board.NullMove) }); !errors.Is(err, board.ErrCorrupted) {
		t.Fatalf("Apply on corrupted position: got %v", err)
	}
}

func TestDoubleUndoCorrupts(t *testing.T) {
	p := board.New()
	undo := p.Apply(mustMove(t, p, "g1f3"))
	undo()
	err := catch(undo)
	var corrupt *board.CorruptionError
	if !errors.As(err, &corrupt) || !corrupt.Repeat {
		t.Fatalf("expected repeated-undo CorruptionError, got %v", err)
	}
}

func TestPushRules(t *testing.T) {
	p := board.New()
	if _, err := p.PushUCI("e2e5"); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("PushUCI(e2e5): got %v", err)
	}

	undo := p.Apply(mustMove(t, p, "d2d4"))
	if err := p.Push(mustMove(t, p, "d7d5")); !errors.Is(err, board.ErrPendingUndo) {
		t.Fatalf("Push with an open apply: got %v", err)
	}
	undo()

	push(t, p, "d2d4")
	if p.SideToMove() != board.Black || p.FullmoveNumber() != 1 {
		t.Fatalf("after d2d4: side %v move %d", p.SideToMove(), p.FullmoveNumber())
	}
}

func TestClone(t *testing.T) {
	p := board.New()
	c := p.Clone()
	push(t, c, "e2e4")
	if p.FEN() != board.New().FEN() {
		t.Fatalf("push on clone changed the original")
	}
	if c.FEN() == p.FEN() {
		t.Fatalf("clone did not advance")
	}
}

func TestPieceAt(t *testing.T) {
	p := board.New()
	cases := []struct {
		sq    string
		piece board.Piece
		ok    bool
	}{
		{"e1", board.Piece{Kind: board.King, Color: board.White}, true},
		{"d8", board.Piece{Kind: board.Queen, Color: board.Black}, true},
		{"b1", board.Piece{Kind: board.Knight, Color: board.White}, true},
		{"h7", board.Piece{Kind: board.Pawn, Color: board.Black}, true},
		{"e4", board.Piece{}, false},
	}
	for _, c := range cases {
		sq, err := board.ParseSquare(c.sq)
		if err != nil {
			t.Fatal(err)
		}
		piece, ok := p.PieceAt(sq)
		if ok != c.ok || piece != c.piece {
			t.Fatalf("PieceAt(%s) = %v, %v", c.sq, piece, ok)
		}
	}
}

func TestSquareGeometry(t *testing.T) {
	sq, err := board.ParseSquare("g6")
	if err != nil {
		t.Fatal(err)
	}
	if sq.File() != 6 || sq.Rank() != 5 || board.SquareAt(6, 5) != sq {
		t.Fatalf("g6: file %d rank %d", sq.File(), sq.Rank())
	}
	if sq.Mirror().String() != "g3" {
		t.Fatalf("mirror of g6: %s", sq.Mirror())
	}
	if _, err := board.ParseSquare("i9"); err == nil {
		t.Fatalf("expected error for i9")
	}
}

func TestParseMoveNotation(t *testing.T) {
	p := board.New()
	cases := []struct {
		uci  string
		want error
	}{
		{"e2e4", nil},
		{" G1F3 ", nil},
		{"e2e5", board.ErrIllegalMove},
		{"a7a8q", board.ErrIllegalMove},
		{"e2", board.ErrBadNotation},
		{"e2e4e5", board.ErrBadNotation},
		{"i2i4", board.ErrBadNotation},
		{"e0e4", board.ErrBadNotation},
		{"e7e8k", board.ErrBadNotation},
	}
	for _, c := range cases {
		_, err := p.ParseMove(c.uci)
		if c.want == nil && err != nil {
			t.Fatalf("ParseMove(%q): %v", c.uci, err)
		}
		if c.want != nil && !errors.Is(err, c.want) {
			t.Fatalf("ParseMove(%q): got %v, want %v", c.uci, err, c.want)
		}
	}
	if p.FEN() != board.New().FEN() {
		t.Fatalf("ParseMove changed the position: %s", p.FEN())
	}
}

func mustMove(t *testing.T, p *board.Position, uci string) board.Move {
	t.Helper()
	m, err := p.ParseMove(uci)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// catch runs f and returns the error it panicked with.
func catch(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}
