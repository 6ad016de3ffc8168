package board

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

const Startpos = dragontoothmg.Startpos

// Position is a chess position plus the bookkeeping dragontoothmg leaves to its caller:
// the hash history for repetition draws and a guard over apply/undo ordering.
// A Position is not safe for concurrent use; Clone it for other goroutines.
type Position struct {
	b       dragontoothmg.Board
	history []uint64
	open    int
	corrupt *CorruptionError

	// one-entry cache of "has legal moves" keyed by hash, terminal checks run at every leaf
	statusHash  uint64
	statusValid bool
	statusMoves bool
}

func New() *Position {
	p, err := FromFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return p
}

// FromFEN validates fen with notnil/chess before handing it to dragontoothmg,
// whose parser does not report malformed input.
func FromFEN(fen string) (*Position, error) {
	fen = strings.TrimSpace(fen)
	if _, err := chess.FEN(fen); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}
	p := &Position{b: dragontoothmg.ParseFen(fen)}
	p.history = append(p.history, p.b.Hash())
	return p, nil
}

// Clone returns an independent copy sharing no state with p. Pending applies are
// carried over as plain board state; the copy starts with an empty undo stack.
func (p *Position) Clone() *Position {
	return &Position{
		b:       p.b,
		history: append([]uint64(nil), p.history...),
		corrupt: p.corrupt,
	}
}

func (p *Position) FEN() string {
	return p.b.ToFen()
}

func (p *Position) String() string {
	return p.FEN()
}

func (p *Position) SideToMove() Color {
	if p.b.Wtomove {
		return White
	}
	return Black
}

func (p *Position) HalfmoveClock() int {
	return int(p.b.Halfmoveclock)
}

func (p *Position) FullmoveNumber() int {
	return int(p.b.Fullmoveno)
}

// Hash is the zobrist key of the current position.
func (p *Position) Hash() uint64 {
	return p.b.Hash()
}

// Err returns the corruption error once an unbalanced undo has been detected.
func (p *Position) Err() error {
	if p.corrupt != nil {
		return p.corrupt
	}
	return nil
}

func (p *Position) LegalMoves() []Move {
	generated := p.b.GenerateLegalMoves()
	moves := make([]Move, len(generated))
	for i, m := range generated {
		moves[i] = Move(m)
	}
	p.cacheStatus(len(moves) > 0)
	return moves
}

// IsLegal reports whether m is legal for the side to move.
func (p *Position) IsLegal(m Move) bool {
	return Contains(p.LegalMoves(), m)
}

// ParseMove finds the legal move written as uci (e2e4, e7e8q). Text that is not
// a move at all fails with ErrBadNotation, a well-formed move that cannot be played
// here with ErrIllegalMove.
func (p *Position) ParseMove(uci string) (Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	if len(uci) != 4 && len(uci) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrBadNotation, uci)
	}
	for _, sq := range []string{uci[:2], uci[2:4]} {
		if _, err := ParseSquare(sq); err != nil {
			return NullMove, fmt.Errorf("%w: %q: %v", ErrBadNotation, uci, err)
		}
	}
	if len(uci) == 5 && !strings.ContainsRune("nbrq", rune(uci[4])) {
		return NullMove, fmt.Errorf("%w: %q: bad promotion piece", ErrBadNotation, uci)
	}
	for _, m := range p.LegalMoves() {
		if m.String() == uci {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %q in %s", ErrIllegalMove, uci, p.FEN())
}

// Apply plays m and returns the closure that takes it back. Undo closures must run in
// reverse order of their Apply calls, exactly once each; anything else marks the
// position corrupted and panics with *CorruptionError.
func (p *Position) Apply(m Move) func() {
	if p.corrupt != nil {
		panic(p.corrupt)
	}
	unapply := p.b.Apply(dragontoothmg.Move(m))
	p.history = append(p.history, p.b.Hash())
	p.open++
	level := p.open
	undone := false
	return func() {
		if undone || p.open != level {
			p.corrupt = &CorruptionError{Move: m, Level: level, Open: p.open, Repeat: undone}
			panic(p.corrupt)
		}
		undone = true
		unapply()
		p.history = p.history[:len(p.history)-1]
		p.open--
	}
}

// Push plays a legal move permanently. It is the only way to advance the authoritative game.
func (p *Position) Push(m Move) error {
	if p.corrupt != nil {
		return p.corrupt
	}
	if p.open != 0 {
		return fmt.Errorf("%w: %d open", ErrPendingUndo, p.open)
	}
	if !p.IsLegal(m) {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, p.FEN())
	}
	p.b.Apply(dragontoothmg.Move(m))
	p.history = append(p.history, p.b.Hash())
	return nil
}

// PushUCI parses and plays a move given in UCI notation.
func (p *Position) PushUCI(uci string) (Move, error) {
	m, err := p.ParseMove(uci)
	if err != nil {
		return NullMove, err
	}
	return m, p.Push(m)
}

func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if kind, ok := kindAt(sq, &p.b.White); ok {
		return Piece{Kind: kind, Color: White}, true
	}
	if kind, ok := kindAt(sq, &p.b.Black); ok {
		return Piece{Kind: kind, Color: Black}, true
	}
	return Piece{}, false
}

func kindAt(sq Square, bb *dragontoothmg.Bitboards) (PieceKind, bool) {
	mask := uint64(1) << sq
	if bb.All&mask == 0 {
		return NoKind, false
	}
	switch {
	case bb.Pawns&mask != 0:
		return Pawn, true
	case bb.Knights&mask != 0:
		return Knight, true
	case bb.Bishops&mask != 0:
		return Bishop, true
	case bb.Rooks&mask != 0:
		return Rook, true
	case bb.Queens&mask != 0:
		return Queen, true
	case bb.Kings&mask != 0:
		return King, true
	}
	return NoKind, false
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.b.OurKingInCheck()
}

func (p *Position) hasLegalMoves() bool {
	if p.statusValid && p.statusHash == p.b.Hash() {
		return p.statusMoves
	}
	p.cacheStatus(len(p.b.GenerateLegalMoves()) > 0)
	return p.statusMoves
}

func (p *Position) cacheStatus(hasMoves bool) {
	p.statusHash = p.b.Hash()
	p.statusValid = true
	p.statusMoves = hasMoves
}
