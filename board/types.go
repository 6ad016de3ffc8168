package board

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind values line up with dragontoothmg's piece numbering.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

type Piece struct {
	Kind  PieceKind
	Color Color
}

// Square indexes the board a1=0, b1=1 ... h8=63, the same layout dragontoothmg uses.
type Square uint8

func SquareAt(file, rank int) Square {
	return Square(rank*8 + file)
}

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

// Mirror reflects the square across the horizontal axis (a1 <-> a8).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

func (sq Square) String() string {
	if sq > 63 {
		return fmt.Sprintf("Square(%d)", uint8(sq))
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("board: invalid square %q", s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Move wraps a dragontoothmg move; the core only looks at its endpoints and promotion flag.
type Move dragontoothmg.Move

// NullMove is never produced by move generation.
const NullMove Move = 0

func (m Move) From() Square {
	dm := dragontoothmg.Move(m)
	return Square(dm.From())
}

func (m Move) To() Square {
	dm := dragontoothmg.Move(m)
	return Square(dm.To())
}

func (m Move) IsPromotion() bool {
	dm := dragontoothmg.Move(m)
	return dm.Promote() != 0
}

// String renders the move in UCI long algebraic form (e2e4, e7e8q).
func (m Move) String() string {
	dm := dragontoothmg.Move(m)
	return dm.String()
}

// Contains reports whether m is one of moves.
func Contains(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
