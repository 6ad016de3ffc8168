package board

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

const (
	lightSquares uint64 = 0x55AA55AA55AA55AA
	darkSquares  uint64 = 0xAA55AA55AA55AA55
)

type Termination uint8

const (
	NotTerminated Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
)

func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case SeventyFiveMoves:
		return "seventy-five moves"
	case FivefoldRepetition:
		return "fivefold repetition"
	}
	return "none"
}

func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.hasLegalMoves()
}

func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.hasLegalMoves()
}

// IsDraw covers every draw that ends the game without a claim.
func (p *Position) IsDraw() bool {
	return p.IsStalemate() || p.IsInsufficientMaterial() || p.IsSeventyFiveMoves() || p.IsFivefoldRepetition()
}

func (p *Position) IsGameOver() bool {
	return p.Termination() != NotTerminated
}

// Termination reports why the game is over. Mate and stalemate take precedence over
// the counting rules, so a mating move on the 150th ply still wins.
func (p *Position) Termination() Termination {
	if !p.hasLegalMoves() {
		if p.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case p.IsInsufficientMaterial():
		return InsufficientMaterial
	case p.IsSeventyFiveMoves():
		return SeventyFiveMoves
	case p.IsFivefoldRepetition():
		return FivefoldRepetition
	}
	return NotTerminated
}

// Outcome is the PGN result string for the current position.
func (p *Position) Outcome() string {
	switch p.Termination() {
	case NotTerminated:
		return "*"
	case Checkmate:
		if p.SideToMove() == White {
			return "0-1"
		}
		return "1-0"
	}
	return "1/2-1/2"
}

// IsInsufficientMaterial is true when neither side can possibly mate.
func (p *Position) IsInsufficientMaterial() bool {
	return cannotMate(&p.b.White, &p.b.Black) && cannotMate(&p.b.Black, &p.b.White)
}

func cannotMate(us, them *dragontoothmg.Bitboards) bool {
	if us.Pawns|us.Rooks|us.Queens != 0 {
		return false
	}
	if us.Knights != 0 {
		// a lone knight mates only with help from enemy pieces that can block
		return bits.OnesCount64(us.All) <= 2 && them.All&^(them.Kings|them.Queens) == 0
	}
	if us.Bishops != 0 {
		bishops := us.Bishops | them.Bishops
		sameShade := bishops&darkSquares == 0 || bishops&lightSquares == 0
		return sameShade && them.Pawns == 0 && them.Knights == 0
	}
	return true
}
