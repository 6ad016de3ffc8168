package engine

import "github.com/Emre-Akgul/Chess-AI/board"

// Position is everything the search needs from the rules engine. *board.Position
// implements it; the search never copies or edits a position except through Apply
// and, for the final chosen move, Push.
type Position interface {
	LegalMoves() []board.Move
	// Apply plays a move and returns the closure restoring the previous state.
	Apply(m board.Move) (undo func())
	// Push plays a legal move permanently.
	Push(m board.Move) error
	PieceAt(sq board.Square) (board.Piece, bool)
	SideToMove() board.Color
	InCheck() bool
	IsCheckmate() bool
	IsStalemate() bool
	// IsDraw covers stalemate, insufficient material, the 75-move rule and fivefold repetition.
	IsDraw() bool
	IsGameOver() bool
}

var _ Position = (*board.Position)(nil)
