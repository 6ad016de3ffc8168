package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFEN  = errors.New("board: invalid FEN")
	ErrIllegalMove = errors.New("board: illegal move")
	ErrBadNotation = errors.New("board: malformed move notation")
	ErrPendingUndo = errors.New("board: position has moves applied that were not undone")
	ErrCorrupted   = errors.New("board: position corrupted by unbalanced apply/undo")
)

// CorruptionError reports an undo closure that ran out of stack order or twice.
// Once raised the position refuses every further Apply and Push.
type CorruptionError struct {
	Move   Move
	Level  int // stack level the undo belongs to
	Open   int // stack level at the time of the undo
	Repeat bool
}

func (e *CorruptionError) Error() string {
	if e.Repeat {
		return fmt.Sprintf("board: undo of %s called twice", e.Move)
	}
	return fmt.Sprintf("board: undo of %s at level %d while %d applies are open", e.Move, e.Level, e.Open)
}

func (e *CorruptionError) Unwrap() error {
	return ErrCorrupted
}
