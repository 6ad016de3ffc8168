package game

import (
	"errors"
	"fmt"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/player"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

var (
	ErrNoSession = errors.New("game: no game in progress")
	ErrGameOver  = errors.New("game: game is over")
)

const (
	MessageMoveMade = "Move made"
	MessageIllegal  = "Illegal move attempted"
	MessageGameOver = "Game over"
)

// Step is what one call to Session.Step produced. Move is empty when no move was played.
type Step struct {
	Move    string
	Board   string
	Message string
}

// Session owns the authoritative board of one game and the two players in it.
// Players only ever see a copy of the board; their move is checked against the
// authoritative legal moves before it is played. A Session is not safe for
// concurrent use.
type Session struct {
	pos    *board.Position
	white  player.Player
	black  player.Player
	record *chess.Game
	log    zerolog.Logger
	plies  int
}

type SessionOption func(*Session)

func WithLogger(log zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithEvent sets the PGN Event tag of the game record.
func WithEvent(event string) SessionOption {
	return func(s *Session) { s.record.AddTagPair("Event", event) }
}

func NewSession(white, black player.Player, opts ...SessionOption) *Session {
	s := &Session{
		pos:    board.New(),
		white:  white,
		black:  black,
		record: chess.NewGame(),
		log:    zerolog.Nop(),
	}
	s.record.AddTagPair("White", white.Name())
	s.record.AddTagPair("Black", black.Name())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns the FEN of the authoritative position.
func (s *Session) Board() string {
	return s.pos.FEN()
}

// Position returns a copy of the authoritative position.
func (s *Session) Position() *board.Position {
	return s.pos.Clone()
}

func (s *Session) Plies() int {
	return s.plies
}

func (s *Session) IsOver() bool {
	return s.pos.IsGameOver()
}

func (s *Session) Termination() board.Termination {
	return s.pos.Termination()
}

// Outcome is the PGN result string: "1-0", "0-1", "1/2-1/2" or "*".
func (s *Session) Outcome() string {
	return s.pos.Outcome()
}

// PGN renders the game so far.
func (s *Session) PGN() string {
	return s.record.String()
}

// OverMessage describes a finished game the way the play endpoint reports it.
func (s *Session) OverMessage() string {
	switch s.pos.Termination() {
	case board.Checkmate:
		return MessageGameOver + ": checkmate"
	case board.Stalemate:
		return MessageGameOver + ": stalemate"
	}
	return MessageGameOver + ": draw"
}

func (s *Session) toMove() player.Player {
	if s.pos.SideToMove() == board.White {
		return s.white
	}
	return s.black
}

// Step asks the side to move for a move and plays it. A player error or an illegal
// move is reported in the Step message and leaves the board untouched; the
// returned error is only set when the game record cannot follow the board.
func (s *Session) Step() (Step, error) {
	if s.pos.IsGameOver() {
		return Step{Board: s.pos.FEN(), Message: s.OverMessage()}, nil
	}

	p := s.toMove()
	move, err := p.MakeMove(s.pos.Clone())
	if err != nil {
		s.log.Warn().Err(err).Str("player", p.Name()).Msg("player failed to move")
		return Step{Board: s.pos.FEN(), Message: MessageIllegal}, nil
	}
	if !s.pos.IsLegal(move) {
		s.log.Warn().Str("player", p.Name()).Str("move", move.String()).Msg("illegal move rejected")
		return Step{Board: s.pos.FEN(), Message: MessageIllegal}, nil
	}

	if err := s.play(move); err != nil {
		return Step{Board: s.pos.FEN(), Message: MessageIllegal}, err
	}
	s.log.Info().
		Str("player", p.Name()).
		Str("move", move.String()).
		Int("ply", s.plies).
		Msg("move played")
	return Step{Move: move.String(), Board: s.pos.FEN(), Message: MessageMoveMade}, nil
}

// play records move in the game record and then on the board. The record is
// checked first so a failure leaves both untouched.
func (s *Session) play(move board.Move) error {
	decoded, err := chess.UCINotation{}.Decode(s.record.Position(), move.String())
	if err != nil {
		return fmt.Errorf("game: recording %s: %w", move, err)
	}
	if !slices.ContainsFunc(s.record.ValidMoves(), func(m *chess.Move) bool {
		return m.String() == decoded.String()
	}) {
		return fmt.Errorf("game: recording %s: not valid in %s", move, s.record.FEN())
	}
	if err := s.pos.Push(move); err != nil {
		return err
	}
	if err := s.record.Move(decoded); err != nil {
		return fmt.Errorf("game: recording %s: %w", move, err)
	}
	s.plies++
	return nil
}

// Play runs Step until the game ends. A step that fails to produce a move ends the
// game early with ErrGameOver wrapped around the reason.
func (s *Session) Play() error {
	for !s.pos.IsGameOver() {
		step, err := s.Step()
		if err != nil {
			return err
		}
		if step.Move == "" {
			return fmt.Errorf("%w: %s after %d plies", ErrGameOver, step.Message, s.plies)
		}
	}
	return nil
}
