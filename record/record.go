// Package record stores finished games as a zstd-compressed stream of PGN texts.
package record

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/notnil/chess"
)

var ErrClosed = errors.New("record: writer is closed")

// Writer appends PGN games to a zstd stream. Games are separated by a blank line,
// the way PGN databases are laid out.
type Writer struct {
	enc   *zstd.Encoder
	games int
}

func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("record: creating encoder: %w", err)
	}
	return &Writer{enc: enc}, nil
}

func (w *Writer) WriteGame(pgn string) error {
	if w.enc == nil {
		return ErrClosed
	}
	pgn = strings.TrimSpace(pgn)
	if pgn == "" {
		return nil
	}
	if _, err := io.WriteString(w.enc, pgn+"\n\n"); err != nil {
		return fmt.Errorf("record: writing game %d: %w", w.games+1, err)
	}
	w.games++
	return nil
}

// Games reports how many games were written.
func (w *Writer) Games() int {
	return w.games
}

// Close flushes the stream. The underlying writer is not closed.
func (w *Writer) Close() error {
	if w.enc == nil {
		return nil
	}
	err := w.enc.Close()
	w.enc = nil
	return err
}

// ReadGames decompresses r and parses every PGN game in it.
func ReadGames(r io.Reader) ([]*chess.Game, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("record: creating decoder: %w", err)
	}
	defer dec.Close()

	var games []*chess.Game
	sc := chess.NewScanner(dec)
	for sc.Scan() {
		games = append(games, sc.Next())
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("record: reading game %d: %w", len(games)+1, err)
	}
	return games, nil
}
