package game

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/player"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Tally counts results from White's and Black's side over a match.
type Tally struct {
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
}

// Add counts one result given as a PGN result string. Anything but a win,
// unfinished games included, counts as a draw.
func (t *Tally) Add(outcome string) {
	switch outcome {
	case "1-0":
		t.WhiteWins++
	case "0-1":
		t.BlackWins++
	default:
		t.Draws++
	}
}

// TallyGames counts the results of recorded games.
func TallyGames(games []*chess.Game) Tally {
	var t Tally
	for _, g := range games {
		t.Add(g.Outcome().String())
	}
	return t
}

// GameRecord is the summary of one finished game.
type GameRecord struct {
	Index       int
	Outcome     string
	Termination board.Termination
	Plies       int
	PGN         string
}

// Match describes a batch of games between two strategies.
type Match struct {
	Registry *player.Registry
	White    string
	Black    string
	Games    int
	// Workers bounds how many games run at once; 0 means GOMAXPROCS.
	Workers int
	Config  player.Config
	Logger  zerolog.Logger
}

// Simulate plays m.Games independent games in parallel. Every game owns its own
// board and its own players, so nothing is shared between workers. Game i seeds
// its players with Config.Seed+2i and +2i+1 when a seed is set. A game that stops
// without a mate is counted as a draw, as is any draw by rule.
func Simulate(ctx context.Context, m Match) (Tally, []GameRecord, error) {
	if m.Games <= 0 {
		return Tally{}, nil, nil
	}
	for _, name := range []string{m.White, m.Black} {
		if !m.Registry.Has(name) {
			return Tally{}, nil, fmt.Errorf("%w: %q", player.ErrUnknownStrategy, name)
		}
	}
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	records := make([]GameRecord, m.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < m.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := playOne(ctx, m, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, nil, err
	}

	var tally Tally
	for _, rec := range records {
		tally.Add(rec.Outcome)
	}
	return tally, records, nil
}

func playOne(ctx context.Context, m Match, index int) (GameRecord, error) {
	whiteCfg, blackCfg := m.Config, m.Config
	if m.Config.Seed != 0 {
		whiteCfg.Seed = m.Config.Seed + uint64(2*index)
		blackCfg.Seed = m.Config.Seed + uint64(2*index+1)
	}
	white, err := m.Registry.New(m.White, board.White, whiteCfg)
	if err != nil {
		return GameRecord{}, err
	}
	black, err := m.Registry.New(m.Black, board.Black, blackCfg)
	if err != nil {
		return GameRecord{}, err
	}

	log := m.Logger.With().Int("game", index+1).Logger()
	s := NewSession(white, black, WithLogger(log), WithEvent(fmt.Sprintf("%s vs %s, game %d", m.White, m.Black, index+1)))
	for !s.IsOver() {
		if err := ctx.Err(); err != nil {
			return GameRecord{}, err
		}
		step, err := s.Step()
		if err != nil {
			return GameRecord{}, err
		}
		if step.Move == "" {
			log.Warn().Str("reason", step.Message).Int("plies", s.Plies()).Msg("game stopped early")
			break
		}
	}

	outcome := s.Outcome()
	if outcome == "*" {
		outcome = "1/2-1/2"
	}
	log.Debug().Str("outcome", outcome).Stringer("termination", s.Termination()).Int("plies", s.Plies()).Msg("game finished")
	return GameRecord{
		Index:       index,
		Outcome:     outcome,
		Termination: s.Termination(),
		Plies:       s.Plies(),
		PGN:         s.PGN(),
	}, nil
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
