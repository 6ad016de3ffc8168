package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Emre-Akgul/Chess-AI/game"
	"github.com/Emre-Akgul/Chess-AI/logx"
	"github.com/Emre-Akgul/Chess-AI/player"
	"github.com/Emre-Akgul/Chess-AI/record"
)

func main() {
	var (
		white    = flag.String("white", "Level0ThinkerPlayer", "strategy playing White")
		black    = flag.String("black", "RandomPlayer", "strategy playing Black")
		games    = flag.Int("games", 10, "number of games")
		depth    = flag.Int("depth", player.DefaultDepth, "search depth of thinker players")
		seed     = flag.Uint64("seed", 0, "base random seed (0 = time based)")
		workers  = flag.Int("workers", 0, "games played in parallel (0 = GOMAXPROCS)")
		out      = flag.String("out", "", "write games to this .pgn.zst file")
		tallyIn  = flag.String("tally", "", "recount results from this .pgn.zst archive instead of playing")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	level, err := logx.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logx.NewLogger(os.Stderr, level)

	if *tallyIn != "" {
		tally, n, err := tallyArchive(*tallyIn)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *tallyIn).Msg("reading archive")
		}
		logger.Info().Str("path", *tallyIn).Int("games", n).Msg("archive read")
		fmt.Printf("%s: white_wins=%d black_wins=%d draws=%d\n",
			*tallyIn, tally.WhiteWins, tally.BlackWins, tally.Draws)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := player.DefaultRegistry()
	start := time.Now()
	tally, records, err := game.Simulate(ctx, game.Match{
		Registry: registry,
		White:    *white,
		Black:    *black,
		Games:    *games,
		Workers:  *workers,
		Config:   player.Config{Depth: *depth, Seed: *seed},
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("selfplay")
	}
	logger.Info().
		Int("games", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("selfplay finished")

	if *out != "" {
		written, err := writeArchive(*out, records)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *out).Msg("writing archive")
		}
		logger.Info().Str("path", *out).Int("games", written).Msg("archive written")
	}

	fmt.Printf("%s vs %s: white_wins=%d black_wins=%d draws=%d\n",
		*white, *black, tally.WhiteWins, tally.BlackWins, tally.Draws)
}

// writeArchive stores the games' PGN and returns how many were written.
func writeArchive(path string, records []game.GameRecord) (written int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := record.NewWriter(f)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := w.WriteGame(rec.PGN); err != nil {
			return w.Games(), err
		}
	}
	return w.Games(), w.Close()
}

func tallyArchive(path string) (game.Tally, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return game.Tally{}, 0, err
	}
	defer f.Close()

	games, err := record.ReadGames(f)
	if err != nil {
		return game.Tally{}, 0, err
	}
	return game.TallyGames(games), len(games), nil
}
