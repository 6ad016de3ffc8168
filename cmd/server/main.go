package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Emre-Akgul/Chess-AI/httpapi"
	"github.com/Emre-Akgul/Chess-AI/logx"
	"github.com/Emre-Akgul/Chess-AI/player"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	defaultDepth := player.DefaultDepth
	if v := os.Getenv("CHESSAI_DEPTH"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			defaultDepth = d
		}
	}

	var (
		addr     = flag.String("addr", envOr("CHESSAI_ADDR", ":8000"), "listen address")
		depth    = flag.Int("depth", defaultDepth, "search depth of thinker players")
		seed     = flag.Uint64("seed", 0, "random seed for players (0 = time based)")
		workers  = flag.Int("workers", 0, "parallel games for /test_games (0 = GOMAXPROCS)")
		maxGames = flag.Int("max-games", httpapi.DefaultMaxGames, "largest game_count /test_games accepts")
		logLevel = flag.String("log-level", envOr("CHESSAI_LOG_LEVEL", "info"), "log level")
	)
	flag.Parse()

	level, err := logx.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logx.NewLogger(os.Stdout, level)
	if *depth <= 0 {
		logger.Fatal().Int("depth", *depth).Msg("depth must be positive")
	}

	playerLog := logger.With().Str("component", "player").Logger()
	srv := httpapi.NewServer(player.DefaultRegistry(),
		httpapi.WithPlayerConfig(player.Config{Depth: *depth, Seed: *seed, Logger: &playerLog}),
		httpapi.WithWorkers(*workers),
		httpapi.WithMaxGames(*maxGames),
		httpapi.WithLogger(logger.With().Str("component", "http").Logger()),
	)

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *addr).Int("depth", *depth).Msg("chess ai listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down...")
	case err, ok := <-errCh:
		if ok {
			logger.Error().Err(err).Msg("http server")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}
}
