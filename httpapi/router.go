package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/game"
	"github.com/Emre-Akgul/Chess-AI/player"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

const (
	DefaultTestGames = 100
	DefaultMaxGames  = 1000
	defaultStrategy  = "RandomPlayer"
)

// Server holds the single interactive game the HTTP surface drives. Requests are
// serialized on mu, so at most one move is computed at a time.
type Server struct {
	mu       sync.Mutex
	session  *game.Session
	registry *player.Registry
	cfg      player.Config
	workers  int
	maxGames int
	log      zerolog.Logger
}

type Option func(*Server)

// WithPlayerConfig sets the config every player created by the server receives.
func WithPlayerConfig(cfg player.Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// WithWorkers bounds the games /test_games runs in parallel.
func WithWorkers(n int) Option {
	return func(s *Server) { s.workers = n }
}

func WithMaxGames(n int) Option {
	return func(s *Server) { s.maxGames = n }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

func NewServer(registry *player.Registry, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		maxGames: DefaultMaxGames,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRouter wires the JSON endpoints.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/player_types", s.handlePlayerTypes)
	r.Post("/start_game", s.handleStartGame)
	r.Get("/play_game", s.handlePlayGame)
	r.Get("/board", s.handleBoard)
	r.Get("/board/pgn", s.handleBoardPGN)
	r.Post("/test_games", s.handleTestGames)
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to Chess AI"})
}

func (s *Server) handlePlayerTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, playersResponse{Players: s.registry.Names()})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}
	white, err := s.registry.New(req.WhiteType, board.White, s.cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	black, err := s.registry.New(req.BlackType, board.Black, s.cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session := game.NewSession(white, black,
		game.WithLogger(s.log),
		game.WithEvent(fmt.Sprintf("%s vs %s", req.WhiteType, req.BlackType)),
	)
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.log.Info().Str("white", req.WhiteType).Str("black", req.BlackType).Msg("game started")
	writeJSON(w, http.StatusOK, startGameResponse{
		Message: fmt.Sprintf("Game started with %s vs %s", req.WhiteType, req.BlackType),
		Board:   session.Board(),
	})
}

func (s *Server) handlePlayGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		writeError(w, http.StatusConflict, game.ErrNoSession)
		return
	}
	step, err := s.session.Step()
	if err != nil {
		s.log.Error().Err(err).Msg("play step failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlayResponse(step))
}

// handleBoard reports the start position until a game has been started.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fen := board.Startpos
	if s.session != nil {
		fen = s.session.Board()
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, boardResponse{Board: fen})
}

func (s *Server) handleBoardPGN(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, game.ErrNoSession)
		return
	}
	pgn := s.session.PGN()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/x-chess-pgn")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, pgn)
}

func (s *Server) handleTestGames(w http.ResponseWriter, r *http.Request) {
	req := testGamesRequest{WhiteType: defaultStrategy, BlackType: defaultStrategy}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}
	games := DefaultTestGames
	if req.GameCount != nil {
		games = *req.GameCount
	}
	if games < 0 || games > s.maxGames {
		writeError(w, http.StatusBadRequest, fmt.Errorf("game_count must be between 0 and %d", s.maxGames))
		return
	}

	tally, _, err := game.Simulate(r.Context(), game.Match{
		Registry: s.registry,
		White:    req.WhiteType,
		Black:    req.BlackType,
		Games:    games,
		Workers:  s.workers,
		Config:   s.cfg,
		Logger:   s.log,
	})
	switch {
	case errors.Is(err, player.ErrUnknownStrategy):
		writeError(w, http.StatusBadRequest, err)
		return
	case game.IsCanceled(err):
		s.log.Warn().Err(err).Msg("test games canceled")
		writeError(w, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		s.log.Error().Err(err).Msg("test games failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info().
		Str("white", req.WhiteType).
		Str("black", req.BlackType).
		Int("games", games).
		Int("white_wins", tally.WhiteWins).
		Int("black_wins", tally.BlackWins).
		Int("draws", tally.Draws).
		Msg("test games finished")
	writeJSON(w, http.StatusOK, tally)
}
