package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Emre-Akgul/Chess-AI/game"
)

type messageResponse struct {
	Message string `json:"message"`
}

type playersResponse struct {
	Players []string `json:"players"`
}

type startGameRequest struct {
	WhiteType string `json:"white_type"`
	BlackType string `json:"black_type"`
}

type startGameResponse struct {
	Message string `json:"message"`
	Board   string `json:"board"`
}

// playResponse mirrors game.Step; Move is null when nothing was played.
type playResponse struct {
	Move    *string `json:"move"`
	Board   string  `json:"board"`
	Message string  `json:"message"`
}

func toPlayResponse(step game.Step) playResponse {
	resp := playResponse{Board: step.Board, Message: step.Message}
	if step.Move != "" {
		move := step.Move
		resp.Move = &move
	}
	return resp
}

type boardResponse struct {
	Board string `json:"board"`
}

type testGamesRequest struct {
	WhiteType string `json:"white_type"`
	BlackType string `json:"black_type"`
	GameCount *int   `json:"game_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
