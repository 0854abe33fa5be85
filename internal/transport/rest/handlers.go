package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
)

type gameUseCase interface {
	State(ctx context.Context, sessionID string) (entity.Snapshot, error)
	Play(ctx context.Context, sessionID string, cell int) (entity.Snapshot, bool, error)
	Reset(ctx context.Context, sessionID string) (entity.Snapshot, error)
}

type PlayRequest struct {
	Cell *int `json:"cell"`
}

type GameResponse struct {
	Game    entity.Snapshot `json:"game"`
	Status  string          `json:"status"`
	Applied *bool           `json:"applied,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func newHandlers(logger *slog.Logger, game gameUseCase) *handlers {
	return &handlers{
		logger: logger,
		game:   game,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.EnsureSession(w, r)

	snapshot, err := that.game.State(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, GameResponse{Game: snapshot, Status: snapshot.StatusText()})
}

func (that *handlers) Play(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.EnsureSession(w, r)

	var request PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "body must be {\"cell\": 0..8}"})
		return
	}

	snapshot, applied, err := that.game.Play(r.Context(), sessionID, *request.Cell)
	if err != nil {
		that.writeError(w, "Play", err)
		return
	}

	that.writeJSON(w, http.StatusOK, GameResponse{Game: snapshot, Status: snapshot.StatusText(), Applied: &applied})
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.EnsureSession(w, r)

	snapshot, err := that.game.Reset(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, "Reset", err)
		return
	}

	that.writeJSON(w, http.StatusOK, GameResponse{Game: snapshot, Status: snapshot.StatusText()})
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	if errors.Is(err, apperror.ErrInvalidCell) {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	that.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
