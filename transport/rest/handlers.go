package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-registry/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-registry/internal/entity"
)

var (
	errInvalidGameID   = errors.New("invalid game id")
	errInvalidMoveBody = errors.New("move requires player_id, x and y")
)

// Response carries the result of an operation. Code is the integer form of
// the result: the new id, GAME_ONGOING, a result player id or an error code.
type Response struct {
	GameID   entity.GameID   `json:"game_id,omitempty"`
	PlayerID entity.PlayerID `json:"player_id,omitempty"`
	Code     int64           `json:"code,omitempty"`
	Outcome  entity.Outcome  `json:"outcome,omitempty"`
	Error    string          `json:"error,omitempty"`
	Game     *entity.Game    `json:"game,omitempty"`
}

type MoveRequest struct {
	PlayerID *entity.PlayerID `json:"player_id"`
	X        *int             `json:"x"`
	Y        *int             `json:"y"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := that.registry.CreateGame(r.Context())

	that.writeJSON(w, http.StatusCreated, Response{GameID: gameID, Code: int64(gameID)})
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameID(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.registry.Game(r.Context(), gameID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{GameID: gameID, Game: game})
}

func (that *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameID(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	playerID, err := that.registry.AddPlayer(r.Context(), gameID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, Response{GameID: gameID, PlayerID: playerID, Code: int64(playerID)})
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameID(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	var req MoveRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errInvalidMoveBody, err))
		return
	}

	if req.PlayerID == nil || req.X == nil || req.Y == nil {
		that.writeError(w, errInvalidMoveBody)
		return
	}

	result, err := that.registry.MakeMove(r.Context(), gameID, *req.PlayerID, *req.X, *req.Y)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{
		GameID:   gameID,
		PlayerID: result.PlayerID,
		Code:     result.Code(),
		Outcome:  result.Outcome,
	})
}

func parseGameID(r *http.Request) (entity.GameID, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidGameID, r.PathValue("id"))
	}

	return entity.GameID(id), nil
}

func statusOf(err error) int {
	switch apperror.CodeOf(err) {
	case apperror.CodeGameDoesNotExist:
		return http.StatusNotFound
	case apperror.CodeGameNotStarted, apperror.CodeGameEnded, apperror.CodeGameOngoing, apperror.CodeWrongTurn:
		return http.StatusConflict
	case apperror.CodePlayerDoesNotExist:
		return http.StatusForbidden
	case apperror.CodeInvalidLocation:
		return http.StatusUnprocessableEntity
	}

	if errors.Is(err, errInvalidGameID) || errors.Is(err, errInvalidMoveBody) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, Response{
		Code:  int64(apperror.CodeOf(err)),
		Error: err.Error(),
	})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
