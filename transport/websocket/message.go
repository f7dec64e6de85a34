package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-registry/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-registry/internal/entity"
)

const (
	ActionNewGame   = "game:new"
	ActionJoinGame  = "game:join"
	ActionGameTurn  = "game:turn"
	ActionGameState = "game:state"
)

var (
	errUnknownAction    = errors.New("unknown action")
	errMalformedMessage = errors.New("malformed message")
	errMissingField     = errors.New("missing field")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID   *entity.GameID   `json:"game_id,omitempty"`
	PlayerID *entity.PlayerID `json:"player_id,omitempty"`
	X        *int             `json:"x,omitempty"`
	Y        *int             `json:"y,omitempty"`
}

// ResponsePayload mirrors the registry result. Code holds the integer form of
// the result, the same value the REST API returns.
type ResponsePayload struct {
	GameID   entity.GameID   `json:"game_id,omitempty"`
	PlayerID entity.PlayerID `json:"player_id,omitempty"`
	Code     int64           `json:"code,omitempty"`
	Outcome  entity.Outcome  `json:"outcome,omitempty"`
	Game     *entity.Game    `json:"game,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func errorPayload(err error) ResponsePayload {
	return ResponsePayload{
		Code:  int64(apperror.CodeOf(err)),
		Error: err.Error(),
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadBytes}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action string, err error) error {
	return that.sendMessage(conn, action, errorPayload(err))
}
