package websocket

import (
	"context"
	"fmt"
)

func (that *Server) handleNewGame(ctx context.Context, _ *RequestPayload) ResponsePayload {
	gameID := that.registry.CreateGame(ctx)

	return ResponsePayload{GameID: gameID, Code: int64(gameID)}
}

func (that *Server) handleJoinGame(ctx context.Context, req *RequestPayload) ResponsePayload {
	if req.GameID == nil {
		return errorPayload(fmt.Errorf("%w: game_id", errMissingField))
	}

	playerID, err := that.registry.AddPlayer(ctx, *req.GameID)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{GameID: *req.GameID, PlayerID: playerID, Code: int64(playerID)}
}

func (that *Server) handleGameTurn(ctx context.Context, req *RequestPayload) ResponsePayload {
	if req.GameID == nil || req.PlayerID == nil || req.X == nil || req.Y == nil {
		return errorPayload(fmt.Errorf("%w: game_id, player_id, x and y are required", errMissingField))
	}

	result, err := that.registry.MakeMove(ctx, *req.GameID, *req.PlayerID, *req.X, *req.Y)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{
		GameID:   *req.GameID,
		PlayerID: result.PlayerID,
		Code:     result.Code(),
		Outcome:  result.Outcome,
	}
}

func (that *Server) handleGameState(ctx context.Context, req *RequestPayload) ResponsePayload {
	if req.GameID == nil {
		return errorPayload(fmt.Errorf("%w: game_id", errMissingField))
	}

	game, err := that.registry.Game(ctx, *req.GameID)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{GameID: game.ID, Game: game}
}
