// Package registry owns every Tic-Tac-Toe game of the process and implements
// the create, join and move operations on them.
//
// Error precedence is part of the contract. When several conditions hold at
// once, the first one listed below is reported:
//
//	GAME_DOES_NOT_EXIST > GAME_ENDED > GAME_NOT_STARTED / GAME_ONGOING >
//	PLAYER_DOES_NOT_EXIST > WRONG_TURN > INVALID_LOCATION
//
// Games and identifiers are never reclaimed or reused.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-registry/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-registry/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
}

type Registry struct {
	logger *slog.Logger

	// optional snapshot mirror, never read back
	gameRepo   gameRepo
	playerRepo playerRepo

	mu           sync.Mutex
	games        map[entity.GameID]*entity.Game
	lastGameID   entity.GameID
	lastPlayerID entity.PlayerID
}

// New - creates an empty registry. Repositories may be nil, then nothing is mirrored.
func New(logger *slog.Logger, gameRepo gameRepo, playerRepo playerRepo) *Registry {
	return &Registry{
		logger:     logger.With("component", "registry"),
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		games:      make(map[entity.GameID]*entity.Game),
	}
}

// CreateGame - creates a waiting game and returns its id. It always succeeds.
func (that *Registry) CreateGame(ctx context.Context) entity.GameID {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.lastGameID++
	game := entity.NewGame(that.lastGameID)
	that.games[game.ID] = game

	that.logger.Info("game created", "gameID", game.ID)
	that.saveGame(ctx, game)

	return game.ID
}

// AddPlayer - seats a new player in the game and returns the player's id.
func (that *Registry) AddPlayer(ctx context.Context, gameID entity.GameID) (entity.PlayerID, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(gameID)
	if err != nil {
		return 0, err
	}

	if err = game.ConfirmJoinable(); err != nil {
		return 0, fmt.Errorf("failed to join game %d: %w", gameID, err)
	}

	playerID := that.lastPlayerID + 1

	seat, err := game.AddPlayer(playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to join game %d: %w", gameID, err)
	}

	that.lastPlayerID = playerID

	that.logger.Info("player joined", "gameID", gameID, "playerID", playerID, "seat", seat)
	that.savePlayer(ctx, &entity.Player{ID: playerID, GameID: gameID, Mark: entity.MarkOf(seat)})
	that.saveGame(ctx, game)

	return playerID, nil
}

// MakeMove - plays the player's mark at (x, y). The result is ongoing, a win
// for the mover, or a draw reported with the opponent's id.
func (that *Registry) MakeMove(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, x, y int) (entity.MoveResult, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID, "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(gameID)
	if err != nil {
		return entity.MoveResult{}, err
	}

	result, err := game.MakeMove(playerID, x, y)
	if err != nil {
		log.Debug("move rejected", "x", x, "y", y, "error", err)
		return entity.MoveResult{}, fmt.Errorf("failed to make move: %w", err)
	}

	if result.IsFinal() {
		log.Info("game finished", "outcome", result.Outcome, "resultPlayerID", result.PlayerID)
	}

	that.saveGame(ctx, game)

	return result, nil
}

// Game - returns a copy of the game state.
func (that *Registry) Game(_ context.Context, gameID entity.GameID) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.Clone(), nil
}

func (that *Registry) getGame(gameID entity.GameID) (*entity.Game, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("%w: id %d", apperror.ErrGameDoesNotExist, gameID)
	}

	game, ok := that.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", apperror.ErrGameDoesNotExist, gameID)
	}

	return game, nil
}

func (that *Registry) saveGame(ctx context.Context, game *entity.Game) {
	if that.gameRepo == nil {
		return
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		that.logger.Error("failed to save game snapshot", "gameID", game.ID, "error", err)
	}
}

func (that *Registry) savePlayer(ctx context.Context, player *entity.Player) {
	if that.playerRepo == nil {
		return
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		that.logger.Error("failed to save player snapshot", "playerID", player.ID, "error", err)
	}
}
