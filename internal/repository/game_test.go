package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-registry/internal/entity"
	"github.com/rocketscienceinc/tictactoe-registry/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	t.Run("Stores a new game", func(t *testing.T) {
		// Given: a waiting game
		game := entity.NewGame(1)

		// When: CreateOrUpdate is called
		err := gameRepo.CreateOrUpdate(ctx, game)

		// Then: the snapshot should be readable back
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Overwrites an existing game", func(t *testing.T) {
		// Given: a stored game that then gets two players and a move
		game := entity.NewGame(2)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		_, err := game.AddPlayer(1)
		require.NoError(t, err)
		_, err = game.AddPlayer(2)
		require.NoError(t, err)
		_, err = game.MakeMove(1, 2, 2)
		require.NoError(t, err)

		// When: CreateOrUpdate is called again
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// Then: the latest state should be stored
		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
		assert.Equal(t, entity.StatusOngoing, stored.Status)
		assert.Equal(t, entity.PlayerX, stored.Board[8])
	})
}

func TestGameRepository_GetByID(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// When: GetByID is called with an unknown ID
	game, err := gameRepo.GetByID(ctx, 9999999)

	// Then: ErrGameNotFound should be returned
	require.ErrorIs(t, err, ErrGameNotFound)
	assert.Nil(t, game)
}
