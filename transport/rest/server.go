package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-registry/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameRegistry interface {
	CreateGame(ctx context.Context) entity.GameID
	AddPlayer(ctx context.Context, gameID entity.GameID) (entity.PlayerID, error)
	MakeMove(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, x, y int) (entity.MoveResult, error)
	Game(ctx context.Context, gameID entity.GameID) (*entity.Game, error)
}

type Server struct {
	logger   *slog.Logger
	registry gameRegistry
	mux      *http.ServeMux
}

func New(logger *slog.Logger, registry gameRegistry) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		registry: registry,
		mux:      http.NewServeMux(),
	}

	server.mux.HandleFunc("GET /ping", server.handlePing)
	server.mux.HandleFunc("POST /games", server.handleCreateGame)
	server.mux.HandleFunc("GET /games/{id}", server.handleGetGame)
	server.mux.HandleFunc("POST /games/{id}/players", server.handleAddPlayer)
	server.mux.HandleFunc("POST /games/{id}/moves", server.handleMakeMove)

	return server
}

func (that *Server) Handler() http.Handler {
	return that.mux
}

// Start - serves HTTP until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
