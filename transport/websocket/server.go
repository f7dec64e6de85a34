package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-registry/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	readLimit       = 4096
)

type gameRegistry interface {
	CreateGame(ctx context.Context) entity.GameID
	AddPlayer(ctx context.Context, gameID entity.GameID) (entity.PlayerID, error)
	MakeMove(ctx context.Context, gameID entity.GameID, playerID entity.PlayerID, x, y int) (entity.MoveResult, error)
	Game(ctx context.Context, gameID entity.GameID) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, req *RequestPayload) ResponsePayload

type Server struct {
	logger   *slog.Logger
	registry gameRegistry
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, registry gameRegistry) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNewGame] = server.handleNewGame
	server.handlers[ActionJoinGame] = server.handleJoinGame
	server.handlers[ActionGameTurn] = server.handleGameTurn
	server.handlers[ActionGameState] = server.handleGameState

	return server
}

// Handler - returns the http handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(readLimit)

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendError(conn, "", fmt.Errorf("%w: %w", errMalformedMessage, err)); err != nil {
				return err
			}

			continue
		}

		if err = that.sendMessage(conn, message.Action, that.dispatch(ctx, &message)); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) ResponsePayload {
	handler, ok := that.handlers[message.Action]
	if !ok {
		that.logger.Warn("unknown action", "action", message.Action)
		return errorPayload(fmt.Errorf("%w: %q", errUnknownAction, message.Action))
	}

	var req RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &req); err != nil {
			return errorPayload(fmt.Errorf("%w: %w", errMalformedMessage, err))
		}
	}

	return handler(ctx, &req)
}
