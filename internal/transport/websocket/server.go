package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AtulFalle/pictionary/internal/usecase"
)

// gameManager is the engine surface the transport drives.
type gameManager interface {
	CreateRoom(ctx context.Context, connID, playerName string, maxPlayers int) error
	JoinRoom(ctx context.Context, connID, roomCode, playerName string) error
	StartRound(ctx context.Context, connID string) error
	SubmitGuess(ctx context.Context, connID, guess string) error
	DrawUpdate(ctx context.Context, connID string, stroke json.RawMessage) error
	LeaveRoom(ctx context.Context, connID string) error
	Disconnect(ctx context.Context, connID string) error
}

type Server struct {
	logger  *slog.Logger
	hub     *Hub
	manager gameManager

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, connID string, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, manager gameManager) *Server {
	server := &Server{
		logger:  logger,
		hub:     hub,
		manager: manager,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, string, *Message) error),
	}

	server.handlers["create_room"] = server.handleCreateRoom
	server.handlers["join_room"] = server.handleJoinRoom
	server.handlers["start_round"] = server.handleStartRound
	server.handlers["submit_guess"] = server.handleSubmitGuess
	server.handlers["draw_update"] = server.handleDrawUpdate
	server.handlers["leave_room"] = server.handleLeaveRoom

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the request and runs the connection's read loop.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	connID := uuid.NewString()
	client := newClient(connID, conn, that.logger)

	that.hub.register(client)
	go client.writePump()

	log.Info("connection established", "conn", connID)

	that.readLoop(ctx, connID, conn)

	// The disconnect notification runs through the same serialized room path
	// as any other action, and is a no-op if the player already left.
	if err := that.manager.Disconnect(ctx, connID); err != nil {
		log.Error("failed to process disconnect", "conn", connID, "error", err)
	}

	// unregister closes the client's send channel, which lets the write pump
	// drain and exit.
	that.hub.unregister(connID)

	log.Info("connection closed", "conn", connID)
}

func (that *Server) readLoop(ctx context.Context, connID string, conn *websocket.Conn) {
	log := that.logger.With("method", "readLoop", "conn", connID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err := json.Unmarshal(raw, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			that.hub.SendTo(connID, usecase.EventError, usecase.ErrorPayload{Message: "malformed message"})
			continue
		}

		that.dispatch(ctx, connID, &message)
	}
}

// dispatch routes one action to its handler. A fault in one action must not
// take down the connection's processing or the room, so panics are contained
// here and every failure becomes an error event addressed to this connection
// alone.
func (that *Server) dispatch(ctx context.Context, connID string, message *Message) {
	log := that.logger.With("method", "dispatch", "conn", connID, "action", message.Action)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic in handler", "panic", r)
			that.hub.SendTo(connID, usecase.EventError, usecase.ErrorPayload{Message: "internal error"})
		}
	}()

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action")
		that.hub.SendTo(connID, usecase.EventError, usecase.ErrorPayload{Message: "unknown action: " + message.Action})
		return
	}

	if err := handler(ctx, connID, message); err != nil {
		log.Debug("action rejected", "error", err)
		that.hub.SendTo(connID, usecase.EventError, usecase.ErrorPayload{Message: userMessage(err)})
	}
}
