package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AtulFalle/pictionary/internal/config"
	"github.com/AtulFalle/pictionary/internal/registry"
	"github.com/AtulFalle/pictionary/internal/repository"
	"github.com/AtulFalle/pictionary/internal/repository/storage"
	"github.com/AtulFalle/pictionary/internal/transport/rest"
	"github.com/AtulFalle/pictionary/internal/transport/websocket"
	"github.com/AtulFalle/pictionary/internal/usecase"
	"github.com/AtulFalle/pictionary/internal/words"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// Score history is optional: without redis the engine runs fully
	// in-memory and the history endpoints stay disabled.
	var scoreRepo repository.ScoreRepository
	if addr := conf.Redis.GetRedisAddr(); addr != "" {
		redisClient, err := storage.New(ctx, addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		scoreRepo = repository.NewScoreRepository(redisClient)
	} else {
		log.Info("redis not configured, score history disabled")
	}

	roomRegistry := registry.New()
	wordSource := words.NewSource()
	hub := websocket.NewHub(logger)
	gameManager := usecase.NewGameManager(logger, roomRegistry, wordSource, scoreRepo, hub, conf.Game)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, roomRegistry, scoreRepo)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, hub, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
