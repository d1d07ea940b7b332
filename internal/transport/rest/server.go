package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtulFalle/pictionary/internal/entity"
	"github.com/AtulFalle/pictionary/internal/repository"
)

type roomFinder interface {
	FindByCode(code string) (*entity.Room, error)
	Len() int
}

type Server struct {
	logger *slog.Logger
	rooms  roomFinder
	scores repository.ScoreRepository
}

// New builds the read-only HTTP surface. scores may be nil when redis is not
// configured; the history endpoint then reports the feature as unavailable.
func New(logger *slog.Logger, rooms roomFinder, scores repository.ScoreRepository) *Server {
	return &Server{
		logger: logger,
		rooms:  rooms,
		scores: scores,
	}
}

// Start - starts the HTTP server.
func (that *Server) Start(ctx context.Context, port string) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", that.handlePing)

	api := router.Group("/api")
	api.GET("/rooms/:code", that.handleGetRoom)
	api.GET("/players/:id/scores", that.handleGetScores)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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
