package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": that.rooms.Len()})
}

// handleGetRoom returns the public snapshot of a live room. The snapshot
// never contains the current word.
func (that *Server) handleGetRoom(c *gin.Context) {
	room, err := that.rooms.FindByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	room.Lock()
	snapshot := room.Snapshot()
	room.Unlock()

	c.JSON(http.StatusOK, gin.H{"room": snapshot})
}

func (that *Server) handleGetScores(c *gin.Context) {
	if that.scores == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score history is not enabled"})
		return
	}

	awards, err := that.scores.ListByPlayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.logger.Error("failed to list score awards", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load score history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scores": awards})
}
