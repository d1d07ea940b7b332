package usecase

import (
	"context"
	"encoding/json"

	"github.com/AtulFalle/pictionary/internal/apperror"
)

// DrawUpdate relays a stroke from the drawer to everyone else in the room.
// The stroke content is routed verbatim, never interpreted.
func (that *GameManager) DrawUpdate(_ context.Context, connID string, stroke json.RawMessage) error {
	room := that.registry.FindByConn(connID)
	if room == nil {
		return apperror.ErrNotInRoom
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByConn(connID)
	if player == nil {
		return apperror.ErrNotInRoom
	}

	if !room.IsPlaying() {
		return apperror.ErrNoActiveRound
	}

	if !player.IsDrawer {
		return apperror.ErrOnlyDrawerCanDraw
	}

	that.dispatcher.BroadcastExcept(room.Code, connID, EventDrawBroadcast, stroke)

	return nil
}
