package websocket

import (
	"context"
	"errors"

	"github.com/AtulFalle/pictionary/internal/apperror"
)

func (that *Server) handleCreateRoom(ctx context.Context, connID string, message *Message) error {
	var payload CreateRoomPayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return err
	}
	if err := payload.validate(); err != nil {
		return err
	}

	return that.manager.CreateRoom(ctx, connID, payload.PlayerName, payload.MaxPlayers)
}

func (that *Server) handleJoinRoom(ctx context.Context, connID string, message *Message) error {
	var payload JoinRoomPayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return err
	}
	if err := payload.validate(); err != nil {
		return err
	}

	return that.manager.JoinRoom(ctx, connID, payload.RoomCode, payload.PlayerName)
}

func (that *Server) handleStartRound(ctx context.Context, connID string, _ *Message) error {
	return that.manager.StartRound(ctx, connID)
}

func (that *Server) handleSubmitGuess(ctx context.Context, connID string, message *Message) error {
	var payload SubmitGuessPayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return err
	}
	if err := payload.validate(); err != nil {
		return err
	}

	return that.manager.SubmitGuess(ctx, connID, payload.Guess)
}

func (that *Server) handleDrawUpdate(ctx context.Context, connID string, message *Message) error {
	if len(message.Payload) == 0 {
		return apperror.ErrMalformedPayload
	}

	// The stroke travels verbatim; the engine only checks who may draw.
	return that.manager.DrawUpdate(ctx, connID, message.Payload)
}

func (that *Server) handleLeaveRoom(ctx context.Context, connID string, _ *Message) error {
	return that.manager.LeaveRoom(ctx, connID)
}

// userMessage maps an error to the text sent back to the offending
// connection. Precondition violations carry their own wording; anything else
// stays a generic failure so internals never leak.
func userMessage(err error) string {
	for _, known := range []error{
		apperror.ErrRoomNotFound,
		apperror.ErrRoomFull,
		apperror.ErrRoomNotJoinable,
		apperror.ErrNotInRoom,
		apperror.ErrNotHost,
		apperror.ErrInsufficientPlayers,
		apperror.ErrRoundAlreadyInProgress,
		apperror.ErrNoActiveRound,
		apperror.ErrDrawerCannotGuess,
		apperror.ErrOnlyDrawerCanDraw,
		apperror.ErrMalformedPayload,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "failed to process action"
}
