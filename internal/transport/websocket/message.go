package websocket

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AtulFalle/pictionary/internal/apperror"
)

// Message is one inbound client action: an action name plus its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Envelope is the outbound frame shape shared by every event.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
}

type JoinRoomPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type SubmitGuessPayload struct {
	Guess      string `json:"guess"`
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	RoomCode   string `json:"roomCode,omitempty"`
}

func decodePayload[T any](raw json.RawMessage, dst *T) error {
	if len(raw) == 0 {
		return apperror.ErrMalformedPayload
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrMalformedPayload, err)
	}

	return nil
}

func (that *CreateRoomPayload) validate() error {
	if strings.TrimSpace(that.PlayerName) == "" {
		return fmt.Errorf("%w: playerName is required", apperror.ErrMalformedPayload)
	}
	return nil
}

func (that *JoinRoomPayload) validate() error {
	if strings.TrimSpace(that.PlayerName) == "" || strings.TrimSpace(that.RoomCode) == "" {
		return fmt.Errorf("%w: roomCode and playerName are required", apperror.ErrMalformedPayload)
	}
	return nil
}

func (that *SubmitGuessPayload) validate() error {
	if strings.TrimSpace(that.Guess) == "" {
		return fmt.Errorf("%w: guess is required", apperror.ErrMalformedPayload)
	}
	return nil
}
