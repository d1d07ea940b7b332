package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/AtulFalle/pictionary/internal/config"
	"github.com/AtulFalle/pictionary/internal/entity"
	"github.com/AtulFalle/pictionary/internal/registry"
)

// GameManager applies inbound player actions to room state and emits the
// resulting events through the dispatcher. Every action resolves a room,
// takes that room's lock, mutates and emits, then releases it, so actions on
// the same room are serialized while different rooms proceed in parallel.
type GameManager struct {
	logger *slog.Logger

	registry   *registry.Registry
	words      wordSource
	scores     scoreRecorder
	dispatcher dispatcher

	conf config.Game
}

func NewGameManager(logger *slog.Logger, reg *registry.Registry, words wordSource, scores scoreRecorder, dispatcher dispatcher, conf config.Game) *GameManager {
	return &GameManager{
		logger: logger,

		registry:   reg,
		words:      words,
		scores:     scores,
		dispatcher: dispatcher,

		conf: conf,
	}
}

// CreateRoom opens a new room with the caller seated as host.
func (that *GameManager) CreateRoom(_ context.Context, connID, playerName string, maxPlayers int) error {
	log := that.logger.With("method", "CreateRoom")

	if maxPlayers <= 0 {
		maxPlayers = that.conf.MaxPlayers
	}

	room, host := that.registry.CreateRoom(playerName, connID, maxPlayers, that.conf.TotalRounds)

	room.Lock()
	defer room.Unlock()

	that.dispatcher.Join(room.Code, connID)
	that.dispatcher.SendTo(connID, EventRoomCreated, RoomPayload{
		Room:   room.Snapshot(),
		Player: copyPlayer(host),
	})

	log.Info("room created", "room", room.Code, "host", playerName)

	return nil
}

// JoinRoom seats a player in a waiting room and announces the new roster.
func (that *GameManager) JoinRoom(_ context.Context, connID, roomCode, playerName string) error {
	log := that.logger.With("method", "JoinRoom")

	room, player, err := that.registry.JoinRoom(roomCode, playerName, connID)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	that.dispatcher.Join(room.Code, connID)
	that.dispatcher.Broadcast(room.Code, EventRoomUpdated, RoomPayload{Room: room.Snapshot()})
	that.dispatcher.SendTo(connID, EventRoomJoined, RoomPayload{
		Room:   room.Snapshot(),
		Player: copyPlayer(player),
	})

	log.Info("player joined", "room", room.Code, "player", playerName)

	return nil
}

// LeaveRoom removes the caller from its room. The room disappears with its
// last player; otherwise host duty moves to the oldest remaining member and
// the roster change is broadcast once. Leaving when not in a room is a no-op.
func (that *GameManager) LeaveRoom(_ context.Context, connID string) error {
	log := that.logger.With("method", "LeaveRoom")

	room, player, deleted := that.registry.RemoveByConn(connID)
	if room == nil {
		return nil
	}

	that.dispatcher.Leave(room.Code, connID)

	room.Lock()
	that.abortInterruptedRound(room, player)
	snapshot := room.Snapshot()
	room.Unlock()

	if !deleted {
		that.dispatcher.Broadcast(room.Code, EventRoomUpdated, RoomPayload{Room: snapshot})
	}

	that.dispatcher.SendTo(connID, EventRoomLeft, RoomPayload{
		Room:   snapshot,
		Player: copyPlayer(player),
	})

	log.Info("player left", "room", room.Code, "player", player.Name, "roomDeleted", deleted)

	return nil
}

// Disconnect handles a dropped connection the same way as an explicit leave,
// minus the addressed farewell nobody is listening for anymore.
func (that *GameManager) Disconnect(_ context.Context, connID string) error {
	log := that.logger.With("method", "Disconnect")

	room, player, deleted := that.registry.RemoveByConn(connID)
	if room == nil {
		return nil
	}

	that.dispatcher.Leave(room.Code, connID)

	if deleted {
		log.Info("room deleted", "room", room.Code)
		return nil
	}

	room.Lock()
	that.abortInterruptedRound(room, player)
	snapshot := room.Snapshot()
	room.Unlock()

	that.dispatcher.Broadcast(room.Code, EventRoomUpdated, RoomPayload{Room: snapshot})

	log.Info("player disconnected", "room", room.Code, "player", player.Name)

	return nil
}

func (that *GameManager) nextRoundDelay() time.Duration {
	return time.Duration(that.conf.NextRoundDelay) * time.Second
}

func copyPlayer(player *entity.Player) *entity.Player {
	if player == nil {
		return nil
	}

	copied := *player
	return &copied
}
