package registry

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/AtulFalle/pictionary/internal/apperror"
	"github.com/AtulFalle/pictionary/internal/entity"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Registry owns the map of live rooms and is the only way to create, find or
// tear them down. The registry lock covers the map itself; each room carries
// its own lock for state mutation.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*entity.Room),
	}
}

// CreateRoom allocates a room with a code unique among live rooms and seats
// the creator as its host.
func (that *Registry) CreateRoom(hostName, connID string, maxPlayers, totalRounds int) (*entity.Room, *entity.Player) {
	host := &entity.Player{
		ID:     uuid.NewString(),
		Name:   hostName,
		ConnID: connID,
		IsHost: true,
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	code := that.generateCode()
	room := entity.NewRoom(code, maxPlayers, totalRounds)
	room.Players = append(room.Players, host)

	that.rooms[code] = room

	return room, host
}

// JoinRoom adds a player to a waiting room that still has a seat.
func (that *Registry) JoinRoom(code, playerName, connID string) (*entity.Room, *entity.Player, error) {
	that.mu.RLock()
	room, ok := that.rooms[strings.ToUpper(code)]
	that.mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	room.Lock()
	defer room.Unlock()

	if room.IsFull() {
		return nil, nil, apperror.ErrRoomFull
	}

	if !room.IsWaiting() {
		return nil, nil, apperror.ErrRoomNotJoinable
	}

	player := &entity.Player{
		ID:     uuid.NewString(),
		Name:   playerName,
		ConnID: connID,
	}
	room.Players = append(room.Players, player)

	return room, player, nil
}

// FindByCode returns the live room with the given code.
func (that *Registry) FindByCode(code string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return room, nil
}

// FindByConn returns the room the connection currently sits in, if any.
// A connection belongs to at most one room at a time.
func (that *Registry) FindByConn(connID string) *entity.Room {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, room := range that.rooms {
		room.Lock()
		player := room.PlayerByConn(connID)
		room.Unlock()

		if player != nil {
			return room
		}
	}

	return nil
}

// RemoveByConn takes the connection's player out of whatever room it sits in.
// The room is deleted the instant its roster empties; otherwise host duty
// falls to the first remaining player. Removing a connection that is in no
// room is a no-op, which keeps a repeated leave or disconnect harmless.
func (that *Registry) RemoveByConn(connID string) (room *entity.Room, player *entity.Player, deleted bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for code, candidate := range that.rooms {
		candidate.Lock()
		removed, ok := candidate.RemovePlayerByConn(connID)
		empty := candidate.IsEmpty()
		candidate.Unlock()

		if !ok {
			continue
		}

		if empty {
			delete(that.rooms, code)
		}

		return candidate, removed, empty
	}

	return nil, nil, false
}

// Len reports how many rooms are live.
func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}

// generateCode retries until it finds a code no live room holds. Callers must
// hold the registry lock, which makes the check-and-claim atomic.
func (that *Registry) generateCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))] //nolint: gosec // it's ok
		}

		code := string(b)
		if _, taken := that.rooms[code]; !taken {
			return code
		}
	}
}
