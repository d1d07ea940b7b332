package entity

import (
	"fmt"
	"sync"

	"github.com/AtulFalle/pictionary/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Round holds the state bound to one drawing cycle. A Room carries a Round
// only while its status is playing; outside a round the pointer is nil, so
// there is no half-meaningful word or drawer to misread.
type Round struct {
	Number    int    `json:"roundNumber"`
	Word      string `json:"word"`
	DrawerID  string `json:"drawerId"`
	TimeLimit int    `json:"timeLimit"`
}

// Room is one isolated game session. All mutation must happen while holding
// the room's lock; different rooms may be mutated in parallel.
type Room struct {
	mu sync.Mutex

	Code           string
	Players        []*Player
	Status         string
	MaxPlayers     int
	TotalRounds    int
	CurrentRound   int
	Round          *Round
	DrawerRotation []string
}

func NewRoom(code string, maxPlayers, totalRounds int) *Room {
	return &Room{
		Code:        code,
		Players:     []*Player{},
		Status:      StatusWaiting,
		MaxPlayers:  maxPlayers,
		TotalRounds: totalRounds,
	}
}

// Lock serializes mutations of this room.
func (that *Room) Lock() { that.mu.Lock() }

// Unlock releases the room for the next action.
func (that *Room) Unlock() { that.mu.Unlock() }

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

func (that *Room) PlayerByConn(connID string) *Player {
	for _, player := range that.Players {
		if player.ConnID == connID {
			return player
		}
	}
	return nil
}

func (that *Room) Host() *Player {
	for _, player := range that.Players {
		if player.IsHost {
			return player
		}
	}
	return nil
}

// Drawer resolves the active round's drawer to a live player.
func (that *Room) Drawer() (*Player, error) {
	if that.Round == nil {
		return nil, apperror.ErrNoActiveRound
	}

	player := that.PlayerByID(that.Round.DrawerID)
	if player == nil {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrDrawerNotFound, that.Round.DrawerID)
	}

	return player, nil
}

// BeginRound moves the room into the playing state and points every player's
// drawer flag at the round's drawer, and only at it.
func (that *Room) BeginRound(round *Round) {
	that.Status = StatusPlaying
	that.CurrentRound = round.Number
	that.Round = round

	for _, player := range that.Players {
		player.IsDrawer = player.ID == round.DrawerID
	}
}

// FinishRound clears the active round and returns the room to waiting, or to
// finished once the configured number of rounds has been played.
func (that *Room) FinishRound() (gameOver bool) {
	that.Round = nil

	for _, player := range that.Players {
		player.IsDrawer = false
	}

	if that.CurrentRound >= that.TotalRounds {
		that.Status = StatusFinished
		return true
	}

	that.Status = StatusWaiting
	return false
}

// TopPlayer picks the winner of a finished game: the highest score, ties
// resolved by join order.
func (that *Room) TopPlayer() *Player {
	var top *Player
	for _, player := range that.Players {
		if top == nil || player.Score > top.Score {
			top = player
		}
	}
	return top
}

// Scores snapshots every player's score keyed by player ID.
func (that *Room) Scores() map[string]int {
	scores := make(map[string]int, len(that.Players))
	for _, player := range that.Players {
		scores[player.ID] = player.Score
	}
	return scores
}

// RemovePlayerByConn drops the player bound to connID and keeps exactly one
// host while the roster is non-empty. Removing an unknown connection is a
// no-op so a repeated leave or disconnect stays idempotent.
func (that *Room) RemovePlayerByConn(connID string) (*Player, bool) {
	for i, player := range that.Players {
		if player.ConnID != connID {
			continue
		}

		that.Players = append(that.Players[:i], that.Players[i+1:]...)

		if player.IsHost && len(that.Players) > 0 {
			that.Players[0].IsHost = true
		}

		return player, true
	}

	return nil, false
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= that.MaxPlayers
}
