package usecase

import (
	"context"

	"github.com/AtulFalle/pictionary/internal/entity"
)

// Outbound event names. One explicit payload type exists per event; malformed
// inbound payloads are rejected at the transport edge before they reach here.
const (
	EventRoomCreated   = "room_created"
	EventRoomJoined    = "room_joined"
	EventRoomLeft      = "room_left"
	EventRoomUpdated   = "room_updated"
	EventRoundInfo     = "round_info"
	EventDrawBroadcast = "draw_broadcast"
	EventGuessResult   = "guess_result"
	EventScoreUpdate   = "score_update"
	EventRoundEnd      = "round_end"
	EventNextRound     = "next_round"
	EventError         = "error"
)

// dispatcher carries outbound events to clients and maintains the room-scoped
// broadcast groups. Every call made while a room's lock is held is delivered
// in call order, which is what keeps score_update ahead of round_end on every
// client.
type dispatcher interface {
	Join(roomCode, connID string)
	Leave(roomCode, connID string)
	Broadcast(roomCode, event string, payload any)
	BroadcastExcept(roomCode, exceptConnID, event string, payload any)
	SendTo(connID, event string, payload any)
}

type wordSource interface {
	NextWord() string
}

type scoreRecorder interface {
	RecordAward(ctx context.Context, award *entity.ScoreAward) error
}

// RoomPayload accompanies room_created, room_joined, room_left and
// room_updated.
type RoomPayload struct {
	Room   *entity.RoomSnapshot `json:"room"`
	Player *entity.Player       `json:"player,omitempty"`
}

// RoundInfo describes the round that just started. Word is set only on the
// copy addressed to the drawer.
type RoundInfo struct {
	RoundNumber int            `json:"roundNumber"`
	Drawer      *entity.Player `json:"drawer"`
	TimeLimit   int            `json:"timeLimit"`
	Word        string         `json:"word,omitempty"`
}

type RoundInfoPayload struct {
	RoundInfo RoundInfo `json:"roundInfo"`
	IsDrawer  bool      `json:"isDrawer"`
}

// GuessResultPayload is addressed to the guesser only.
type GuessResultPayload struct {
	IsCorrect  bool   `json:"isCorrect"`
	Guess      string `json:"guess"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}

type ScoreUpdatePayload struct {
	PlayerID     string `json:"playerId"`
	PlayerName   string `json:"playerName"`
	NewScore     int    `json:"newScore"`
	PointsEarned int    `json:"pointsEarned"`
	Reason       string `json:"reason"`
	RoomCode     string `json:"roomCode"`
}

type RoundEndPayload struct {
	CorrectWord string         `json:"correctWord"`
	Winner      *entity.Player `json:"winner"`
	RoundNumber int            `json:"roundNumber"`
	Scores      map[string]int `json:"scores"`
	IsGameOver  bool           `json:"isGameOver"`
	TotalRounds int            `json:"totalRounds"`
	NextDrawer  *entity.Player `json:"nextDrawer,omitempty"`
}

// GameOverPayload is broadcast as next_round when the final round ends.
// Drawer is always null here; the key stays in the frame because clients
// read the same shape for both next_round variants.
type GameOverPayload struct {
	RoundNumber int            `json:"roundNumber"`
	Word        string         `json:"word"`
	TimeLimit   int            `json:"timeLimit"`
	Drawer      *entity.Player `json:"drawer"`
	IsGameOver  bool           `json:"isGameOver"`
	FinalScores map[string]int `json:"finalScores"`
	GameWinner  *entity.Player `json:"gameWinner"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
