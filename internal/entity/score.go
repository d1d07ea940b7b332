package entity

import "time"

// ScoreAward is one history entry of points earned by a correct guess.
type ScoreAward struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	RoomCode   string    `json:"roomCode"`
	Round      int       `json:"round"`
	Word       string    `json:"word"`
	Points     int       `json:"points"`
	Total      int       `json:"total"`
	AwardedAt  time.Time `json:"awardedAt"`
}
