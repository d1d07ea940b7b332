package entity

// RoomSnapshot is the public view of a room sent to clients. The secret word
// never appears here; round_info delivers it to the drawer alone.
type RoomSnapshot struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Players         []*Player `json:"players"`
	Status          string    `json:"status"`
	MaxPlayers      int       `json:"maxPlayers"`
	TotalRounds     int       `json:"totalRounds"`
	CurrentRound    int       `json:"currentRound"`
	CurrentDrawerID string    `json:"currentDrawer,omitempty"`
	RoundTime       int       `json:"roundTime,omitempty"`
}

// Snapshot copies the room's public state. Players are copied by value so the
// snapshot can be marshaled after the room lock is released.
func (that *Room) Snapshot() *RoomSnapshot {
	players := make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		copied := *player
		players = append(players, &copied)
	}

	snapshot := &RoomSnapshot{
		ID:           that.Code,
		Code:         that.Code,
		Players:      players,
		Status:       that.Status,
		MaxPlayers:   that.MaxPlayers,
		TotalRounds:  that.TotalRounds,
		CurrentRound: that.CurrentRound,
	}

	if that.Round != nil {
		snapshot.CurrentDrawerID = that.Round.DrawerID
		snapshot.RoundTime = that.Round.TimeLimit
	}

	return snapshot
}
