package entity

// Player is a member of a room. ConnID is the transport connection handle
// used for addressed delivery; it never leaves the server.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ConnID   string `json:"-"`
	IsHost   bool   `json:"isHost"`
	IsDrawer bool   `json:"isDrawer"`
	Score    int    `json:"score"`
}
