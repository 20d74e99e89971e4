package game

// Player is one seat in a room. PlayerID is the stable identity that survives
// reconnects; ConnectionID is rebound on every (re)connect.
type Player struct {
	ConnectionID string `json:"id"`
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	Team         int    `json:"team"`
	Connected    bool   `json:"connected"`
}
