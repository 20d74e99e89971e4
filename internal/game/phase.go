package game

// Phase is the lifecycle stage of a room. Phases only move forward; a room
// never returns to the lobby once drafting has begun.
type Phase string

const (
	PhaseLobby    Phase = "LOBBY"
	PhaseDrafting Phase = "DRAFTING"
	PhaseGame     Phase = "GAME"
	PhaseGameOver Phase = "GAME_OVER"
)
