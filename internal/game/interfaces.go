package game

import "github.com/partydeck/monikers-server/internal/domain"

// Broadcaster pushes authoritative state to everyone subscribed to a room.
// RoomUpdate carries a full scrubbed snapshot; TimerUpdate is the lightweight
// per-tick countdown value.
type Broadcaster interface {
	RoomUpdate(code string, snap *Snapshot)
	TimerUpdate(code string, remaining int)
}

// Recorder is notified once when a room reaches GAME_OVER.
type Recorder interface {
	MatchCompleted(record *domain.MatchRecord)
}
