package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MatchRecord is the persisted summary of a finished game. Live room state is
// never written to the database; only the final outcome is.
type MatchRecord struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RoomCode    string         `json:"roomCode" gorm:"index;not null"`
	Rounds      int            `json:"rounds" gorm:"not null"`
	Team1Score  int            `json:"team1Score" gorm:"not null"`
	Team2Score  int            `json:"team2Score" gorm:"not null"`
	CardCount   int            `json:"cardCount"`
	Players     datatypes.JSON `json:"players"`
	CompletedAt time.Time      `json:"completedAt"`
}

// MatchPlayer is the shape serialized into MatchRecord.Players.
type MatchPlayer struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Team     int    `json:"team"`
}
