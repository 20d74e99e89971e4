package websocket

import (
	"encoding/json"
	"time"

	"github.com/partydeck/monikers-server/internal/domain"
)

type MessageType string

const (
	// Client to Server
	MessageTypeJoinRoom      MessageType = "join_room"
	MessageTypeSwitchTeam    MessageType = "switch_team"
	MessageTypeStartDrafting MessageType = "start_drafting"
	MessageTypeSubmitDraft   MessageType = "submit_draft"
	MessageTypeStartTurn     MessageType = "start_turn"
	MessageTypeDrawCard      MessageType = "draw_card"
	MessageTypePassCard      MessageType = "pass_card"
	MessageTypeScoreCard     MessageType = "score_card"
	MessageTypeLeaveRoom     MessageType = "leave_room"

	// Server to Client
	MessageTypeRoomUpdate  MessageType = "room_update"
	MessageTypeTimerUpdate MessageType = "timer_update"
	MessageTypeError       MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
	PlayerID string `json:"playerId"`
}

type RoomPayload struct {
	RoomCode string `json:"roomCode"`
}

type SubmitDraftPayload struct {
	RoomCode      string        `json:"roomCode"`
	SelectedCards []domain.Card `json:"selectedCards"`
}

type ScoreCardPayload struct {
	RoomCode string `json:"roomCode"`
	Team     int    `json:"team"`
}

// Server to Client payloads

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
