package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"
	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/game"
	"github.com/partydeck/monikers-server/internal/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var msg websocket.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.messages <- &msg:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// Send marshals and writes a raw message envelope to the server
func (c *WSClient) Send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()
	c.send(msgType, payload)
}

// send marshals and writes a message envelope to the server
func (c *WSClient) send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build %s message: %v", msgType, err)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal %s message: %v", msgType, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
		c.t.Fatalf("failed to send %s message: %v", msgType, err)
	}
}

// JoinRoom sends a join_room event
func (c *WSClient) JoinRoom(roomCode, name, playerID string) {
	c.send(websocket.MessageTypeJoinRoom, websocket.JoinRoomPayload{
		RoomCode: roomCode,
		Name:     name,
		PlayerID: playerID,
	})
}

// SwitchTeam sends a switch_team event
func (c *WSClient) SwitchTeam(roomCode string) {
	c.send(websocket.MessageTypeSwitchTeam, websocket.RoomPayload{RoomCode: roomCode})
}

// StartDrafting sends a start_drafting event
func (c *WSClient) StartDrafting(roomCode string) {
	c.send(websocket.MessageTypeStartDrafting, websocket.RoomPayload{RoomCode: roomCode})
}

// SubmitDraft sends a submit_draft event with the selected cards
func (c *WSClient) SubmitDraft(roomCode string, cards []domain.Card) {
	c.send(websocket.MessageTypeSubmitDraft, websocket.SubmitDraftPayload{
		RoomCode:      roomCode,
		SelectedCards: cards,
	})
}

// StartTurn sends a start_turn event
func (c *WSClient) StartTurn(roomCode string) {
	c.send(websocket.MessageTypeStartTurn, websocket.RoomPayload{RoomCode: roomCode})
}

// DrawCard sends a draw_card event
func (c *WSClient) DrawCard(roomCode string) {
	c.send(websocket.MessageTypeDrawCard, websocket.RoomPayload{RoomCode: roomCode})
}

// PassCard sends a pass_card event
func (c *WSClient) PassCard(roomCode string) {
	c.send(websocket.MessageTypePassCard, websocket.RoomPayload{RoomCode: roomCode})
}

// ScoreCard sends a score_card event awarding the current card to a team
func (c *WSClient) ScoreCard(roomCode string, team int) {
	c.send(websocket.MessageTypeScoreCard, websocket.ScoreCardPayload{
		RoomCode: roomCode,
		Team:     team,
	})
}

// LeaveRoom sends a leave_room event
func (c *WSClient) LeaveRoom(roomCode string) {
	c.send(websocket.MessageTypeLeaveRoom, websocket.RoomPayload{RoomCode: roomCode})
}

// ExpectMessage waits for a message of the specified type, discarding others
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
				return nil
			}
			if msg.Type == msgType {
				return msg
			}
		case err := <-c.errors:
			c.t.Fatalf("websocket error while waiting for %s: %v", msgType, err)
			return nil
		case <-deadline:
			c.t.Fatalf("timeout waiting for %s message", msgType)
			return nil
		}
	}
}

// ExpectRoomUpdate waits for and decodes a room_update message
func (c *WSClient) ExpectRoomUpdate(timeout time.Duration) *game.Snapshot {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeRoomUpdate, timeout)
	var snap game.Snapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		c.t.Fatalf("failed to decode room_update payload: %v", err)
	}
	return &snap
}

// ExpectRoomUpdateWhere waits for a room_update matching the predicate,
// discarding updates that do not match yet
func (c *WSClient) ExpectRoomUpdateWhere(timeout time.Duration, match func(*game.Snapshot) bool) *game.Snapshot {
	c.t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			c.t.Fatalf("timeout waiting for matching room_update")
			return nil
		}
		snap := c.ExpectRoomUpdate(remaining)
		if match(snap) {
			return snap
		}
	}
}

// ExpectTimerUpdate waits for and decodes a timer_update message
func (c *WSClient) ExpectTimerUpdate(timeout time.Duration) int {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeTimerUpdate, timeout)
	var remaining int
	if err := json.Unmarshal(msg.Payload, &remaining); err != nil {
		c.t.Fatalf("failed to decode timer_update payload: %v", err)
	}
	return remaining
}

// ExpectError waits for and decodes an error message
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeError, timeout)
	var payload websocket.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode error payload: %v", err)
	}
	return &payload
}

// ExpectNoMessage verifies no messages are received within timeout
func (c *WSClient) ExpectNoMessage(timeout time.Duration) {
	c.t.Helper()

	select {
	case msg, ok := <-c.messages:
		if ok {
			c.t.Fatalf("expected no message, got %s", msg.Type)
		}
	case <-time.After(timeout):
	}
}

// DrainMessages discards everything currently buffered
func (c *WSClient) DrainMessages() {
	for {
		select {
		case <-c.messages:
		default:
			return
		}
	}
}
