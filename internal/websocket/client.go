package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is one websocket connection. connectionID is the transient identity
// rebound on every connect; playerID is the stable identity from the session
// token.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	connectionID string
	playerID     string
	roomCode     string // guarded by hub.mu

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, connectionID, playerID string) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, 256),
		connectionID: connectionID,
		playerID:     playerID,
	}
}

// Close shuts the outbound channel. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("failed to unmarshal message: %v", err)
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeJoinRoom:
		var payload JoinRoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid join room payload")
			return
		}
		c.hub.handleJoinRoom(c, payload)

	case MessageTypeSwitchTeam:
		var payload RoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid switch team payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.SwitchTeam(c.connectionID)
		}

	case MessageTypeStartDrafting:
		var payload RoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid start drafting payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.StartDrafting()
		}

	case MessageTypeSubmitDraft:
		var payload SubmitDraftPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid submit draft payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.SubmitDraft(c.playerID, payload.SelectedCards)
		}

	case MessageTypeStartTurn:
		var payload RoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid start turn payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.StartTurn(c.connectionID)
		}

	case MessageTypeDrawCard:
		var payload RoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid draw card payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.DrawCard()
		}

	case MessageTypePassCard:
		var payload RoomPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid pass card payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.PassCard()
		}

	case MessageTypeScoreCard:
		var payload ScoreCardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid score card payload")
			return
		}
		if room := c.hub.room(payload.RoomCode); room != nil {
			room.ScoreCard(payload.Team)
		}

	case MessageTypeLeaveRoom:
		c.hub.handleLeaveRoom(c)
	}
}

func (c *Client) sendError(code, message string) {
	msg, _ := NewMessage(MessageTypeError, ErrorPayload{
		Code:    code,
		Message: message,
	})
	data, _ := json.Marshal(msg)

	select {
	case c.send <- data:
	default:
	}
}
