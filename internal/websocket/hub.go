package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/partydeck/monikers-server/internal/game"
)

// Hub tracks connected clients and their room subscriptions, and implements
// game.Broadcaster so the engine can push authoritative state back out.
type Hub struct {
	registry *game.Registry

	mu      sync.RWMutex
	clients map[*Client]bool
	byRoom  map[string]map[*Client]bool
	stopped bool

	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byRoom:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// SetRegistry wires the game registry. Must be called before Run; the hub and
// registry reference each other, so construction happens in two steps.
func (h *Hub) SetRegistry(registry *game.Registry) {
	h.registry = registry
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.byRoom = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.handleUnregister(client)
		}
	}
}

// Stop gracefully shuts down the hub. It blocks until Run has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely unregisters a client, tolerating a stopped hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	default:
		// Hub stopped between check and send - that's ok
	}
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	_, known := h.clients[client]
	roomCode := client.roomCode
	if known {
		delete(h.clients, client)
		h.removeSubscriptionLocked(client)
		client.Close()
	}
	h.mu.Unlock()

	// Transport loss is not a leave: flag the player so reconnection works.
	if known && roomCode != "" {
		if room := h.registry.Get(roomCode); room != nil {
			room.HandleDisconnect(client.connectionID)
		}
	}
}

// handleJoinRoom creates the room if needed and binds the client to it. Join
// never fails on a bad code.
func (h *Hub) handleJoinRoom(client *Client, payload JoinRoomPayload) {
	code := game.NormalizeCode(payload.RoomCode)
	if code == "" {
		client.sendError("INVALID_ROOM_CODE", "Room code is required")
		return
	}

	// The authenticated playerId wins over whatever the payload claims.
	playerID := client.playerID
	if playerID == "" {
		playerID = payload.PlayerID
	}
	if playerID == "" {
		client.sendError("INVALID_PLAYER_ID", "Player id is required")
		return
	}

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.removeSubscriptionLocked(client)
	client.roomCode = code
	if h.byRoom[code] == nil {
		h.byRoom[code] = make(map[*Client]bool)
	}
	h.byRoom[code][client] = true
	h.mu.Unlock()

	h.registry.GetOrCreate(code).Join(payload.Name, playerID, client.connectionID)
	log.Printf("Client %s joined room %s as player %s", client.connectionID, code, playerID)
}

func (h *Hub) handleLeaveRoom(client *Client) {
	h.mu.Lock()
	roomCode := client.roomCode
	h.removeSubscriptionLocked(client)
	h.mu.Unlock()

	if roomCode == "" {
		return
	}
	if room := h.registry.Get(roomCode); room != nil {
		room.Leave(client.connectionID)
	}
}

// removeSubscriptionLocked drops the client's room subscription. Caller must
// hold h.mu.
func (h *Hub) removeSubscriptionLocked(client *Client) {
	if client.roomCode == "" {
		return
	}
	if subs := h.byRoom[client.roomCode]; subs != nil {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.byRoom, client.roomCode)
		}
	}
	client.roomCode = ""
}

// room looks up an existing room for an action payload. Missing rooms are
// silent no-ops, matching the engine's error model.
func (h *Hub) room(code string) *game.Room {
	return h.registry.Get(code)
}

// RoomUpdate implements game.Broadcaster.
func (h *Hub) RoomUpdate(code string, snap *game.Snapshot) {
	msg, err := NewMessage(MessageTypeRoomUpdate, snap)
	if err != nil {
		log.Printf("failed to build room_update: %v", err)
		return
	}
	h.fanout(code, msg)
}

// TimerUpdate implements game.Broadcaster. The payload is the bare number of
// seconds remaining.
func (h *Hub) TimerUpdate(code string, remaining int) {
	msg, err := NewMessage(MessageTypeTimerUpdate, remaining)
	if err != nil {
		return
	}
	h.fanout(code, msg)
}

func (h *Hub) fanout(code string, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.byRoom[code] {
		h.trySend(client, data)
	}
}

// trySend attempts to send to a client, safely handling closed channels
func (h *Hub) trySend(client *Client, data []byte) {
	defer func() {
		if recover() != nil {
			// Channel closed, client is disconnecting - skip silently
		}
	}()

	select {
	case client.send <- data:
	default:
		// Buffer full, skip
	}
}
