package realtime

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventType names the build-job lifecycle events a tournament's room is
// pushed as its async structure/scheduling job progresses.
type EventType string

const (
	EventStructureBuilt    EventType = "STRUCTURE_BUILT"
	EventMatchesScheduled  EventType = "MATCHES_SCHEDULED"
	EventBuildFailed       EventType = "BUILD_FAILED"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one websocket connection subscribed to a single tournament room.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	IsClosed bool
	Mu       sync.Mutex
}

// Message is the envelope broadcast to a room: a build-job lifecycle event
// for the tournament that owns the room.
type Message struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Hub fans out build-job lifecycle events to every client watching a
// tournament's bracket page, one room per tournament id. Adapted from the
// teacher's websocket hub: same register/unregister/broadcast goroutine
// loop, generalized from match-result rooms to tournament build-job rooms.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run drives the hub's single event loop. Call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.clients[client] = true
			h.logger.Info("client registered", slog.String("room", client.Room), slog.Int("room_size", len(h.rooms[client.Room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; ok {
				if _, ok := h.rooms[client.Room][client]; ok {
					client.Mu.Lock()
					if !client.IsClosed {
						close(client.Send)
						client.IsClosed = true
					}
					client.Mu.Unlock()
					delete(h.rooms[client.Room], client)
					delete(h.clients, client)
					if len(h.rooms[client.Room]) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.Mu.Lock()
				if !client.IsClosed {
					select {
					case client.Send <- message:
					default:
					}
				}
				client.Mu.Unlock()
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastToRoom pushes an event to every client watching one tournament.
func (h *Hub) BroadcastToRoom(tournamentID int, eventType EventType, payload interface{}) {
	roomID := strconv.Itoa(tournamentID)
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	body, err := json.Marshal(Message{Type: eventType, Payload: payload, RoomID: roomID})
	if err != nil {
		h.logger.Error("marshal broadcast message", slog.Any("error", err))
		return
	}

	for client := range roomClients {
		client.Mu.Lock()
		if !client.IsClosed {
			select {
			case client.Send <- body:
			default:
				h.logger.Warn("client send buffer full, dropping event", slog.String("room", roomID))
			}
		}
		client.Mu.Unlock()
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
