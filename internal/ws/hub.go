package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message is the wire envelope for every event on the channel.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	mu   sync.Mutex // serializes writes to the conn
	conn *websocket.Conn
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks connections by id and groups them into named rooms. A room is
// just a set of connection ids; broadcast iterates the set, private emit is
// a direct lookup.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]struct{}),
	}
}

// Register adds a connection under the given id.
func (h *Hub) Register(connID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[connID] = &client{conn: conn}
	log.Debug().Str("conn", connID).Int("total", len(h.clients)).Msg("client connected")
}

// Unregister removes a connection from every room and closes it.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	for room, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	c.conn.Close()
	log.Debug().Str("conn", connID).Msg("client disconnected")
}

// Join subscribes a connection to a room's broadcasts.
func (h *Hub) Join(room, connID string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]struct{})
	}
	h.rooms[room][connID] = struct{}{}
}

// Leave removes a connection from a room.
func (h *Hub) Leave(room, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Emit sends privately to one connection.
func (h *Hub) Emit(connID, event string, data any) {
	payload, err := marshal(event, data)
	if err != nil {
		return
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := c.send(payload); err != nil {
		log.Warn().Err(err).Str("conn", connID).Msg("write failed")
	}
}

// Broadcast sends to every member of a room.
func (h *Hub) Broadcast(room, event string, data any) {
	h.BroadcastExcept(room, "", event, data)
}

// BroadcastExcept sends to every room member but the named connection.
func (h *Hub) BroadcastExcept(room, exceptID, event string, data any) {
	payload, err := marshal(event, data)
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.rooms[room]))
	for connID := range h.rooms[room] {
		if connID == exceptID {
			continue
		}
		if c, ok := h.clients[connID]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(payload); err != nil {
			log.Warn().Err(err).Str("room", room).Msg("broadcast write failed")
		}
	}
}

func marshal(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("marshal error")
		return nil, err
	}
	return payload, nil
}
