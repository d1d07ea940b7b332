package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub owns the live connections and the room-scoped broadcast groups. It is
// pure delivery: it never inspects payloads or touches game state, so its
// lock is safe to take while a room's lock is held.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client            // connID -> client
	rooms   map[string]map[string]*Client // roomCode -> connID -> client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

func (that *Hub) register(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client.id] = client
}

// unregister drops the connection and closes its send channel. The close
// happens under the write lock, and every send path enqueues under a read
// lock, so no frame can be enqueued after the channel is closed.
func (that *Hub) unregister(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	client, ok := that.clients[connID]
	if !ok {
		return
	}

	delete(that.clients, connID)
	for code, group := range that.rooms {
		delete(group, connID)
		if len(group) == 0 {
			delete(that.rooms, code)
		}
	}

	close(client.send)
}

// Join adds the connection to a room's broadcast group.
func (that *Hub) Join(roomCode, connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	client, ok := that.clients[connID]
	if !ok {
		return
	}

	group, ok := that.rooms[roomCode]
	if !ok {
		group = make(map[string]*Client)
		that.rooms[roomCode] = group
	}
	group[connID] = client
}

// Leave removes the connection from a room's broadcast group.
func (that *Hub) Leave(roomCode, connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	group, ok := that.rooms[roomCode]
	if !ok {
		return
	}

	delete(group, connID)
	if len(group) == 0 {
		delete(that.rooms, roomCode)
	}
}

// Broadcast delivers an event to every connection in the room.
func (that *Hub) Broadcast(roomCode, event string, payload any) {
	that.send(roomCode, "", event, payload)
}

// BroadcastExcept delivers an event to every connection in the room but the
// named one. Draw relays use it to avoid echoing strokes back to the drawer.
func (that *Hub) BroadcastExcept(roomCode, exceptConnID, event string, payload any) {
	that.send(roomCode, exceptConnID, event, payload)
}

// SendTo delivers an event to a single connection. The read lock is held
// across the enqueue so teardown cannot close the channel mid-send.
func (that *Hub) SendTo(connID, event string, payload any) {
	frame, err := that.marshal(event, payload)
	if err != nil {
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	if client, ok := that.clients[connID]; ok {
		client.enqueue(frame)
	}
}

func (that *Hub) send(roomCode, exceptConnID, event string, payload any) {
	frame, err := that.marshal(event, payload)
	if err != nil {
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for connID, client := range that.rooms[roomCode] {
		if connID == exceptConnID {
			continue
		}
		client.enqueue(frame)
	}
}

// marshal serializes the envelope once per emission, so every recipient in a
// broadcast and every later send observes the same bytes in emission order.
func (that *Hub) marshal(event string, payload any) ([]byte, error) {
	frame, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		that.logger.Error("failed to marshal event", "event", event, "error", err)
		return nil, err
	}

	return frame, nil
}
