package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const sendBufferSize = 16

type client struct {
	sessionID string
	send      chan []byte
}

// Hub tracks the open connections of every session and fans snapshots out to them.
type Hub struct {
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "websocket_hub"),
		sessions: make(map[string]map[*client]struct{}),
	}
}

func (that *Hub) register(sessionID string) *client {
	c := &client{
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sessions[sessionID] == nil {
		that.sessions[sessionID] = make(map[*client]struct{})
	}
	that.sessions[sessionID][c] = struct{}{}

	return c
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients, ok := that.sessions[c.sessionID]
	if !ok {
		return
	}

	if _, ok = clients[c]; !ok {
		return
	}

	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(that.sessions, c.sessionID)
	}
}

// Publish sends the snapshot to every connection of the session. Connections
// whose buffer is full miss the update.
func (that *Hub) Publish(sessionID string, snapshot entity.Snapshot) {
	log := that.logger.With("method", "Publish", "session", sessionID)

	message, err := encodeMessage(actionState, gamePayload(snapshot))
	if err != nil {
		log.Error("failed to marshal snapshot", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for c := range that.sessions[sessionID] {
		select {
		case c.send <- message:
		default:
			log.Warn("client is too slow, dropping update")
		}
	}
}

// enqueue sends a message to one connection only.
func (that *Hub) enqueue(c *client, message []byte) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if _, ok := that.sessions[c.sessionID][c]; !ok {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (that *Hub) Connections(sessionID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions[sessionID])
}
