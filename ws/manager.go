package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long one stalled subscriber can hold up a
// broadcast; connections that miss it are dropped like any other
// failed write.
const writeWait = 5 * time.Second

// Manager keeps track of dashboard websocket subscribers and fans
// reading events out to all of them.
type Manager struct {
	mu      sync.RWMutex
	nextID  uint64
	clients map[uint64]*websocket.Conn
}

func NewManager() *Manager {
	return &Manager{clients: make(map[uint64]*websocket.Conn)}
}

// Register adds a subscriber and returns its handle for Unregister.
func (m *Manager) Register(conn *websocket.Conn) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.clients[id] = conn
	return id
}

// Unregister removes and closes a subscriber connection.
func (m *Manager) Unregister(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.clients[id]; ok {
		_ = conn.Close()
		delete(m.clients, id)
	}
}

// Broadcast sends a text message to every subscriber. Connections that
// fail to write are dropped.
func (m *Manager) Broadcast(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, conn := range m.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = conn.Close()
			delete(m.clients, id)
		}
	}
}

// Count returns the number of connected subscribers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
