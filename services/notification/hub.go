package notification

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event names pushed to staff clients.
const (
	EventNewOrder           = "newOrder"
	EventOrderStatusUpdated = "orderStatusUpdated"
)

const writeWait = 10 * time.Second

// Publisher pushes an event to every connected staff client.
type Publisher interface {
	Publish(event string, payload any)
}

// Message is the wire format of a pushed event.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	RemoteAddr() net.Addr
	Close() error
}

// Hub keeps the open staff websocket connections and fans events out to them.
type Hub struct {
	clients   map[Conn]bool
	broadcast chan []byte
	mutex     sync.RWMutex
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:   make(map[Conn]bool),
		broadcast: make(chan []byte, 256),
		logger:    logger,
	}
}

// Run delivers queued messages until ctx is cancelled, then closes every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// deliver writes to a snapshot of the clients; the lock is never held across
// a write. Run is the only writer.
func (h *Hub) deliver(msg []byte) {
	h.mutex.RLock()
	clients := make([]Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mutex.RUnlock()

	var failed []Conn
	for _, client := range clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, msg); err != nil {
			failed = append(failed, client)
		}
	}

	for _, client := range failed {
		h.logger.Debug("dropping websocket client after failed write", zap.String("remote", client.RemoteAddr().String()))
		h.RemoveClient(client)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

func (h *Hub) AddClient(conn Conn) {
	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
}

// RemoveClient forgets and closes conn. Safe to call more than once.
func (h *Hub) RemoveClient(conn Conn) {
	h.mutex.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mutex.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Publish queues an event for broadcast. It never blocks: when the queue is
// full the event is dropped and logged.
func (h *Hub) Publish(event string, payload any) {
	msg, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("event queue full, dropping event", zap.String("event", event))
	}
}
