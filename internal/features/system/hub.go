package system

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event is the frame pushed to every connected client.
type Event struct {
	Name string      `json:"olay"`
	Data interface{} `json:"veri"`
}

// Hub fans domain events out to websocket subscribers. Writers that
// fail are dropped on the spot.
type Hub struct {
	Logger *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Publish broadcasts an event to all connected clients.
func (h *Hub) Publish(event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	frame := Event{Name: event, Data: payload}
	for conn := range h.clients {
		if err := conn.WriteJSON(frame); err != nil {
			h.Logger.Warn("dropping websocket client", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
