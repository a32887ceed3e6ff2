package orderControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventOrderCreated = "order.created"
	EventOrderStatus  = "order.status"

	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Event is what subscribers receive.
type Event struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// subscriber owns one socket. Only its writer goroutine writes data frames.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans order events out to connected admin dashboards.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*subscriber]struct{}),
	}
}

// Handler upgrades the request and keeps the connection registered until the
// client goes away. Incoming messages are ignored.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}
		sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
		h.add(sub)
		defer h.remove(sub)
		go h.writeLoop(sub)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func (h *Hub) writeLoop(sub *subscriber) {
	for data := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(sub)
			return
		}
	}
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	h.clients[sub] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	h.dropLocked(sub)
	h.mu.Unlock()
}

// dropLocked unregisters sub once; h.mu must be held.
func (h *Hub) dropLocked(sub *subscriber) {
	if _, ok := h.clients[sub]; !ok {
		return
	}
	delete(h.clients, sub)
	close(sub.send)
	_ = sub.conn.Close()
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues event for every subscriber and never waits on the network.
// A subscriber whose queue is full is disconnected.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to encode order event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.clients {
		select {
		case sub.send <- data:
		default:
			log.Printf("⚠️ Dropping slow order feed subscriber %s", sub.conn.RemoteAddr())
			h.dropLocked(sub)
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.clients {
		_ = sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		h.dropLocked(sub)
	}
}
