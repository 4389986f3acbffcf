package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Event is the wire shape pushed to subscribed monitoring clients.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub fans events out to connected counselor dashboards. It satisfies the
// services.Emitter interface.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// Dashboards run on a separate origin in dev
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Emit broadcasts an event to every connected client. Slow or dead clients
// are dropped; a broadcast failure never propagates to the caller.
func (h *Hub) Emit(event string, payload interface{}) {
	msg, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		log.Printf("[Socket] Marshal error for %s: %v", event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[Socket] Dropping client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of subscribed dashboards.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the connection registered until the
// client goes away.
func (h *Hub) ServeWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[Socket] Upgrade error: %v", err)
			return
		}

		h.mu.Lock()
		h.clients[conn] = struct{}{}
		h.mu.Unlock()
		log.Printf("[Socket] Client connected: %s", conn.RemoteAddr())

		// Reader loop only detects closure; clients never send commands.
		go func() {
			defer func() {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				conn.Close()
				log.Printf("[Socket] Client disconnected: %s", conn.RemoteAddr())
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
