package realtime

import (
	"encoding/json"
	"sync"

	"github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

// Envelope is the message frame pushed to dashboard clients.
type Envelope struct {
	Type    string      `json:"type"` // "reading" or "alert"
	Payload interface{} `json:"payload"`
}

// Hub maintains the set of connected dashboard clients and broadcasts
// readings and alerts to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty hub. Run must be started in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes register/unregister/broadcast events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info("Dashboard client connected, %d total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info("Dashboard client disconnected, %d total", count)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow or gone; drop the client.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// RegisterClient registers a new client with the hub.
func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastReading pushes a stored sensor reading to every client.
func (h *Hub) BroadcastReading(reading interface{}) {
	h.send(Envelope{Type: "reading", Payload: reading})
}

// BroadcastAlert pushes a newly raised alert to every client.
func (h *Hub) BroadcastAlert(alert interface{}) {
	h.send(Envelope{Type: "alert", Payload: alert})
}

func (h *Hub) send(env Envelope) {
	message, err := json.Marshal(env)
	if err != nil {
		logger.Error("Failed to marshal %s broadcast: %v", env.Type, err)
		return
	}
	h.broadcast <- message
}
