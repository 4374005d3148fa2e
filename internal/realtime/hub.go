package realtime

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Message is the frame broadcast to every connected dashboard.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Hub fans lifecycle events out to connected websocket clients. A
// client whose send buffer is full is dropped rather than allowed to
// stall the broadcast loop.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	logger     *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Infof("Realtime client connected (user %s), %d connected", client.userID, len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Infof("Realtime client disconnected (user %s), %d connected", client.userID, len(h.clients))
			}

		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast satisfies the lifecycle Broadcaster contract. Marshalling
// errors are logged and the frame dropped.
func (h *Hub) Broadcast(event string, data interface{}) {
	frame, err := json.Marshal(Message{
		Type:      event,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		h.logger.Warnf("Failed to marshal realtime frame %s: %v", event, err)
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn("Realtime broadcast buffer full, dropping frame")
	}
}
