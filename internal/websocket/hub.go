// Package websocket carries the live surface: a per-connection assistant
// chat and broadcast notifications when someone publishes a clip.
package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/logger"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// Hub tracks live connections and fans community events out to them.
type Hub struct {
	log *logger.Logger

	mu         sync.Mutex
	clients    map[*websocket.Conn]*client
	broadcast  chan models.ChatResponse
	unregister chan *websocket.Conn
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*websocket.Conn]*client),
		broadcast:  make(chan models.ChatResponse),
		unregister: make(chan *websocket.Conn),
	}
}

// ClipPublished notifies every connected client that a new community clip
// is live.
func (h *Hub) ClipPublished(clip models.CommunityClip) {
	h.broadcast <- models.ChatResponse{
		Role:  "system",
		Event: "clip_published",
		Text:  clip.VerseReference,
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.conn] = cl
	h.mu.Unlock()
	h.log.Info("client connected", "name", cl.name)
}

// drop signals the client's pumps through its done channel and closes the
// socket. The send channel is never closed here: the read pump may still
// be mid-turn and about to queue a reply, so shutdown is signalled on
// done, the one channel only the hub closes. Safe to call twice for the
// same connection.
func (h *Hub) drop(conn *websocket.Conn) {
	cl, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(cl.done)
	conn.Close()
	h.log.Info("client disconnected", "name", cl.name)
}

// Run handles disconnects and broadcasting. It never returns.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.unregister:
			h.mu.Lock()
			h.drop(conn)
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Error("marshal event", "error", err)
				continue
			}
			h.mu.Lock()
			for conn, cl := range h.clients {
				select {
				case cl.send <- data:
				default:
					// slow consumer, cut it loose
					h.drop(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}
