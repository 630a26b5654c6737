package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/assistant"
	"github.com/wolfsidevstudios/bibleaiaiaiai/internal/auth"
	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	name    string
	send    chan []byte
	done    chan struct{}
	session *assistant.Session
}

// HandleChat upgrades the connection and runs a dedicated assistant
// session for it. The session lives exactly as long as the socket.
func HandleChat(hub *Hub, ai *assistant.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.log.Error("websocket upgrade", "error", err)
			return
		}

		name := c.GetString(auth.CtxNameKey)
		if name == "" {
			name = "Friend"
		}

		cl := &client{
			hub:     hub,
			conn:    conn,
			name:    name,
			send:    make(chan []byte, 256),
			done:    make(chan struct{}),
			session: ai.NewSession(),
		}
		hub.register(cl)

		go cl.readPump()
		go cl.writePump()
	}
}

func (c *client) readPump() {
	defer func() {
		c.session.Close()
		c.hub.unregister <- c.conn
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Error("websocket read", "error", err)
			}
			break
		}

		var req models.ChatRequest
		if err := json.Unmarshal(messageBytes, &req); err != nil {
			c.hub.log.Error("unmarshal chat frame", "error", err)
			continue
		}
		if req.Message == "" {
			continue
		}

		c.reply(req.Message)
	}
}

// reply runs one assistant turn and queues the response frame. Replies go
// through the send channel so the write pump stays the only writer.
func (c *client) reply(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp := models.ChatResponse{Role: "model"}
	answer, err := c.session.Send(ctx, message)
	if err != nil {
		c.hub.log.Error("assistant turn", "error", err)
		resp.Text = "I'm having trouble connecting right now. Please try again in a moment."
	} else {
		switch r := answer.(type) {
		case assistant.PlanReply:
			resp.Plan = &r.Plan
			resp.Text = "I've put together a plan for you: " + r.Plan.Title
		case assistant.TextReply:
			resp.Text = r.Text
		}
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.hub.log.Error("marshal chat frame", "error", err)
		return
	}
	c.trySend(data)
}

// trySend queues a frame for the write pump. The frame is dropped when the
// connection is gone or its outbox is full; send stays open for the
// client's whole life, so a queue attempt racing a hub drop cannot panic.
func (c *client) trySend(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	default:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
