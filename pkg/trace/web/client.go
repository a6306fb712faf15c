package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait is the time allowed to write a message to a client.
const writeWait = 10 * time.Second

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   uint8

	remoteAddr  string
	userAgent   string
	connectedAt time.Time
}

func newClient(h *Hub, conn *websocket.Conn, r *http.Request) *client {
	return &client{
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, 256),
		remoteAddr:  r.RemoteAddr,
		userAgent:   r.Header.Get("User-Agent"),
		connectedAt: time.Now(),
	}
}

// readPump reads from the client until it closes the connection or
// sends Closing. Anything else a client sends is ignored.
func (c *client) readPump() {
	defer func() {
		c.hub.unregisterClient(c)
		_ = c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) > 0 && message[0] == Closing {
			return
		}
	}
}

// writePump writes every message sent by the hub to the client,
// until the hub closes the send channel.
func (c *client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			c.hub.unregisterClient(c)
			return
		}
	}

	// hub closed the channel
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
