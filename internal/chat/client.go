package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mzaleski/project-hub-api/internal/models"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size permitted from the peer.
	maxFrameSize = 4096

	// Outbound buffer per connection. A full buffer gets the connection
	// evicted by the hub.
	sendBufferSize = 64
)

// Client is one live gateway connection. user is nil for anonymous
// connections, which may hold the socket open but cannot subscribe or send.
type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	user *models.User

	send chan []byte

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, user *models.User) *Client {
	return &Client{
		ID:   uuid.New(),
		hub:  hub,
		conn: conn,
		user: user,
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue offers a payload to the connection's outbound buffer without
// blocking. It reports false when the client is closed or the buffer is full.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Close unsubscribes the client everywhere and tears the connection down.
// Safe to call from any goroutine, any number of times.
func (c *Client) Close() {
	c.once.Do(func() {
		c.hub.UnsubscribeAll(c)

		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// readPump reads inbound frames and hands them to the gateway until the
// connection fails or the peer closes it.
func (c *Client) readPump(g *Gateway) {
	defer c.Close()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		g.dispatch(c, data)
	}
}

// writePump drains the outbound buffer to the socket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
