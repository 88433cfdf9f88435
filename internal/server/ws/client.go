package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// MessageHandler is a function that handles incoming client messages.
type MessageHandler func(clientID string, message []byte)

// Client represents one connected editor.
//
// Thread safety: Send() may be called from any goroutine; Close() is safe
// to call multiple times.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	handler MessageHandler
	onClose func(id string)

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new client around an upgraded connection.
func NewClient(conn *websocket.Conn, handler MessageHandler, onClose func(id string)) *Client {
	return &Client{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		handler: handler,
		onClose: onClose,
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Start starts the client's read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// Send queues a message to be sent to the client.
func (c *Client) Send(message []byte) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	select {
	case c.send <- message:
	default:
		// Channel full, client is too slow
		log.Warn().Str("client_id", c.id).Msg("client send channel full, dropping message")
	}
}

// Close closes the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
}

// readPump pumps messages from the WebSocket connection to the handler.
func (c *Client) readPump() {
	defer func() {
		c.Close()
		_ = c.conn.Close()
		if c.onClose != nil {
			c.onClose(c.id)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("websocket read error")
			}
			return
		}

		if c.handler != nil {
			c.handler(c.id, message)
		}
	}
}

// writePump pumps messages from the send channel to the WebSocket
// connection. Each message goes out as its own frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return

		case message, ok := <-c.send:
			if !ok {
				return
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Msg("write error")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Msg("ping error")
				return
			}
		}
	}
}
