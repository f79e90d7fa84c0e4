package streaming

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub fans a snapshot out to every connected websocket client. Clients
// that cannot keep up are dropped rather than allowed to stall the
// broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	// lastSnapshot is replayed to clients that connect between broadcasts.
	lastSnapshot []byte
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

const clientBuffer = 8

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Register attaches a connection to the hub and starts its write pump.
// The call blocks until the connection drops.
func (h *Hub) Register(conn *websocket.Conn) {
	c := &client{
		conn: conn,
		send: make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.lastSnapshot != nil {
		c.send <- h.lastSnapshot
	}
	h.mu.Unlock()

	logrus.WithField("clients", h.ClientCount()).Debug("Stream client connected")

	go c.writePump()
	c.readPump()

	h.unregister(c)
}

// Broadcast replaces the stored snapshot and pushes it to every client.
// A client with a full buffer only misses intermediate snapshots; the
// latest one is always queued.
func (h *Hub) Broadcast(snapshot []byte) {
	h.mu.Lock()
	h.lastSnapshot = snapshot
	for c := range h.clients {
		select {
		case c.send <- snapshot:
		default:
			// Drain one stale snapshot to make room for the fresh one.
			select {
			case <-c.send:
			default:
			}
			select {
			case c.send <- snapshot:
			default:
			}
		}
	}
	h.mu.Unlock()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	logrus.WithField("clients", h.ClientCount()).Debug("Stream client disconnected")
}

// readPump discards inbound frames; the stream is one-way. It returns
// when the peer closes the connection.
func (c *client) readPump() {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for snapshot := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
