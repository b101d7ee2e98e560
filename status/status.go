// Package status broadcasts command results to websocket clients.
package status

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mogaika/meshcat_client/logger"
	"github.com/mogaika/meshcat_client/transport"
)

const (
	INFO = iota
	ERROR
)

const (
	pingPeriod   = 30 * time.Second
	writeTimeout = 40 * time.Second
)

type Status struct {
	Message     string
	Time        time.Time
	Type        int
	RequestType string `json:",omitempty"`
	Path        string `json:",omitempty"`
	DurationMs  float64
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.remove(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Component("status").Debugf("ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Component("status").Debugf("ws write ping error: %v", err)
				return
			}
		}
	}
}

// readPump drops everything the client sends and notices disconnects.
func (c *client) readPump() {
	defer c.hub.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub keeps the connected clients. New clients get the last status right
// away. Clients too slow to keep up miss messages instead of blocking the
// sender.
type Hub struct {
	lock        sync.Mutex
	clients     map[*client]bool
	lastMessage []byte
	upgrader    websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Component("status").Warnf("ws upgrade error: %v", err)
		return
	}
	h.NewClient(conn)
}

func (h *Hub) NewClient(conn *websocket.Conn) {
	c := &client{hub: h, conn: conn, send: make(chan []byte, 32)}

	h.lock.Lock()
	h.clients[c] = true
	if h.lastMessage != nil {
		c.send <- h.lastMessage
	}
	h.lock.Unlock()

	go c.writePump()
	go c.readPump()
}

// remove closes the send channel of c once, which ends its writePump.
func (h *Hub) remove(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(s Status) {
	data, err := json.Marshal(s)
	if err != nil {
		logger.Component("status").Errorf("Failed to marshal status: %v", err)
		return
	}

	h.lock.Lock()
	defer h.lock.Unlock()
	h.lastMessage = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Observe makes Hub a transport.Observer.
func (h *Hub) Observe(r transport.Report) {
	s := Status{
		Time:        time.Now(),
		Type:        INFO,
		RequestType: r.RequestType,
		Path:        r.Path,
		DurationMs:  float64(r.Duration) / float64(time.Millisecond),
		Message:     r.Ack,
	}
	if r.Err != nil {
		s.Type = ERROR
		s.Message = r.Err.Error()
	}
	h.Broadcast(s)
}

func (h *Hub) Info(msg string) {
	h.Broadcast(Status{Message: msg, Time: time.Now(), Type: INFO})
}

func (h *Hub) Error(msg string) {
	h.Broadcast(Status{Message: msg, Time: time.Now(), Type: ERROR})
}
