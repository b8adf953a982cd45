package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"tradingai-demo/internal/monitoring"
	"tradingai-demo/internal/session"
)

const (
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

// Message is the envelope written to clients.
type Message struct {
	Type string            `json:"type"` // "snapshot"
	Data *session.Snapshot `json:"data,omitempty"`
}

// Request is what clients may send. The only action is "snapshot", which
// asks for the current state immediately.
type Request struct {
	Action string `json:"action"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// enqueue never blocks; a full buffer drops the message.
func (c *client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Gateway pushes session snapshots to websocket clients.
type Gateway struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]string
}

// NewGateway accepts upgrades from the same origins the HTTP API allows.
// Requests without an Origin header are not from a browser and are accepted.
func NewGateway(allowedOrigins []string) *Gateway {
	policy := cors.New(cors.Options{AllowedOrigins: allowedOrigins})
	return &Gateway{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return r.Header.Get("Origin") == "" || policy.OriginAllowed(r)
			},
		},
		clients: make(map[*client]string),
	}
}

// Count is the number of connected clients.
func (g *Gateway) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// Serve upgrades the request and streams s until the client disconnects or
// the session is unmounted.
func (g *Gateway) Serve(w http.ResponseWriter, r *http.Request, s *session.Session) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("Gateway: failed to upgrade websocket")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	g.mu.Lock()
	g.clients[c] = s.ID()
	g.mu.Unlock()
	monitoring.WSConnections.Inc()

	snaps, cancel := s.Subscribe()
	if msg, err := encode(s.Snapshot()); err == nil {
		c.enqueue(msg)
	}

	go g.forward(c, snaps)
	go g.writePump(c)
	g.readPump(c, s, cancel)
}

func (g *Gateway) forward(c *client, snaps <-chan session.Snapshot) {
	defer c.close()
	for snap := range snaps {
		msg, err := encode(snap)
		if err != nil {
			log.WithError(err).Error("Gateway: failed to encode snapshot")
			continue
		}
		c.enqueue(msg)
	}
}

func (g *Gateway) readPump(c *client, s *session.Session, cancel func()) {
	defer func() {
		cancel()
		g.mu.Lock()
		delete(g.clients, c)
		g.mu.Unlock()
		monitoring.WSConnections.Dec()
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			continue
		}
		if req.Action == "snapshot" {
			if msg, err := encode(s.Snapshot()); err == nil {
				c.enqueue(msg)
			}
		}
	}
}

func (g *Gateway) writePump(c *client) {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func encode(snap session.Snapshot) ([]byte, error) {
	return json.Marshal(Message{Type: "snapshot", Data: &snap})
}
