package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	clientSendBuf  = 16
	maxMessageSize = 512
)

// Event is the JSON envelope pushed to connected consoles.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Event types understood by the console.
const (
	EventToast    = "toast"
	EventReminder = "reminder"
	EventTone     = "tone"
)

// Hub fans events out to every connected websocket client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *slog.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	// mu guards closed so no goroutine can send on a channel another
	// goroutine is closing.
	mu     sync.Mutex
	closed bool
}

// trySend queues data without blocking. False means the client is closed or
// its buffer is full and it should be detached.
func (c *client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.send)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Broadcast sends an event to all connected clients. Slow clients are
// disconnected rather than blocking the sender.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error("broadcast marshal error", "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.trySend(data) {
			h.detach(c)
		}
	}
}

// ClientCount returns the number of connected consoles.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) attach(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("ws client connected", "clients", h.ClientCount())
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
		h.logger.Info("ws client disconnected", "clients", h.ClientCount())
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The console is served from the same origin in production; the check is
	// relaxed because the API may sit behind a proxy during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS returns the gin handler that upgrades a connection and attaches it
// to the hub.
func (h *Hub) ServeWS() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", "error", err)
			return
		}
		c := &client{conn: conn, send: make(chan []byte, clientSendBuf)}
		h.attach(c)
		go h.writePump(c)
		go h.readPump(c)
	}
}

func (h *Hub) writePump(c *client) {
	defer h.detach(c)
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; the console only listens. Reading is
// still required to notice closed connections.
func (h *Hub) readPump(c *client) {
	defer h.detach(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// HubNotifier implements Notifier by pushing events through the hub and
// mirroring them to the log.
type HubNotifier struct {
	hub    *Hub
	logger *slog.Logger
}

func NewHubNotifier(hub *Hub, logger *slog.Logger) *HubNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &HubNotifier{hub: hub, logger: logger}
}

func (n *HubNotifier) RequestPermission() Permission { return PermissionGranted }

func (n *HubNotifier) Toast(message string, severity Severity) {
	n.logger.Info("toast", "severity", string(severity), "message", message)
	n.hub.Broadcast(EventToast, gin.H{"message": message, "severity": string(severity)})
}

func (n *HubNotifier) Notify(title, body string) {
	n.logger.Info("notification", "title", title, "body", body)
	n.hub.Broadcast(EventReminder, gin.H{"title": title, "body": body})
}

func (n *HubNotifier) PlayTone(freqHz, durationMs int) {
	n.hub.Broadcast(EventTone, gin.H{"freqHz": freqHz, "durationMs": durationMs})
}
