package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeClosed   MessageType = "session_closed"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"sessionId"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans session snapshots out to the clients watching that session
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// NewHub creates a new Hub. checkOrigin may be nil to accept any origin.
func NewHub(logger *zap.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Run starts the hub's main loop. It returns when ctx is done, closing
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for sessionID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, sessionID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.sessionID] == nil {
				h.clients[client.sessionID] = make(map[*Client]bool)
			}
			h.clients[client.sessionID][client] = true
			h.logger.Debug("websocket client registered",
				zap.String("session_id", client.sessionID),
				zap.Int("total", len(h.clients[client.sessionID])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("failed to marshal websocket message", zap.Error(err))
				continue
			}

			h.mu.Lock()
			for client := range h.clients[message.SessionID] {
				select {
				case client.send <- data:
				default:
					h.logger.Warn("dropping slow websocket client", zap.String("session_id", message.SessionID))
					h.removeLocked(client)
				}
			}
			if message.Type == MessageTypeClosed {
				for client := range h.clients[message.SessionID] {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	h.logger.Debug("websocket client unregistered",
		zap.String("session_id", client.sessionID),
		zap.Int("remaining", len(clients)))
	if len(clients) == 0 {
		delete(h.clients, client.sessionID)
	}
}

// Publish queues payload for every client of sessionID. It never blocks:
// when the queue is full the update is dropped, the next one supersedes it.
func (h *Hub) Publish(sessionID string, payload any) {
	h.enqueue(&Message{
		Type:      MessageTypeSnapshot,
		SessionID: sessionID,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	})
}

// CloseSession tells the clients of sessionID the session is gone and
// disconnects them
func (h *Hub) CloseSession(sessionID string) {
	h.enqueue(&Message{
		Type:      MessageTypeClosed,
		SessionID: sessionID,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (h *Hub) enqueue(msg *Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("websocket broadcast queue full", zap.String("session_id", msg.SessionID))
	}
}

// ClientCount returns the number of clients watching a session
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// ServeWS upgrades the request and streams the session's snapshots,
// starting with initial
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial any) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	if initial != nil {
		data, err := json.Marshal(&Message{
			Type:      MessageTypeSnapshot,
			SessionID: sessionID,
			Payload:   initial,
			Timestamp: time.Now().UnixMilli(),
		})
		if err == nil {
			client.send <- data
		}
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()
	return nil
}

// readPump only watches for the peer going away; clients send intents over HTTP
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
