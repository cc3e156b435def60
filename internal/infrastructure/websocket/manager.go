package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"luxuryline/internal/domain/entity"
	"luxuryline/pkg/logger"
)

const sendBufferSize = 16

// Client is one socket opened by a session. A session may hold several.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

func NewClient(sessionID string, conn *websocket.Conn) *Client {
	return &Client{
		SessionID: sessionID,
		Conn:      conn,
		Send:      make(chan []byte, sendBufferSize),
	}
}

// Manager fans notifications out to every socket of a session.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
	done       chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the registration loop until ctx is done. Call it once.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)

		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if m.clients[client.SessionID] == nil {
					m.clients[client.SessionID] = make(map[*Client]struct{})
				}
				m.clients[client.SessionID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("Websocket client registered for session %s", client.SessionID)

			case client := <-m.Unregister:
				m.remove(client)
				logger.Debug("Websocket client unregistered for session %s", client.SessionID)

			case <-ctx.Done():
				m.closeAll()
				return
			}
		}
	}()
}

// AddClient hands the client to the registration loop. It reports false once
// the loop has stopped.
func (m *Manager) AddClient(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

// unregister gives up once the loop has stopped, since closeAll already
// dropped every client.
func (m *Manager) unregister(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
	}
}

// Notify never blocks: a client whose buffer is full misses the message.
func (m *Manager) Notify(sessionID string, notification entity.Notification) {
	payload, err := json.Marshal(WSMessage{
		Type:      MessageTypeNotification,
		Data:      notification,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to encode notification: %v", err)
		return
	}
	m.SendToSession(sessionID, payload)
}

func (m *Manager) SendToSession(sessionID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.clients[sessionID] {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping message for slow websocket client in session %s", sessionID)
		}
	}
}

// ClientCount reports how many sockets a session has open.
func (m *Manager) ClientCount(sessionID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[sessionID])
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	set, ok := m.clients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(m.clients, client.SessionID)
	}
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for sessionID, set := range m.clients {
		for client := range set {
			close(client.Send)
		}
		delete(m.clients, sessionID)
	}
}

// ReadPump reads until the socket closes, then unregisters the client.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.unregister(c)
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for session %s: %v", c.SessionID, err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump sends queued messages until Send is closed.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Websocket write error for session %s: %v", c.SessionID, err)
			return
		}
	}
}
