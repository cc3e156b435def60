package websocket

import (
	"encoding/json"
	"time"
)

const (
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
	MessageTypeNotification = "notification"
	MessageTypeError        = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HandleClientMessage answers pings. The channel is otherwise server to client.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		m.sendToClient(client, errorMessage("Invalid message format"))
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{
			Type:      MessageTypePong,
			Data:      map[string]string{"status": "alive"},
			Timestamp: time.Now().Format(time.RFC3339),
		})
	default:
		m.sendToClient(client, errorMessage("Unknown message type"))
	}
}

func errorMessage(text string) WSMessage {
	return WSMessage{
		Type:      MessageTypeError,
		Data:      map[string]string{"message": text},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// sendToClient holds the read lock so Send cannot be closed mid-send.
func (m *Manager) sendToClient(client *Client, message WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if _, ok := m.clients[client.SessionID][client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}
