package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

// Client represents one WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks connections per user and per chat room. A room is keyed by
// chat id; clients join a room while they have that conversation open.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WS client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				for chatID, members := range m.rooms {
					if members[client] {
						delete(members, client)
						if len(members) == 0 {
							delete(m.rooms, chatID)
						}
					}
				}
				m.mutex.Unlock()
				logger.Info("WS client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// JoinRoom subscribes a client to a chat room.
func (m *Manager) JoinRoom(chatID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[chatID] == nil {
		m.rooms[chatID] = make(map[*Client]bool)
	}
	m.rooms[chatID][client] = true
}

// LeaveRoom unsubscribes a client from a chat room.
func (m *Manager) LeaveRoom(chatID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.rooms[chatID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, chatID)
		}
	}
}

// SendToUser sends a message to a specific user if connected.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- message:
		default:
		}
	}
}

// SendToChatRoom delivers a message to every room member except excludeUserID.
func (m *Manager) SendToChatRoom(chatID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for client := range m.rooms[chatID] {
		if client.UserID == excludeUserID {
			continue
		}
		select {
		case client.Send <- message:
		default:
		}
	}
}

type inboundMessage struct {
	Type   string `json:"type"`
	ChatID string `json:"chat_id"`
}

// ReadPump reads control messages (room joins/leaves, pings) from the client.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WS read error for %s: %v", c.UserID, err)
			}
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "join_chat_room":
			if msg.ChatID != "" {
				m.JoinRoom(msg.ChatID, c)
			}
		case "leave_chat_room":
			if msg.ChatID != "" {
				m.LeaveRoom(msg.ChatID, c)
			}
		case "ping":
			pong, _ := json.Marshal(map[string]string{"type": "pong"})
			select {
			case c.Send <- pong:
			default:
			}
		}
	}
}

// WritePump sends messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WS write error for %s: %v", c.UserID, err)
			return
		}
	}
}
