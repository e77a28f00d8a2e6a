package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type MessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

// Event is the envelope pushed to clients for non-chat updates
// (notifications, profile changes).
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub tracks the open connection per user. It is constructed in main and
// passed to whoever needs to push; its lifetime is the server's.
type Hub struct {
	db *gorm.DB

	clients   map[uuid.UUID]*websocket.Conn
	clientsMu sync.RWMutex

	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *models.Message
}

func NewHub(db *gorm.DB) *Hub {
	return &Hub{
		db:         db,
		clients:    make(map[uuid.UUID]*websocket.Conn),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *models.Message),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			log.Printf("Client registered: %s", client.UserID)
			h.clientsMu.Lock()
			h.clients[client.UserID] = client.Conn
			h.clientsMu.Unlock()
		case client := <-h.Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			h.clientsMu.Lock()
			if conn, ok := h.clients[client.UserID]; ok && conn == client.Conn {
				delete(h.clients, client.UserID)
			}
			h.clientsMu.Unlock()
		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) broadcastMessage(message *models.Message) {
	var participantIDs []uuid.UUID
	err := h.db.
		Table("conversation_participants").
		Where("conversation_id = ?", message.ConversationID).
		Pluck("user_id", &participantIDs).Error
	if err != nil {
		log.Printf("Error fetching participant IDs for conversation %s: %v", message.ConversationID, err)
		return
	}

	for _, participantID := range participantIDs {
		if participantID == message.SenderID {
			continue
		}
		h.writeTo(participantID, Event{Type: "message", Payload: message})
	}
}

// Push sends an event to one user's open connection, if any.
func (h *Hub) Push(userID uuid.UUID, event Event) {
	h.writeTo(userID, event)
}

func (h *Hub) writeTo(userID uuid.UUID, event Event) {
	h.clientsMu.RLock()
	conn, ok := h.clients[userID]
	h.clientsMu.RUnlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(event); err != nil {
		log.Printf("Error sending event to client %s: %v", userID, err)
		conn.Close()
		h.clientsMu.Lock()
		if current, ok := h.clients[userID]; ok && current == conn {
			delete(h.clients, userID)
		}
		h.clientsMu.Unlock()
	}
}
