package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/websocket"
)

// NotificationService persists a notification row and pushes it to the user's
// open realtime sessions. Callers treat it as fire-and-forget.
type NotificationService struct {
	db  *gorm.DB
	hub *websocket.Hub
}

func NewNotificationService(db *gorm.DB, hub *websocket.Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

func (s *NotificationService) Notify(userID uuid.UUID, notifType, title, message string, data map[string]interface{}) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if data != nil {
		encoded, err := json.Marshal(data)
		if err == nil {
			payload := string(encoded)
			notification.Data = &payload
		}
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Push(userID, websocket.Event{Type: "notification", Payload: notification})
	}
	return nil
}

// PushProfileUpdate pushes the caller's fresh profile to their open sessions
// after a gamified action changed points, level or streak.
func (s *NotificationService) PushProfileUpdate(user *models.User) {
	if s.hub == nil || user == nil {
		return
	}
	s.hub.Push(user.ID, websocket.Event{Type: "profile_updated", Payload: user})
}
