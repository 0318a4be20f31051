package response

import (
	"time"

	"therapy-booking/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   *uuid.UUID `json:"senderId,omitempty"`
	ReceiverID uuid.UUID  `json:"receiverId"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	IsUrgent   bool       `json:"isUrgent"`
	IsRead     bool       `json:"isRead"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func FromNotification(n *notification.Notification) *NotificationResponse {
	resp := copyInto[NotificationResponse](n)
	resp.Type = string(n.Type)
	return resp
}
