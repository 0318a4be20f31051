package converter

import (
	"therapy-booking/internal/domain/notification"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"
)

func NotificationToInfra(n notification.Notification) sqlc.CreateNotificationParams {
	return sqlc.CreateNotificationParams{
		SenderID:   pgconv.UUIDPtrToPgtype(n.SenderID),
		ReceiverID: n.ReceiverID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		IsUrgent:   n.IsUrgent,
	}
}

func NotificationFromInfra(row sqlc.Notifications) notification.Notification {
	return notification.Notification{
		ID:         row.ID,
		SenderID:   pgconv.UUIDPtrFromPgtype(row.SenderID),
		ReceiverID: row.ReceiverID,
		Type:       notification.Type(row.Type),
		Title:      row.Title,
		Message:    row.Message,
		IsUrgent:   row.IsUrgent,
		IsRead:     row.IsRead,
		ReadAt:     pgconv.TimePtrFromPgtype(row.ReadAt),
		CreatedAt:  row.CreatedAt.Time,
	}
}
