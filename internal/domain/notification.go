package domain

import "time"

type NotificationType string

const (
	NotificationTypeNewApplication  NotificationType = "NEW_APPLICATION"
	NotificationTypeRequestDecision NotificationType = "REQUEST_DECISION"
)

type EntityType string

const (
	EntityTypeProject EntityType = "PROJECT"
	EntityTypeRequest EntityType = "REQUEST"
)

type Notification struct {
	ID          int32            `json:"id"`
	RecipientID int32            `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	EntityType  EntityType       `json:"entity_type,omitempty"`
	EntityID    int32            `json:"entity_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
