package models

import "time"

// NotificationType drives styling and routing in the apps.
type NotificationType string

const (
	NotificationUrgent NotificationType = "urgent"
	NotificationCourse NotificationType = "course"
	NotificationEvent  NotificationType = "event"
	NotificationPoints NotificationType = "points"
	NotificationSystem NotificationType = "system"
)

// Notification is an in-app inbox entry. Push delivery is handled
// separately via the Expo gateway; both start from the same broadcast.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string           `gorm:"type:uuid;index;not null" json:"user_id"`
	Title     string           `gorm:"not null" json:"title"`
	Body      *string          `gorm:"type:text" json:"body,omitempty"`
	Type      NotificationType `gorm:"type:varchar(16);not null;default:'system'" json:"type"`
	ActionURL *string          `json:"action_url,omitempty"`
	IsRead    bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
