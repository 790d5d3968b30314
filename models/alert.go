package models

import "time"

// ActionAlert is a call-to-action (call a legislator, sign a petition).
// Responding earns PointsReward once per user.
type ActionAlert struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	Title         string  `gorm:"not null" json:"title"`
	Description   *string `gorm:"type:text" json:"description,omitempty"`
	BillNumber    *string `json:"bill_number,omitempty"`
	CallToAction  *string `gorm:"type:text" json:"call_to_action,omitempty"`
	TargetContact *string `json:"target_contact,omitempty"`
	PointsReward  int     `gorm:"not null;default:0" json:"points_reward"`
	IsActive      bool    `gorm:"not null;default:true;index" json:"is_active"`

	Timestamps
}

// AlertResponse records that a user took action on an alert. The unique
// (user, alert) index is the idempotency guard: a concurrent duplicate
// submission fails the insert instead of double-granting.
type AlertResponse struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	AlertID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_alert_response_once" json:"alert_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_alert_response_once" json:"user_id"`
	PointsEarned int       `gorm:"not null;default:0" json:"points_earned"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
