package models

import "time"

// ReportType classifies a logged advocacy activity.
type ReportType string

const (
	ReportLobbyMeeting      ReportType = "lobby_meeting"
	ReportCampusEvent       ReportType = "campus_event"
	ReportCommunityOutreach ReportType = "community_outreach"
	ReportMediaEngagement   ReportType = "media_engagement"
	ReportOther             ReportType = "other"
)

// ValidReportType reports whether t is one of the known report types.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportLobbyMeeting, ReportCampusEvent, ReportCommunityOutreach,
		ReportMediaEngagement, ReportOther:
		return true
	}
	return false
}

// ActivityReport is a free-form logged activity, append-only. Each carries
// the points granted for it at submission time.
type ActivityReport struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ReportType   ReportType `gorm:"type:varchar(32);not null" json:"report_type"`
	ContactName  *string    `json:"contact_name,omitempty"`
	Summary      *string    `gorm:"type:text" json:"summary,omitempty"`
	PointsEarned int        `gorm:"not null;default:0" json:"points_earned"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
