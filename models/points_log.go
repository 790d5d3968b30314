package models

import "time"

// PointsSource identifies what produced a grant.
type PointsSource string

const (
	PointsSourceModule         PointsSource = "module"
	PointsSourceCourse         PointsSource = "course"
	PointsSourceQuiz           PointsSource = "quiz"
	PointsSourceAlert          PointsSource = "alert"
	PointsSourceActivityReport PointsSource = "activity_report"
	PointsSourceAdmin          PointsSource = "admin"
)

// PointsLogEntry is one immutable grant record. This table is the system of
// record; profiles.points and chapters.total_points are caches derived from
// it. Rows are never updated or deleted outside account cascade.
type PointsLogEntry struct {
	ID         string        `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string        `gorm:"type:uuid;index;not null" json:"user_id"`
	Points     int           `gorm:"not null" json:"points"`
	Reason     string        `gorm:"not null" json:"reason"`
	SourceType *PointsSource `gorm:"type:varchar(32);index" json:"source_type,omitempty"`
	SourceID   *string       `gorm:"type:uuid" json:"source_id,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PointsLogEntry) TableName() string { return "points_log" }
