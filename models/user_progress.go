package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProgress is one row per (user, course). CompletedModules is a set of
// module IDs (order irrelevant); CompletedAt is non-nil exactly when that
// set covered the course's modules at the time of the last update.
type UserProgress struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course" json:"user_id"`
	CourseID string `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course" json:"course_id"`

	// CurrentModule is the 1-based position cursor of the next module to show.
	CurrentModule    int                         `gorm:"not null;default:1" json:"current_module"`
	CompletedModules datatypes.JSONSlice[string] `json:"completed_modules"`

	// QuizScores maps quiz ID -> selected answer index. Presence of a key is
	// the repeat-reward guard for that quiz.
	QuizScores datatypes.JSONMap `json:"quiz_scores"`

	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	PointsEarned int        `gorm:"not null;default:0" json:"points_earned"`

	Timestamps
}

func (UserProgress) TableName() string { return "user_progress" }

// HasCompleted reports whether moduleID is already in the completed set.
func (p *UserProgress) HasCompleted(moduleID string) bool {
	for _, id := range p.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}
