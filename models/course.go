package models

import "gorm.io/datatypes"

// CourseTrack groups courses by audience.
type CourseTrack string

const (
	TrackDrugEducation      CourseTrack = "drug_education"
	TrackInternalOnboarding CourseTrack = "internal_onboarding"
)

// Course is a catalog entity owned by the content-management side. The
// ledger only reads its identity and PointsBonus.
type Course struct {
	ID              string       `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string       `gorm:"not null" json:"title"`
	Description     *string      `gorm:"type:text" json:"description,omitempty"`
	Track           *CourseTrack `gorm:"type:varchar(32)" json:"track,omitempty"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	HeroImageURL    *string      `gorm:"type:text" json:"hero_image_url,omitempty"`
	RequiredRole    UserRole     `gorm:"type:varchar(32);not null;default:'registered'" json:"required_role"`
	SortOrder       int          `gorm:"not null;default:0" json:"sort_order"`
	IsPublished     bool         `gorm:"not null;default:false;index" json:"is_published"`
	PartnerName     *string      `json:"partner_name,omitempty"`
	PointsBonus     int          `gorm:"not null;default:0" json:"points_bonus"`

	Modules []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`

	Timestamps
}

// Module is one ordered unit of a course.
type Module struct {
	ID              string  `gorm:"primaryKey;type:uuid" json:"id"`
	CourseID        string  `gorm:"type:uuid;index;not null" json:"course_id"`
	Title           string  `gorm:"not null" json:"title"`
	ContentMarkdown *string `gorm:"type:text" json:"content_markdown,omitempty"`
	VideoURL        *string `gorm:"type:text" json:"video_url,omitempty"`
	VideoDuration   *string `json:"video_duration,omitempty"`
	SortOrder       int     `gorm:"not null;default:0" json:"sort_order"`
	PointsReward    int     `gorm:"not null;default:0" json:"points_reward"`

	Timestamps
}

// Quiz is a single-question check attached to a module.
type Quiz struct {
	ID           string                     `gorm:"primaryKey;type:uuid" json:"id"`
	ModuleID     string                     `gorm:"type:uuid;index;not null" json:"module_id"`
	Question     string                     `gorm:"type:text;not null" json:"question"`
	Options      datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectIndex int                        `gorm:"not null" json:"correct_index"`
	Explanation  *string                    `gorm:"type:text" json:"explanation,omitempty"`
	PointsReward int                        `gorm:"not null;default:0" json:"points_reward"`

	Timestamps
}
