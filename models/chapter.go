package models

// Chapter is a campus/community group of members. TotalPoints is a derived
// aggregate maintained incrementally from points_log entries attributed to
// current members; see ChapterService.RecomputeTotals for the repair path.
type Chapter struct {
	ID         string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	Slug       string  `gorm:"uniqueIndex;not null" json:"slug"`
	University *string `json:"university,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`

	TotalPoints int  `gorm:"not null;default:0" json:"total_points"`
	IsActive    bool `gorm:"not null;default:true" json:"is_active"`

	Timestamps
}
