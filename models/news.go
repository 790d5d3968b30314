package models

import "time"

// NewsSource distinguishes admin-authored items from synced WordPress posts.
type NewsSource string

const (
	NewsSourceAdmin     NewsSource = "admin"
	NewsSourceWordPress NewsSource = "wordpress"
)

// NewsTag is an optional badge on a news item.
type NewsTag string

const (
	NewsTagEvent  NewsTag = "event"
	NewsTagUrgent NewsTag = "urgent"
	NewsTagPolicy NewsTag = "policy"
	NewsTagWin    NewsTag = "win"
	NewsTagCourse NewsTag = "course"
)

// NewsItem is a feed entry. WordPress-sourced items carry WPPostID so the
// sync worker can upsert instead of duplicating.
type NewsItem struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"index;not null" json:"slug"`
	Body        *string    `gorm:"type:text" json:"body,omitempty"`
	Excerpt     *string    `gorm:"type:text" json:"excerpt,omitempty"`
	Tag         *NewsTag   `gorm:"type:varchar(16)" json:"tag,omitempty"`
	ImageURL    *string    `gorm:"type:text" json:"image_url,omitempty"`
	ExternalURL *string    `gorm:"type:text" json:"external_url,omitempty"`
	Source      NewsSource `gorm:"type:varchar(16);not null;default:'admin'" json:"source"`
	WPPostID    *int64     `gorm:"uniqueIndex" json:"wp_post_id,omitempty"`
	IsPublished bool       `gorm:"not null;default:true;index" json:"is_published"`
	PublishedAt time.Time  `json:"published_at"`

	Timestamps
}
