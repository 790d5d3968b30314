package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the ordered role ladder. Access checks compare ladder
// positions, not string equality.
type UserRole string

const (
	RoleGuest           UserRole = "guest"
	RoleRegistered      UserRole = "registered"
	RoleAmbassador      UserRole = "ambassador"
	RoleCommitteeMember UserRole = "committee_member"
	RoleCommitteeChair  UserRole = "committee_chair"
	RoleBoard           UserRole = "board"
	RoleStaff           UserRole = "staff"
	RoleAdmin           UserRole = "admin"
)

var roleRank = map[UserRole]int{
	RoleGuest:           0,
	RoleRegistered:      1,
	RoleAmbassador:      2,
	RoleCommitteeMember: 3,
	RoleCommitteeChair:  4,
	RoleBoard:           5,
	RoleStaff:           6,
	RoleAdmin:           7,
}

// Rank returns the role's position on the ladder. Unknown roles rank below guest.
func (r UserRole) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r grants everything min grants.
func (r UserRole) AtLeast(min UserRole) bool {
	return r.Rank() >= min.Rank()
}

// Profile is the authenticated member record. Identity itself lives in the
// external auth provider; this row carries everything the platform owns,
// including the cached points total maintained by the ledger.
type Profile struct {
	ID        string   `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string   `gorm:"uniqueIndex;not null" json:"email"`
	FullName  *string  `json:"full_name,omitempty"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
	Role      UserRole `gorm:"type:varchar(32);not null;default:'registered'" json:"role"`
	ChapterID *string  `gorm:"type:uuid;index" json:"chapter_id,omitempty"`

	// Points is a cache derived from points_log; the ledger service is the
	// only writer.
	Points int `gorm:"not null;default:0" json:"points"`

	Bio       *string `gorm:"type:text" json:"bio,omitempty"`
	PushToken *string `json:"push_token,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
