package models

import (
	"time"

	"gorm.io/datatypes"
)

// AgreementStatus is the review state of an ambassador agreement.
type AgreementStatus string

const (
	AgreementSubmitted AgreementStatus = "submitted"
	AgreementApproved  AgreementStatus = "approved"
	AgreementRejected  AgreementStatus = "rejected"
)

// AmbassadorAgreement is the signed commitment unlocked by completing the
// ambassador onboarding course. One per user.
type AmbassadorAgreement struct {
	ID          string                      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string                      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Commitments datatypes.JSONSlice[string] `json:"commitments,omitempty"`
	Status      AgreementStatus             `gorm:"type:varchar(16);not null;default:'submitted'" json:"status"`
	ReviewerID  *string                     `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	SignedAt    time.Time                   `gorm:"autoCreateTime" json:"signed_at"`
	ReviewedAt  *time.Time                  `json:"reviewed_at,omitempty"`
}
