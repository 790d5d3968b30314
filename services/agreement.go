package services

import (
	"errors"
	"fmt"
	"time"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgreementService manages ambassador agreements: the follow-on workflow
// unlocked by completing the ambassador onboarding course.
type AgreementService struct {
	DB *gorm.DB
}

func NewAgreementService(db *gorm.DB) *AgreementService {
	return &AgreementService{DB: db}
}

// Sign records the user's agreement. One per user; signing again is a
// duplicate action, not a new row.
func (s *AgreementService) Sign(userID string, commitments []string) (*models.AmbassadorAgreement, error) {
	agreement := models.AmbassadorAgreement{
		ID:          uuid.NewString(),
		UserID:      userID,
		Commitments: commitments,
		Status:      models.AgreementSubmitted,
	}
	if err := s.DB.Create(&agreement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrDuplicateAction)
		}
		return nil, fmt.Errorf("sign agreement: %w", err)
	}
	return &agreement, nil
}

// ForUser returns the user's agreement, or nil when none was signed.
func (s *AgreementService) ForUser(userID string) (*models.AmbassadorAgreement, error) {
	var agreement models.AmbassadorAgreement
	err := s.DB.Where("user_id = ?", userID).First(&agreement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

// ListPending returns agreements awaiting review, oldest first.
func (s *AgreementService) ListPending() ([]models.AmbassadorAgreement, error) {
	var agreements []models.AmbassadorAgreement
	err := s.DB.Where("status = ?", models.AgreementSubmitted).
		Order("signed_at ASC").
		Find(&agreements).Error
	return agreements, err
}

// Review resolves an agreement. Approval promotes the signer to ambassador
// when their current role ranks below it; rejection leaves the role alone.
func (s *AgreementService) Review(agreementID, reviewerID string, approve bool) (*models.AmbassadorAgreement, error) {
	var agreement models.AmbassadorAgreement
	if err := s.DB.First(&agreement, "id = ?", agreementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("agreement %s: %w", agreementID, ErrNotFound)
		}
		return nil, err
	}
	if agreement.Status != models.AgreementSubmitted {
		return nil, fmt.Errorf("agreement %s already reviewed: %w", agreementID, ErrDuplicateAction)
	}

	now := time.Now()
	agreement.Status = models.AgreementRejected
	if approve {
		agreement.Status = models.AgreementApproved
	}
	agreement.ReviewerID = &reviewerID
	agreement.ReviewedAt = &now

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&agreement).Error; err != nil {
			return err
		}
		if !approve {
			return nil
		}
		var profile models.Profile
		if err := tx.Select("id", "role").First(&profile, "id = ?", agreement.UserID).Error; err != nil {
			return err
		}
		if !profile.Role.AtLeast(models.RoleAmbassador) {
			return tx.Model(&models.Profile{}).
				Where("id = ?", agreement.UserID).
				Update("role", models.RoleAmbassador).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("review agreement: %w", err)
	}
	return &agreement, nil
}
