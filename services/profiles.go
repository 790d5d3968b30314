package services

import (
	"errors"
	"fmt"
	"strings"

	"membership-platform/models"

	"gorm.io/gorm"
)

// ProfileService owns reads and non-points writes on profiles. The points
// column belongs to the ledger; nothing here touches it.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// Get returns one profile.
func (s *ProfileService) Get(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

// ProfileUpdate carries the user-editable fields. Nil means "leave as is".
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	ChapterID *string `json:"chapter_id"`
}

// Update applies a partial self-edit. Joining a chapter validates the
// chapter exists and is active.
func (s *ProfileService) Update(userID string, upd ProfileUpdate) (*models.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if upd.FullName != nil {
		profile.FullName = upd.FullName
	}
	if upd.AvatarURL != nil {
		profile.AvatarURL = upd.AvatarURL
	}
	if upd.Bio != nil {
		profile.Bio = upd.Bio
	}
	if upd.ChapterID != nil {
		if *upd.ChapterID == "" {
			profile.ChapterID = nil
		} else {
			var count int64
			if err := s.DB.Model(&models.Chapter{}).
				Where("id = ? AND is_active = ?", *upd.ChapterID, true).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, fmt.Errorf("chapter %s: %w", *upd.ChapterID, ErrNotFound)
			}
			profile.ChapterID = upd.ChapterID
		}
	}
	if err := s.DB.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// SetRole is the admin role-change path.
func (s *ProfileService) SetRole(userID string, role models.UserRole) error {
	if role.Rank() < 0 {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	res := s.DB.Model(&models.Profile{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return nil
}

// RegisterPushToken stores the device's Expo push token. An empty token
// clears it (logout / permission revoked).
func (s *ProfileService) RegisterPushToken(userID, token string) error {
	var value interface{}
	if token != "" {
		value = token
	}
	res := s.DB.Model(&models.Profile{}).Where("id = ?", userID).Update("push_token", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	return nil
}

// Search lists profiles matching a name/email query for the admin screen.
func (s *ProfileService) Search(query string, limit int) ([]models.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	db := s.DB.Model(&models.Profile{}).Limit(limit).Order("created_at DESC")
	if query != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", term, term)
	}
	var profiles []models.Profile
	err := db.Find(&profiles).Error
	return profiles, err
}

// Delete removes the account and everything it owns (full cascade — the
// only path that destroys ledger rows).
func (s *ProfileService) Delete(userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.PointsLogEntry{},
			&models.UserProgress{},
			&models.AlertResponse{},
			&models.ActivityReport{},
			&models.AmbassadorAgreement{},
			&models.Notification{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(owned).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Profile{}, "id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
