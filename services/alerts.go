package services

import (
	"errors"
	"fmt"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertService handles action alerts and the exactly-once response grants.
type AlertService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewAlertService(db *gorm.DB, ledger *LedgerService) *AlertService {
	return &AlertService{DB: db, Ledger: ledger}
}

// AlertRespondResult reports the outcome of responding to an alert.
type AlertRespondResult struct {
	AlreadyResponded bool `json:"already_responded"`
	PointsAwarded    int  `json:"points_awarded"`
	NewTotal         int  `json:"new_total"`
}

// ListActive returns active alerts, newest first.
func (s *AlertService) ListActive() ([]models.ActionAlert, error) {
	var alerts []models.ActionAlert
	err := s.DB.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// Get returns one alert plus whether the given user has already responded.
func (s *AlertService) Get(alertID, userID string) (*models.ActionAlert, bool, error) {
	var alert models.ActionAlert
	if err := s.DB.First(&alert, "id = ?", alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("alert %s: %w", alertID, ErrNotFound)
		}
		return nil, false, err
	}
	var count int64
	if err := s.DB.Model(&models.AlertResponse{}).
		Where("alert_id = ? AND user_id = ?", alertID, userID).
		Count(&count).Error; err != nil {
		return nil, false, err
	}
	return &alert, count > 0, nil
}

// Respond records that the user took action on an alert and grants its
// reward. The guard row is inserted first: its unique (user, alert) index
// makes a duplicate submission — sequential or concurrent — fail the insert
// before any grant, so the reward is earned at most once. A duplicate is
// not an error to the caller.
func (s *AlertService) Respond(userID, alertID string) (*AlertRespondResult, error) {
	var alert models.ActionAlert
	if err := s.DB.First(&alert, "id = ? AND is_active = ?", alertID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alert %s: %w", alertID, ErrNotFound)
		}
		return nil, fmt.Errorf("respond: fetch alert: %w", err)
	}

	response := models.AlertResponse{
		ID:           uuid.NewString(),
		AlertID:      alertID,
		UserID:       userID,
		PointsEarned: alert.PointsReward,
	}
	if err := s.DB.Create(&response).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &AlertRespondResult{AlreadyResponded: true}, nil
		}
		return nil, fmt.Errorf("respond: record response: %w", err)
	}

	newTotal, err := s.Ledger.AwardPoints(userID, alert.PointsReward,
		fmt.Sprintf("Action alert: %s", alert.Title),
		&SourceRef{Type: models.PointsSourceAlert, ID: alertID})
	if err != nil {
		return nil, err
	}

	return &AlertRespondResult{PointsAwarded: alert.PointsReward, NewTotal: newTotal}, nil
}

// --- admin CRUD ---

func (s *AlertService) Create(alert *models.ActionAlert) error {
	if alert.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	alert.ID = uuid.NewString()
	return s.DB.Create(alert).Error
}

func (s *AlertService) Update(alert *models.ActionAlert) error {
	return s.DB.Save(alert).Error
}

func (s *AlertService) Deactivate(alertID string) error {
	res := s.DB.Model(&models.ActionAlert{}).
		Where("id = ?", alertID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
