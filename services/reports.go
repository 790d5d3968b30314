package services

import (
	"fmt"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Every activity report earns a flat reward regardless of type.
const activityReportPoints = 10

// ReportService records free-form advocacy activity reports and grants
// their points. Reports are append-only; there is no edit or delete path.
type ReportService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewReportService(db *gorm.DB, ledger *LedgerService) *ReportService {
	return &ReportService{DB: db, Ledger: ledger}
}

var reportTypeLabels = map[models.ReportType]string{
	models.ReportLobbyMeeting:      "Lobby Meeting",
	models.ReportCampusEvent:       "Campus Event",
	models.ReportCommunityOutreach: "Community Outreach",
	models.ReportMediaEngagement:   "Media Engagement",
	models.ReportOther:             "Other Activity",
}

// Submit inserts the report and grants its points. The report row is
// written before the grant so the log always explains where the points
// came from.
func (s *ReportService) Submit(userID string, reportType models.ReportType, contactName, summary string) (*models.ActivityReport, int, error) {
	if !models.ValidReportType(reportType) {
		return nil, 0, fmt.Errorf("%w: unknown report type %q", ErrInvalidInput, reportType)
	}

	report := models.ActivityReport{
		ID:           uuid.NewString(),
		UserID:       userID,
		ReportType:   reportType,
		PointsEarned: activityReportPoints,
	}
	if contactName != "" {
		report.ContactName = &contactName
	}
	if summary != "" {
		report.Summary = &summary
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return nil, 0, fmt.Errorf("submit report: %w", err)
	}

	newTotal, err := s.Ledger.AwardPoints(userID, activityReportPoints,
		fmt.Sprintf("Activity report: %s", reportTypeLabels[reportType]),
		&SourceRef{Type: models.PointsSourceActivityReport, ID: report.ID})
	if err != nil {
		return nil, 0, err
	}

	return &report, newTotal, nil
}

// ListForUser returns the user's reports, newest first.
func (s *ReportService) ListForUser(userID string, limit int) ([]models.ActivityReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var reports []models.ActivityReport
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// ListAll returns recent reports across all users for the admin dashboard.
func (s *ReportService) ListAll(limit int) ([]models.ActivityReport, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var reports []models.ActivityReport
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&reports).Error
	return reports, err
}
