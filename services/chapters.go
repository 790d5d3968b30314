package services

import (
	"errors"
	"fmt"

	"membership-platform/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ChapterService manages chapters and their derived point aggregates.
type ChapterService struct {
	DB *gorm.DB
}

func NewChapterService(db *gorm.DB) *ChapterService {
	return &ChapterService{DB: db}
}

// ListActive returns active chapters ordered by name.
func (s *ChapterService) ListActive() ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := s.DB.Where("is_active = ?", true).Order("name ASC").Find(&chapters).Error
	return chapters, err
}

// Leaderboard returns the top chapters by total points.
func (s *ChapterService) Leaderboard(limit int) ([]models.Chapter, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	var chapters []models.Chapter
	err := s.DB.Where("is_active = ?", true).
		Order("total_points DESC").
		Limit(limit).
		Find(&chapters).Error
	return chapters, err
}

// Get returns one chapter.
func (s *ChapterService) Get(chapterID string) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := s.DB.First(&chapter, "id = ?", chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("chapter %s: %w", chapterID, ErrNotFound)
		}
		return nil, err
	}
	return &chapter, nil
}

// Create inserts a chapter, deriving its slug from the name.
func (s *ChapterService) Create(chapter *models.Chapter) error {
	if chapter.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if chapter.Slug == "" {
		chapter.Slug = slug.Make(chapter.Name)
	}
	chapter.ID = uuid.NewString()
	if err := s.DB.Create(chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("chapter slug %q: %w", chapter.Slug, ErrDuplicateAction)
		}
		return err
	}
	return nil
}

func (s *ChapterService) Update(chapter *models.Chapter) error {
	return s.DB.Save(chapter).Error
}

// RecomputeTotals rebuilds every chapter's total_points from the grant log,
// attributing each entry to the grantee's current chapter. The aggregate is
// normally maintained incrementally by the ledger; this is the admin repair
// path for drift (historic dual write paths, deleted members).
func (s *ChapterService) RecomputeTotals() error {
	err := s.DB.Exec(`
		UPDATE chapters SET total_points = COALESCE((
			SELECT SUM(pl.points)
			FROM points_log pl
			INNER JOIN profiles p ON p.id = pl.user_id
			WHERE p.chapter_id = chapters.id AND p.deleted_at IS NULL
		), 0)
	`).Error
	if err != nil {
		return fmt.Errorf("recompute chapter totals: %w", err)
	}
	return nil
}
