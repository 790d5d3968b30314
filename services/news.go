package services

import (
	"errors"
	"fmt"
	"time"

	"membership-platform/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// NewsService manages the news feed. Admin-authored items are created here;
// WordPress-sourced items arrive via the sync worker.
type NewsService struct {
	DB *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{DB: db}
}

// ListPublished returns the published feed, newest first.
func (s *NewsService) ListPublished(limit int) ([]models.NewsItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var items []models.NewsItem
	err := s.DB.Where("is_published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// Create inserts an admin-authored item.
func (s *NewsService) Create(item *models.NewsItem) error {
	if item.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	item.Source = models.NewsSourceAdmin
	if item.Slug == "" {
		item.Slug = slug.Make(item.Title)
	}
	if item.PublishedAt.IsZero() {
		item.PublishedAt = time.Now()
	}
	item.ID = uuid.NewString()
	return s.DB.Create(item).Error
}

func (s *NewsService) Update(item *models.NewsItem) error {
	return s.DB.Save(item).Error
}

func (s *NewsService) Delete(itemID string) error {
	res := s.DB.Delete(&models.NewsItem{}, "id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one item.
func (s *NewsService) Get(itemID string) (*models.NewsItem, error) {
	var item models.NewsItem
	if err := s.DB.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("news item %s: %w", itemID, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}
