package services

import (
	"fmt"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuService serves the admin-editable app menu, filtered per role.
type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

// VisibleForRole returns visible items the role may see, grouped by section
// in sort order.
func (s *MenuService) VisibleForRole(role models.UserRole) (map[models.MenuSection][]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.DB.Where("is_visible = ?", true).
		Order("section ASC, sort_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	grouped := map[models.MenuSection][]models.MenuItem{}
	for _, item := range items {
		if !role.AtLeast(item.RequiredRole) {
			continue
		}
		grouped[item.Section] = append(grouped[item.Section], item)
	}
	return grouped, nil
}

func (s *MenuService) Create(item *models.MenuItem) error {
	if item.Label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidInput)
	}
	item.ID = uuid.NewString()
	return s.DB.Create(item).Error
}

func (s *MenuService) Update(item *models.MenuItem) error {
	return s.DB.Save(item).Error
}

func (s *MenuService) Delete(itemID string) error {
	res := s.DB.Delete(&models.MenuItem{}, "id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
