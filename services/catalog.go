package services

import (
	"errors"
	"fmt"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService is the read/admin surface for the course catalog. The
// ledger core only ever reads reward fields from here; catalog writes are
// an admin concern.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// CourseSummary is a catalog listing row.
type CourseSummary struct {
	models.Course
	ModuleCount int `json:"module_count"`
}

// ListPublished returns published courses visible to the given role,
// with their module counts.
func (s *CatalogService) ListPublished(role models.UserRole) ([]CourseSummary, error) {
	var courses []models.Course
	if err := s.DB.Where("is_published = ?", true).
		Order("sort_order ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		if !role.AtLeast(course.RequiredRole) {
			continue
		}
		var count int64
		if err := s.DB.Model(&models.Module{}).
			Where("course_id = ?", course.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, CourseSummary{Course: course, ModuleCount: int(count)})
	}
	return summaries, nil
}

// GetCourse returns one course with its modules in order.
func (s *CatalogService) GetCourse(courseID string) (*models.Course, error) {
	var course models.Course
	err := s.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("modules.sort_order ASC")
	}).First(&course, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
		}
		return nil, err
	}
	return &course, nil
}

// QuizForModule returns the module's quiz, or nil when it has none.
func (s *CatalogService) QuizForModule(moduleID string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.DB.Where("module_id = ?", moduleID).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// --- admin CRUD ---

func (s *CatalogService) CreateCourse(course *models.Course) error {
	if course.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	course.ID = uuid.NewString()
	return s.DB.Create(course).Error
}

func (s *CatalogService) UpdateCourse(course *models.Course) error {
	return s.DB.Omit("Modules").Save(course).Error
}

func (s *CatalogService) CreateModule(module *models.Module) error {
	if module.CourseID == "" || module.Title == "" {
		return fmt.Errorf("%w: course_id and title are required", ErrInvalidInput)
	}
	var count int64
	if err := s.DB.Model(&models.Course{}).Where("id = ?", module.CourseID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("course %s: %w", module.CourseID, ErrNotFound)
	}
	module.ID = uuid.NewString()
	return s.DB.Create(module).Error
}

func (s *CatalogService) UpdateModule(module *models.Module) error {
	return s.DB.Save(module).Error
}

func (s *CatalogService) DeleteModule(moduleID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", moduleID).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Module{}, "id = ?", moduleID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpsertQuiz creates or replaces a module's quiz.
func (s *CatalogService) UpsertQuiz(quiz *models.Quiz) error {
	if quiz.ModuleID == "" || quiz.Question == "" {
		return fmt.Errorf("%w: module_id and question are required", ErrInvalidInput)
	}
	if quiz.CorrectIndex < 0 || quiz.CorrectIndex >= len(quiz.Options) {
		return fmt.Errorf("%w: correct index out of range", ErrInvalidInput)
	}
	var existing models.Quiz
	err := s.DB.Where("module_id = ?", quiz.ModuleID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		quiz.ID = uuid.NewString()
		return s.DB.Create(quiz).Error
	}
	if err != nil {
		return err
	}
	quiz.ID = existing.ID
	return s.DB.Save(quiz).Error
}
