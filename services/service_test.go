package services

import (
	"fmt"
	"strings"
	"testing"

	"membership-platform/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database with the full schema.
// TranslateError is on so unique-violation guards behave as in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Chapter{},
		&models.PointsLogEntry{},
		&models.Course{},
		&models.Module{},
		&models.Quiz{},
		&models.UserProgress{},
		&models.ActionAlert{},
		&models.AlertResponse{},
		&models.ActivityReport{},
		&models.AmbassadorAgreement{},
		&models.Notification{},
		&models.NewsItem{},
		&models.MenuItem{},
	))
	return db
}

func seedChapter(t *testing.T, db *gorm.DB, name string, totalPoints int) *models.Chapter {
	t.Helper()
	chapter := &models.Chapter{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		TotalPoints: totalPoints,
		IsActive:    true,
	}
	require.NoError(t, db.Create(chapter).Error)
	return chapter
}

func seedProfile(t *testing.T, db *gorm.DB, email string, role models.UserRole, chapterID *string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		ChapterID: chapterID,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// seedCourse creates a published course with modules worth the given rewards,
// in order.
func seedCourse(t *testing.T, db *gorm.DB, title string, bonus int, moduleRewards ...int) (*models.Course, []models.Module) {
	t.Helper()
	course := &models.Course{
		ID:          uuid.NewString(),
		Title:       title,
		IsPublished: true,
		PointsBonus: bonus,
	}
	require.NoError(t, db.Create(course).Error)

	modules := make([]models.Module, 0, len(moduleRewards))
	for i, reward := range moduleRewards {
		mod := models.Module{
			ID:           uuid.NewString(),
			CourseID:     course.ID,
			Title:        fmt.Sprintf("%s – Module %d", title, i+1),
			SortOrder:    i,
			PointsReward: reward,
		}
		require.NoError(t, db.Create(&mod).Error)
		modules = append(modules, mod)
	}
	return course, modules
}

func seedQuiz(t *testing.T, db *gorm.DB, moduleID string, reward int) *models.Quiz {
	t.Helper()
	explanation := "Because that is how the law works."
	quiz := &models.Quiz{
		ID:           uuid.NewString(),
		ModuleID:     moduleID,
		Question:     "Which schedule is cannabis under federally?",
		Options:      []string{"Schedule I", "Schedule II", "Unscheduled"},
		CorrectIndex: 0,
		Explanation:  &explanation,
		PointsReward: reward,
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func countLogRows(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.PointsLogEntry{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func profilePoints(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()
	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", userID).Error)
	return profile.Points
}

func chapterTotal(t *testing.T, db *gorm.DB, chapterID string) int {
	t.Helper()
	var chapter models.Chapter
	require.NoError(t, db.First(&chapter, "id = ?", chapterID).Error)
	return chapter.TotalPoints
}
