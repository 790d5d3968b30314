package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService tracks per-course module completion and drives the grants
// that come out of it (module rewards, course bonus, quiz rewards). It sits
// above the ledger: all idempotency checks happen here, before any grant.
type ProgressService struct {
	DB     *gorm.DB
	Ledger *LedgerService

	// AllowRepeatQuizRewards lets a user re-earn quiz points on re-attempts.
	// Off by default: the recorded score is the repeat guard.
	AllowRepeatQuizRewards bool
}

func NewProgressService(db *gorm.DB, ledger *LedgerService) *ProgressService {
	return &ProgressService{DB: db, Ledger: ledger}
}

// CompletionResult reports what a CompleteModule call actually did.
type CompletionResult struct {
	ModuleID         string `json:"module_id"`
	AlreadyCompleted bool   `json:"already_completed"`
	AllModulesDone   bool   `json:"all_modules_done"`
	PointsAwarded    int    `json:"points_awarded"`
	NewTotal         int    `json:"new_total"`

	// PromptAgreement is set when the completed course is the ambassador
	// onboarding course; the app surfaces the agreement flow off this flag.
	PromptAgreement bool `json:"prompt_agreement"`
}

// QuizResult reports a quiz submission outcome.
type QuizResult struct {
	Correct         bool    `json:"correct"`
	CorrectIndex    int     `json:"correct_index"`
	Explanation     *string `json:"explanation,omitempty"`
	AlreadyAnswered bool    `json:"already_answered"`
	PointsAwarded   int     `json:"points_awarded"`
}

// EnsureProgress returns the (user, course) progress row, creating it on
// first touch. Idempotent.
func (s *ProgressService) EnsureProgress(userID, courseID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = models.UserProgress{
			ID:            uuid.NewString(),
			UserID:        userID,
			CourseID:      courseID,
			CurrentModule: 1,
			QuizScores:    map[string]interface{}{},
		}
		if err := s.DB.Create(&prog).Error; err != nil {
			// A concurrent first touch may have won the unique index race.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if ferr := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error; ferr == nil {
					return &prog, nil
				}
			}
			return nil, fmt.Errorf("ensure progress: %w", err)
		}
		return &prog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ensure progress: %w", err)
	}
	return &prog, nil
}

// CompleteModule records completion of the moduleIndex-th module (0-based,
// sort order) of a course. Re-completing a module is a no-op: no grant, no
// state change. When the completed set covers the whole course the row is
// stamped completed and the course bonus is granted, once.
func (s *ProgressService) CompleteModule(userID, courseID string, moduleIndex int) (*CompletionResult, error) {
	course, modules, err := s.courseWithModules(courseID)
	if err != nil {
		return nil, err
	}
	if moduleIndex < 0 || moduleIndex >= len(modules) {
		return nil, fmt.Errorf("%w: module index %d out of range", ErrInvalidInput, moduleIndex)
	}
	mod := modules[moduleIndex]

	prog, err := s.EnsureProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{ModuleID: mod.ID}
	if prog.HasCompleted(mod.ID) {
		result.AlreadyCompleted = true
		result.AllModulesDone = prog.CompletedAt != nil
		return result, nil
	}

	prog.CompletedModules = append(prog.CompletedModules, mod.ID)
	prog.CurrentModule = moduleIndex + 2 // 1-based cursor to the next module
	allDone := len(prog.CompletedModules) >= len(modules)
	if allDone {
		now := time.Now()
		prog.CompletedAt = &now
	}
	awarded := mod.PointsReward
	if allDone {
		awarded += course.PointsBonus
	}
	prog.PointsEarned += awarded

	// Progress is saved before granting so a retried request hits the
	// already-completed guard instead of double-granting.
	if err := s.DB.Save(prog).Error; err != nil {
		return nil, fmt.Errorf("complete module: save progress: %w", err)
	}

	newTotal, err := s.Ledger.AwardPoints(userID, mod.PointsReward,
		fmt.Sprintf("Completed module: %s", mod.Title),
		&SourceRef{Type: models.PointsSourceModule, ID: mod.ID})
	if err != nil {
		return nil, err
	}

	if allDone {
		newTotal, err = s.Ledger.AwardPoints(userID, course.PointsBonus,
			fmt.Sprintf("Completed course: %s", course.Title),
			&SourceRef{Type: models.PointsSourceCourse, ID: course.ID})
		if err != nil {
			return nil, err
		}
		result.PromptAgreement = isAmbassadorCourse(course)
	}

	result.AllModulesDone = allDone
	result.PointsAwarded = awarded
	result.NewTotal = newTotal
	return result, nil
}

// SubmitQuiz records an answer and grants the quiz reward on a correct
// first submission. Later attempts re-record the score but only re-earn
// points when AllowRepeatQuizRewards is on.
func (s *ProgressService) SubmitQuiz(userID, courseID, quizID string, answerIndex int) (*QuizResult, error) {
	var quiz models.Quiz
	if err := s.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %s: %w", quizID, ErrNotFound)
		}
		return nil, fmt.Errorf("submit quiz: %w", err)
	}
	if answerIndex < 0 || answerIndex >= len(quiz.Options) {
		return nil, fmt.Errorf("%w: answer index %d out of range", ErrInvalidInput, answerIndex)
	}

	prog, err := s.EnsureProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	_, already := prog.QuizScores[quiz.ID]
	correct := answerIndex == quiz.CorrectIndex

	if prog.QuizScores == nil {
		prog.QuizScores = map[string]interface{}{}
	}
	prog.QuizScores[quiz.ID] = answerIndex

	result := &QuizResult{
		Correct:         correct,
		CorrectIndex:    quiz.CorrectIndex,
		Explanation:     quiz.Explanation,
		AlreadyAnswered: already,
	}

	if correct && (!already || s.AllowRepeatQuizRewards) {
		result.PointsAwarded = quiz.PointsReward
		prog.PointsEarned += quiz.PointsReward
	}

	if err := s.DB.Save(prog).Error; err != nil {
		return nil, fmt.Errorf("submit quiz: save progress: %w", err)
	}

	if result.PointsAwarded > 0 {
		question := quiz.Question
		if len(question) > 50 {
			question = question[:50]
		}
		if _, err := s.Ledger.AwardPoints(userID, quiz.PointsReward,
			fmt.Sprintf("Quiz correct: %s", question),
			&SourceRef{Type: models.PointsSourceQuiz, ID: quiz.ID}); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GetProgress returns the progress row for (user, course), or nil when the
// course has not been started.
func (s *ProgressService) GetProgress(userID, courseID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// ListProgress returns all of a user's progress rows, most recently
// completed first.
func (s *ProgressService) ListProgress(userID string) ([]models.UserProgress, error) {
	var rows []models.UserProgress
	err := s.DB.Where("user_id = ?", userID).
		Order("completed_at DESC NULLS LAST").
		Find(&rows).Error
	return rows, err
}

func (s *ProgressService) courseWithModules(courseID string) (*models.Course, []models.Module, error) {
	var course models.Course
	if err := s.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("fetch course: %w", err)
	}
	var modules []models.Module
	if err := s.DB.Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&modules).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch modules: %w", err)
	}
	return &course, modules, nil
}

func isAmbassadorCourse(course *models.Course) bool {
	return course.Track != nil &&
		*course.Track == models.TrackInternalOnboarding &&
		strings.Contains(strings.ToLower(course.Title), "ambassador")
}
