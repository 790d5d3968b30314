package services

import (
	"testing"

	"membership-platform/models"

	"github.com/stretchr/testify/require"
)

func TestCompleteModuleGrantsOnce(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	_, modules := seedCourse(t, db, "Drug Policy 101", 20, 10, 10)
	ledger := NewLedgerService(db, nil)
	progress := NewProgressService(db, ledger)

	res, err := progress.CompleteModule(user.ID, modules[0].CourseID, 0)
	require.NoError(t, err)
	require.False(t, res.AlreadyCompleted)
	require.False(t, res.AllModulesDone)
	require.Equal(t, 10, res.PointsAwarded)
	require.Equal(t, 10, res.NewTotal)

	// Re-completing the same module is a no-op.
	res, err = progress.CompleteModule(user.ID, modules[0].CourseID, 0)
	require.NoError(t, err)
	require.True(t, res.AlreadyCompleted)
	require.Equal(t, 0, res.PointsAwarded)

	require.Equal(t, 10, profilePoints(t, db, user.ID))
	require.EqualValues(t, 1, countLogRows(t, db, user.ID))
}

func TestCourseCompletionScenario(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, "Campus Chapter", 100)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, &chapter.ID)
	course, modules := seedCourse(t, db, "Drug Policy 101", 20, 10, 10)
	ledger := NewLedgerService(db, nil)
	progress := NewProgressService(db, ledger)

	res, err := progress.CompleteModule(user.ID, course.ID, 0)
	require.NoError(t, err)
	require.False(t, res.AllModulesDone)

	res, err = progress.CompleteModule(user.ID, course.ID, 1)
	require.NoError(t, err)
	require.True(t, res.AllModulesDone)
	require.Equal(t, 30, res.PointsAwarded) // module 10 + course bonus 20
	require.Equal(t, 40, res.NewTotal)

	require.Equal(t, 40, profilePoints(t, db, user.ID))
	require.Equal(t, 140, chapterTotal(t, db, chapter.ID))
	require.EqualValues(t, 3, countLogRows(t, db, user.ID))

	prog, err := progress.GetProgress(user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, prog)
	require.NotNil(t, prog.CompletedAt)
	require.Equal(t, 40, prog.PointsEarned)
	require.ElementsMatch(t, []string{modules[0].ID, modules[1].ID}, []string(prog.CompletedModules))
}

func TestCourseBonusGrantedOnceAnyOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, _ := seedCourse(t, db, "Drug Policy 101", 20, 10, 10)
	ledger := NewLedgerService(db, nil)
	progress := NewProgressService(db, ledger)

	// Out of order: last module first.
	_, err := progress.CompleteModule(user.ID, course.ID, 1)
	require.NoError(t, err)
	res, err := progress.CompleteModule(user.ID, course.ID, 0)
	require.NoError(t, err)
	require.True(t, res.AllModulesDone)
	require.Equal(t, 40, res.NewTotal)

	// Replaying both modules must not re-grant anything, bonus included.
	for _, idx := range []int{0, 1} {
		res, err := progress.CompleteModule(user.ID, course.ID, idx)
		require.NoError(t, err)
		require.True(t, res.AlreadyCompleted)
		require.Equal(t, 0, res.PointsAwarded)
	}
	require.Equal(t, 40, profilePoints(t, db, user.ID))
	require.EqualValues(t, 3, countLogRows(t, db, user.ID))
}

func TestCompleteModuleIndexOutOfRange(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, _ := seedCourse(t, db, "Drug Policy 101", 0, 10)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	_, err := progress.CompleteModule(user.ID, course.ID, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = progress.CompleteModule(user.ID, course.ID, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteModuleUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	_, err := progress.CompleteModule(user.ID, "22222222-2222-2222-2222-222222222222", 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAmbassadorCoursePromptsAgreement(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, _ := seedCourse(t, db, "Ambassador Onboarding", 50, 10)
	track := models.TrackInternalOnboarding
	require.NoError(t, db.Model(course).Update("track", track).Error)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	res, err := progress.CompleteModule(user.ID, course.ID, 0)
	require.NoError(t, err)
	require.True(t, res.AllModulesDone)
	require.True(t, res.PromptAgreement)
}

func TestSubmitQuizCorrectFirstAttempt(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, modules := seedCourse(t, db, "Drug Policy 101", 0, 10)
	quiz := seedQuiz(t, db, modules[0].ID, 5)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	res, err := progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 0)
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.False(t, res.AlreadyAnswered)
	require.Equal(t, 5, res.PointsAwarded)
	require.Equal(t, 5, profilePoints(t, db, user.ID))
}

func TestSubmitQuizRepeatIsNotRewarded(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, modules := seedCourse(t, db, "Drug Policy 101", 0, 10)
	quiz := seedQuiz(t, db, modules[0].ID, 5)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	_, err := progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 0)
	require.NoError(t, err)

	res, err := progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 0)
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.True(t, res.AlreadyAnswered)
	require.Equal(t, 0, res.PointsAwarded)

	require.Equal(t, 5, profilePoints(t, db, user.ID))
	require.EqualValues(t, 1, countLogRows(t, db, user.ID))
}

func TestSubmitQuizRepeatRewardIsConfigurable(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, modules := seedCourse(t, db, "Drug Policy 101", 0, 10)
	quiz := seedQuiz(t, db, modules[0].ID, 5)
	progress := NewProgressService(db, NewLedgerService(db, nil))
	progress.AllowRepeatQuizRewards = true

	for i := 0; i < 2; i++ {
		res, err := progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 0)
		require.NoError(t, err)
		require.Equal(t, 5, res.PointsAwarded)
	}
	require.Equal(t, 10, profilePoints(t, db, user.ID))
}

func TestSubmitQuizWrongAnswerBlocksLaterReward(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, modules := seedCourse(t, db, "Drug Policy 101", 0, 10)
	quiz := seedQuiz(t, db, modules[0].ID, 5)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	res, err := progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 2)
	require.NoError(t, err)
	require.False(t, res.Correct)
	require.Equal(t, 0, res.PointsAwarded)
	require.Equal(t, 0, res.CorrectIndex)

	// Getting it right on the second try records the score but earns nothing.
	res, err = progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 0)
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.True(t, res.AlreadyAnswered)
	require.Equal(t, 0, res.PointsAwarded)
	require.Equal(t, 0, profilePoints(t, db, user.ID))
}

func TestSubmitQuizAnswerOutOfRange(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, modules := seedCourse(t, db, "Drug Policy 101", 0, 10)
	quiz := seedQuiz(t, db, modules[0].ID, 5)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	_, err := progress.SubmitQuiz(user.ID, course.ID, quiz.ID, 7)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnsureProgressIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "learner@example.org", models.RoleRegistered, nil)
	course, _ := seedCourse(t, db, "Drug Policy 101", 0, 10)
	progress := NewProgressService(db, NewLedgerService(db, nil))

	first, err := progress.EnsureProgress(user.ID, course.ID)
	require.NoError(t, err)
	second, err := progress.EnsureProgress(user.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.UserProgress{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
