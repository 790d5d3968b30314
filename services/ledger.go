package services

import (
	"errors"
	"fmt"
	"log"

	"membership-platform/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsNotifier receives fire-and-forget "points were awarded" events.
// Failures are the notifier's problem; the ledger never waits on it.
type PointsNotifier interface {
	NotifyPoints(userID string, amount int, reason string)
}

// SourceRef ties a grant back to the thing that produced it.
type SourceRef struct {
	Type models.PointsSource
	ID   string
}

// LedgerService is the single writer for points_log, profiles.points and
// chapters.total_points. Every grant in the platform goes through
// AwardPoints — there is deliberately no second award path.
type LedgerService struct {
	DB       *gorm.DB
	Notifier PointsNotifier
}

func NewLedgerService(db *gorm.DB, notifier PointsNotifier) *LedgerService {
	return &LedgerService{DB: db, Notifier: notifier}
}

// AwardPoints appends one immutable grant record, bumps the user's cached
// total and propagates the same amount into the user's chapter aggregate.
// Returns the user's new total.
//
// Failure semantics, in order:
//   - missing user → ErrNotFound, nothing written
//   - points_log insert failure → logged and swallowed (the platform
//     tolerates a missing audit row over failing to credit the user)
//   - profiles.points update failure → hard error
//   - chapters.total_points update failure → logged and swallowed; chapter
//     totals are best-effort derived data
//
// Both counter updates are single atomic increments, so concurrent grants
// to the same user or chapter cannot lose updates.
func (s *LedgerService) AwardPoints(userID string, amount int, reason string, source *SourceRef) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: negative amount %d", ErrInvalidInput, amount)
	}

	var profile models.Profile
	if err := s.DB.Select("id", "chapter_id").First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("award points: user %s: %w", userID, ErrNotFound)
		}
		return 0, fmt.Errorf("award points: fetch profile: %w", err)
	}

	entry := models.PointsLogEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		Points: amount,
		Reason: reason,
	}
	if source != nil {
		entry.SourceType = &source.Type
		if source.ID != "" {
			id := source.ID
			entry.SourceID = &id
		}
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		// Non-fatal: still credit the user.
		log.Printf("⚠️ [LEDGER] failed to append points_log for %s: %v", userID, err)
	}

	res := s.DB.Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return 0, fmt.Errorf("award points: update total: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("award points: user %s: %w", userID, ErrNotFound)
	}

	var updated models.Profile
	if err := s.DB.Select("points").First(&updated, "id = ?", userID).Error; err != nil {
		return 0, fmt.Errorf("award points: read new total: %w", err)
	}
	newTotal := updated.Points

	if profile.ChapterID != nil {
		if err := s.DB.Model(&models.Chapter{}).
			Where("id = ?", *profile.ChapterID).
			Update("total_points", gorm.Expr("total_points + ?", amount)).Error; err != nil {
			log.Printf("⚠️ [LEDGER] failed to bump chapter %s total for %s: %v", *profile.ChapterID, userID, err)
		}
	}

	if s.Notifier != nil && amount > 0 {
		go s.Notifier.NotifyPoints(userID, amount, reason)
	}

	log.Printf("⭐ [LEDGER] %s +%d (%s) → total=%d", userID, amount, reason, newTotal)
	return newTotal, nil
}

// UserLog returns the most recent grants for a user, newest first.
func (s *LedgerService) UserLog(userID string, limit int) ([]models.PointsLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var entries []models.PointsLogEntry
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
