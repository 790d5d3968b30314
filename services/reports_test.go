package services

import (
	"testing"

	"membership-platform/models"

	"github.com/stretchr/testify/require"
)

func TestSubmitReportAwardsFlatPoints(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, "Campus Chapter", 50)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, &chapter.ID)
	reports := NewReportService(db, NewLedgerService(db, nil))

	report, newTotal, err := reports.Submit(user.ID, models.ReportLobbyMeeting, "Sen. Doe's office", "Met with staffers")
	require.NoError(t, err)
	require.Equal(t, 10, newTotal)
	require.Equal(t, 10, report.PointsEarned)
	require.NotNil(t, report.ContactName)
	require.Equal(t, "Sen. Doe's office", *report.ContactName)

	require.Equal(t, 10, profilePoints(t, db, user.ID))
	require.Equal(t, 60, chapterTotal(t, db, chapter.ID))

	var entry models.PointsLogEntry
	require.NoError(t, db.First(&entry, "user_id = ?", user.ID).Error)
	require.Equal(t, "Activity report: Lobby Meeting", entry.Reason)
	require.NotNil(t, entry.SourceType)
	require.Equal(t, models.PointsSourceActivityReport, *entry.SourceType)
	require.NotNil(t, entry.SourceID)
	require.Equal(t, report.ID, *entry.SourceID)
}

func TestSubmitReportRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	reports := NewReportService(db, NewLedgerService(db, nil))

	_, _, err := reports.Submit(user.ID, "bake_sale", "", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.EqualValues(t, 0, countLogRows(t, db, user.ID))
}

func TestSubmitReportRepeatsAreAllowed(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	reports := NewReportService(db, NewLedgerService(db, nil))

	// Reports are not idempotent: each submission is its own activity.
	for i := 0; i < 3; i++ {
		_, _, err := reports.Submit(user.ID, models.ReportCampusEvent, "", "tabling")
		require.NoError(t, err)
	}
	require.Equal(t, 30, profilePoints(t, db, user.ID))
	require.EqualValues(t, 3, countLogRows(t, db, user.ID))
}

func TestListForUserOnlyReturnsOwnReports(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	other := seedProfile(t, db, "other@example.org", models.RoleRegistered, nil)
	reports := NewReportService(db, NewLedgerService(db, nil))

	_, _, err := reports.Submit(user.ID, models.ReportOther, "", "")
	require.NoError(t, err)
	_, _, err = reports.Submit(other.ID, models.ReportOther, "", "")
	require.NoError(t, err)

	mine, err := reports.ListForUser(user.ID, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := reports.ListAll(0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
