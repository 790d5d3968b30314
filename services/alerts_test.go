package services

import (
	"testing"

	"membership-platform/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAlert(t *testing.T, db *gorm.DB, reward int, active bool) *models.ActionAlert {
	t.Helper()
	alerts := NewAlertService(db, nil)
	alert := &models.ActionAlert{
		Title:        "Call your senator about HB 1234",
		PointsReward: reward,
		IsActive:     active,
	}
	require.NoError(t, alerts.Create(alert))
	if !active {
		require.NoError(t, db.Model(alert).Update("is_active", false).Error)
	}
	return alert
}

func TestRespondGrantsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, "Campus Chapter", 0)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, &chapter.ID)
	alert := seedAlert(t, db, 25, true)
	alerts := NewAlertService(db, NewLedgerService(db, nil))

	res, err := alerts.Respond(user.ID, alert.ID)
	require.NoError(t, err)
	require.False(t, res.AlreadyResponded)
	require.Equal(t, 25, res.PointsAwarded)
	require.Equal(t, 25, res.NewTotal)

	// The second response is acknowledged but earns nothing.
	res, err = alerts.Respond(user.ID, alert.ID)
	require.NoError(t, err)
	require.True(t, res.AlreadyResponded)
	require.Equal(t, 0, res.PointsAwarded)

	require.Equal(t, 25, profilePoints(t, db, user.ID))
	require.Equal(t, 25, chapterTotal(t, db, chapter.ID))
	require.EqualValues(t, 1, countLogRows(t, db, user.ID))

	var responses int64
	require.NoError(t, db.Model(&models.AlertResponse{}).Count(&responses).Error)
	require.EqualValues(t, 1, responses)
}

func TestRespondInactiveAlert(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	alert := seedAlert(t, db, 25, false)
	alerts := NewAlertService(db, NewLedgerService(db, nil))

	_, err := alerts.Respond(user.ID, alert.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualValues(t, 0, countLogRows(t, db, user.ID))
}

func TestGetReportsResponded(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	other := seedProfile(t, db, "other@example.org", models.RoleRegistered, nil)
	alert := seedAlert(t, db, 10, true)
	alerts := NewAlertService(db, NewLedgerService(db, nil))

	_, err := alerts.Respond(user.ID, alert.ID)
	require.NoError(t, err)

	_, responded, err := alerts.Get(alert.ID, user.ID)
	require.NoError(t, err)
	require.True(t, responded)

	_, responded, err = alerts.Get(alert.ID, other.ID)
	require.NoError(t, err)
	require.False(t, responded)
}

func TestListActiveExcludesDeactivated(t *testing.T) {
	db := newTestDB(t)
	active := seedAlert(t, db, 10, true)
	retired := seedAlert(t, db, 10, true)
	alerts := NewAlertService(db, NewLedgerService(db, nil))

	require.NoError(t, alerts.Deactivate(retired.ID))

	list, err := alerts.ListActive()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, active.ID, list[0].ID)
}

func TestCreateRequiresTitle(t *testing.T) {
	db := newTestDB(t)
	alerts := NewAlertService(db, NewLedgerService(db, nil))
	err := alerts.Create(&models.ActionAlert{PointsReward: 5})
	require.ErrorIs(t, err, ErrInvalidInput)
}
