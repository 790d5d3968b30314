package services

import (
	"testing"

	"membership-platform/models"

	"github.com/stretchr/testify/require"
)

func TestSignAgreementOncePerUser(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	agreements := NewAgreementService(db)

	signed, err := agreements.Sign(user.ID, []string{"host two events", "recruit members"})
	require.NoError(t, err)
	require.Equal(t, models.AgreementSubmitted, signed.Status)

	_, err = agreements.Sign(user.ID, nil)
	require.ErrorIs(t, err, ErrDuplicateAction)
}

func TestReviewApprovalPromotesToAmbassador(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	reviewer := seedProfile(t, db, "staff@example.org", models.RoleStaff, nil)
	agreements := NewAgreementService(db)

	signed, err := agreements.Sign(user.ID, nil)
	require.NoError(t, err)

	reviewed, err := agreements.Review(signed.ID, reviewer.ID, true)
	require.NoError(t, err)
	require.Equal(t, models.AgreementApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)
	require.NotNil(t, reviewed.ReviewerID)
	require.Equal(t, reviewer.ID, *reviewed.ReviewerID)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	require.Equal(t, models.RoleAmbassador, profile.Role)
}

func TestReviewApprovalKeepsHigherRole(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "chair@example.org", models.RoleCommitteeChair, nil)
	reviewer := seedProfile(t, db, "staff@example.org", models.RoleStaff, nil)
	agreements := NewAgreementService(db)

	signed, err := agreements.Sign(user.ID, nil)
	require.NoError(t, err)
	_, err = agreements.Review(signed.ID, reviewer.ID, true)
	require.NoError(t, err)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	require.Equal(t, models.RoleCommitteeChair, profile.Role)
}

func TestReviewRejectionLeavesRoleAlone(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	reviewer := seedProfile(t, db, "staff@example.org", models.RoleStaff, nil)
	agreements := NewAgreementService(db)

	signed, err := agreements.Sign(user.ID, nil)
	require.NoError(t, err)
	reviewed, err := agreements.Review(signed.ID, reviewer.ID, false)
	require.NoError(t, err)
	require.Equal(t, models.AgreementRejected, reviewed.Status)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	require.Equal(t, models.RoleRegistered, profile.Role)
}

func TestReviewTwiceIsRejected(t *testing.T) {
	db := newTestDB(t)
	user := seedProfile(t, db, "member@example.org", models.RoleRegistered, nil)
	reviewer := seedProfile(t, db, "staff@example.org", models.RoleStaff, nil)
	agreements := NewAgreementService(db)

	signed, err := agreements.Sign(user.ID, nil)
	require.NoError(t, err)
	_, err = agreements.Review(signed.ID, reviewer.ID, true)
	require.NoError(t, err)
	_, err = agreements.Review(signed.ID, reviewer.ID, false)
	require.ErrorIs(t, err, ErrDuplicateAction)
}

func TestListPendingExcludesReviewed(t *testing.T) {
	db := newTestDB(t)
	first := seedProfile(t, db, "a@example.org", models.RoleRegistered, nil)
	second := seedProfile(t, db, "b@example.org", models.RoleRegistered, nil)
	reviewer := seedProfile(t, db, "staff@example.org", models.RoleStaff, nil)
	agreements := NewAgreementService(db)

	signedFirst, err := agreements.Sign(first.ID, nil)
	require.NoError(t, err)
	_, err = agreements.Sign(second.ID, nil)
	require.NoError(t, err)

	_, err = agreements.Review(signedFirst.ID, reviewer.ID, true)
	require.NoError(t, err)

	pending, err := agreements.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].UserID)
}
