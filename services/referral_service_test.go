package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

func createPendingReferral(t *testing.T, db *gorm.DB, referrer, referred *models.User) *models.Referral {
	t.Helper()

	referral := models.Referral{
		ReferrerID:     referrer.ID,
		ReferredUserID: referred.ID,
		Status:         "pending",
	}
	if err := db.Create(&referral).Error; err != nil {
		t.Fatalf("failed to create referral: %v", err)
	}
	return &referral
}

func TestValidateCode(t *testing.T) {
	db := openTestDB(t)
	referrals := NewReferralService(db, NewPointsService(db, nil), nil)
	referrer := createTestUser(t, db, "nina")

	found, err := referrals.ValidateCode(*referrer.ReferralCode)
	if err != nil {
		t.Fatalf("ValidateCode failed: %v", err)
	}
	if found.ID != referrer.ID {
		t.Fatalf("resolved user %s, want %s", found.ID, referrer.ID)
	}

	if _, err := referrals.ValidateCode("NOPE1234"); err == nil {
		t.Fatalf("ValidateCode accepted an unknown code")
	}
}

func TestCompleteForUserPaysBothSides(t *testing.T) {
	db := openTestDB(t)
	points := NewPointsService(db, nil)
	referrals := NewReferralService(db, points, nil)
	referrer := createTestUser(t, db, "olga")
	referred := createTestUser(t, db, "pete")
	createPendingReferral(t, db, referrer, referred)

	if err := referrals.CompleteForUser(referred.ID); err != nil {
		t.Fatalf("CompleteForUser failed: %v", err)
	}

	if got := reloadUser(t, db, referrer.ID).Points; got != ReferrerRewardPoints {
		t.Fatalf("referrer points = %d, want %d", got, ReferrerRewardPoints)
	}
	if got := reloadUser(t, db, referred.ID).Points; got != ReferredRewardPoints {
		t.Fatalf("referred points = %d, want %d", got, ReferredRewardPoints)
	}

	var referral models.Referral
	if err := db.First(&referral, "referred_user_id = ?", referred.ID).Error; err != nil {
		t.Fatalf("failed to reload referral: %v", err)
	}
	if referral.Status != "completed" {
		t.Fatalf("status = %q, want completed", referral.Status)
	}
	if referral.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
}

func TestCompleteIsExactlyOnce(t *testing.T) {
	db := openTestDB(t)
	points := NewPointsService(db, nil)
	referrals := NewReferralService(db, points, nil)
	referrer := createTestUser(t, db, "quin")
	referred := createTestUser(t, db, "rosa")
	referral := createPendingReferral(t, db, referrer, referred)

	if err := referrals.Complete(referral.ID); err != nil {
		t.Fatalf("first Complete failed: %v", err)
	}
	if err := referrals.Complete(referral.ID); err != nil {
		t.Fatalf("second Complete failed: %v", err)
	}
	if err := referrals.CompleteForUser(referred.ID); err != nil {
		t.Fatalf("CompleteForUser after completion failed: %v", err)
	}

	if got := reloadUser(t, db, referrer.ID).Points; got != ReferrerRewardPoints {
		t.Fatalf("referrer points = %d, want %d (single payout)", got, ReferrerRewardPoints)
	}
	if got := countTransactions(t, db, referrer.ID, "referral_reward"); got != 1 {
		t.Fatalf("referral_reward ledger rows = %d, want 1", got)
	}
}

func TestCompleteForUserWithoutReferralIsNoOp(t *testing.T) {
	db := openTestDB(t)
	referrals := NewReferralService(db, NewPointsService(db, nil), nil)
	user := createTestUser(t, db, "sage")

	if err := referrals.CompleteForUser(user.ID); err != nil {
		t.Fatalf("CompleteForUser without referral returned error: %v", err)
	}
	if got := reloadUser(t, db, user.ID).Points; got != 0 {
		t.Fatalf("points = %d, want 0", got)
	}
}
