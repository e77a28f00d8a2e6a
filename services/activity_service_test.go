package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

func newTestActivityService(db *gorm.DB) *ActivityService {
	points := NewPointsService(db, nil)
	streaks := NewStreakService(db, points, nil)
	achievements := NewAchievementService(db, points, nil)
	referrals := NewReferralService(db, points, nil)
	return NewActivityService(db, points, streaks, achievements, referrals)
}

func TestTrackRejectsUnknownKind(t *testing.T) {
	db := openTestDB(t)
	activity := newTestActivityService(db)
	user := createTestUser(t, db, "tara")

	if _, err := activity.Track(user.ID, ActivityKind("coffee_break"), TrackOptions{}); err == nil {
		t.Fatalf("Track accepted an unknown activity kind")
	}
}

func TestTrackReadingTimeRequiresMinutes(t *testing.T) {
	db := openTestDB(t)
	activity := newTestActivityService(db)
	user := createTestUser(t, db, "umar")

	if _, err := activity.Track(user.ID, ActivityReadingTime, TrackOptions{}); err == nil {
		t.Fatalf("Track accepted reading_time without minutes")
	}
}

func TestTrackVerseReadBumpsEverything(t *testing.T) {
	db := openTestDB(t)
	seedTestCatalog(t, db)
	activity := newTestActivityService(db)
	user := createTestUser(t, db, "vera")

	res, err := activity.Track(user.ID, ActivityVerseRead, TrackOptions{Reference: "john-3-16"})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	if res.PointsEarned != 5 {
		t.Fatalf("points earned = %d, want 5", res.PointsEarned)
	}
	if res.Streak == nil || res.Streak.Streak != 1 {
		t.Fatalf("streak = %+v, want 1", res.Streak)
	}
	if res.Achievements == nil || len(res.Achievements.NewlyUnlocked) != 1 || res.Achievements.NewlyUnlocked[0].Code != "first_verse" {
		t.Fatalf("achievements = %+v, want first_verse unlock", res.Achievements)
	}

	var stats models.UserStats
	if err := db.First(&stats, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.VersesRead != 1 {
		t.Fatalf("verses_read = %d, want 1", stats.VersesRead)
	}

	// 5 activity points plus the 10 point first_verse bonus.
	if res.Profile == nil || res.Profile.Points != 15 {
		t.Fatalf("profile points = %d, want 15", res.Profile.Points)
	}
}

func TestTrackReadingTimePaysPerMinute(t *testing.T) {
	db := openTestDB(t)
	activity := newTestActivityService(db)
	user := createTestUser(t, db, "walt")

	res, err := activity.Track(user.ID, ActivityReadingTime, TrackOptions{Minutes: 30})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if res.PointsEarned != 30 {
		t.Fatalf("points earned = %d, want 30", res.PointsEarned)
	}

	var stats models.UserStats
	if err := db.First(&stats, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.ReadingTimeMinutes != 30 {
		t.Fatalf("reading_time_minutes = %d, want 30", stats.ReadingTimeMinutes)
	}
}

func TestTrackCompletesPendingReferral(t *testing.T) {
	db := openTestDB(t)
	activity := newTestActivityService(db)
	referrer := createTestUser(t, db, "xena")
	referred := createTestUser(t, db, "yuri")
	createPendingReferral(t, db, referrer, referred)

	if _, err := activity.Track(referred.ID, ActivityDailyLogin, TrackOptions{}); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	var referral models.Referral
	if err := db.First(&referral, "referred_user_id = ?", referred.ID).Error; err != nil {
		t.Fatalf("failed to reload referral: %v", err)
	}
	if referral.Status != "completed" {
		t.Fatalf("referral status = %q, want completed", referral.Status)
	}
	if got := reloadUser(t, db, referrer.ID).Points; got != ReferrerRewardPoints {
		t.Fatalf("referrer points = %d, want %d", got, ReferrerRewardPoints)
	}
	// 10 for the login plus the 50 point referral welcome.
	if got := reloadUser(t, db, referred.ID).Points; got != 60 {
		t.Fatalf("referred points = %d, want 60", got)
	}
}

func TestTrackAccumulatesAcrossActivities(t *testing.T) {
	db := openTestDB(t)
	seedTestCatalog(t, db)
	activity := newTestActivityService(db)
	user := createTestUser(t, db, "zoey")

	if _, err := activity.Track(user.ID, ActivityVerseRead, TrackOptions{}); err != nil {
		t.Fatalf("verse_read failed: %v", err)
	}
	if _, err := activity.Track(user.ID, ActivityChapterCompleted, TrackOptions{}); err != nil {
		t.Fatalf("chapter_completed failed: %v", err)
	}
	res, err := activity.Track(user.ID, ActivityReadingTime, TrackOptions{Minutes: 70})
	if err != nil {
		t.Fatalf("reading_time failed: %v", err)
	}

	// 5 + 25 + 70 activity points, 10 for first_verse, then 50 for
	// point_collector once the balance crosses 100.
	if res.Profile.Points != 160 {
		t.Fatalf("points = %d, want 160", res.Profile.Points)
	}
	if res.Profile.Level != LevelForPoints(160) {
		t.Fatalf("level = %d, want %d", res.Profile.Level, LevelForPoints(160))
	}
	if res.Profile.Streak != 1 {
		t.Fatalf("streak = %d, want 1 (all same day)", res.Profile.Streak)
	}
}
