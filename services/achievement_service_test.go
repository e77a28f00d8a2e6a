package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

func seedTestCatalog(t *testing.T, db *gorm.DB) map[string]models.Achievement {
	t.Helper()

	catalog := []models.Achievement{
		{Code: "first_verse", Name: "First Verse", Description: "Read your first verse", Category: "reading", Points: 10, CriteriaType: models.CriteriaVersesRead, CriteriaValue: 1, SortOrder: 1},
		{Code: "verses_10", Name: "Ten Verses", Description: "Read 10 verses", Category: "reading", Points: 25, CriteriaType: models.CriteriaVersesRead, CriteriaValue: 10, SortOrder: 2},
		{Code: "point_collector", Name: "Point Collector", Description: "Earn 100 points", Category: "points", Points: 50, CriteriaType: models.CriteriaPoints, CriteriaValue: 100, SortOrder: 3},
		{Code: "streak_3", Name: "Three Day Streak", Description: "Keep a 3 day streak", Category: "streak", Points: 15, CriteriaType: models.CriteriaStreak, CriteriaValue: 3, SortOrder: 4},
	}

	byCode := make(map[string]models.Achievement, len(catalog))
	for i := range catalog {
		if err := db.Create(&catalog[i]).Error; err != nil {
			t.Fatalf("failed to seed achievement %s: %v", catalog[i].Code, err)
		}
		byCode[catalog[i].Code] = catalog[i]
	}
	return byCode
}

func TestCheckAndAwardUnlocksSatisfiedCriteria(t *testing.T) {
	db := openTestDB(t)
	seedTestCatalog(t, db)
	points := NewPointsService(db, nil)
	achievements := NewAchievementService(db, points, nil)
	user := createTestUser(t, db, "jack")

	if err := db.Model(&models.UserStats{}).Where("user_id = ?", user.ID).
		UpdateColumn("verses_read", 3).Error; err != nil {
		t.Fatalf("failed to set stats: %v", err)
	}

	res, err := achievements.CheckAndAward(user.ID)
	if err != nil {
		t.Fatalf("CheckAndAward failed: %v", err)
	}

	if len(res.NewlyUnlocked) != 1 {
		t.Fatalf("newly unlocked = %d, want 1", len(res.NewlyUnlocked))
	}
	if res.NewlyUnlocked[0].Code != "first_verse" {
		t.Fatalf("unlocked %s, want first_verse", res.NewlyUnlocked[0].Code)
	}
	if res.PointsAwarded != 10 {
		t.Fatalf("points awarded = %d, want 10", res.PointsAwarded)
	}

	fresh := reloadUser(t, db, user.ID)
	if fresh.Points != 10 {
		t.Fatalf("user points = %d, want 10", fresh.Points)
	}
}

func TestCheckAndAwardIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedTestCatalog(t, db)
	points := NewPointsService(db, nil)
	achievements := NewAchievementService(db, points, nil)
	user := createTestUser(t, db, "kate")

	if err := db.Model(&models.UserStats{}).Where("user_id = ?", user.ID).
		UpdateColumn("verses_read", 12).Error; err != nil {
		t.Fatalf("failed to set stats: %v", err)
	}

	first, err := achievements.CheckAndAward(user.ID)
	if err != nil {
		t.Fatalf("first CheckAndAward failed: %v", err)
	}
	if len(first.NewlyUnlocked) != 2 {
		t.Fatalf("first sweep unlocked %d, want 2", len(first.NewlyUnlocked))
	}

	second, err := achievements.CheckAndAward(user.ID)
	if err != nil {
		t.Fatalf("second CheckAndAward failed: %v", err)
	}
	if len(second.NewlyUnlocked) != 0 {
		t.Fatalf("second sweep unlocked %d, want 0", len(second.NewlyUnlocked))
	}
	if second.PointsAwarded != 0 {
		t.Fatalf("second sweep awarded %d points, want 0", second.PointsAwarded)
	}

	if got := countTransactions(t, db, user.ID, "achievement"); got != 2 {
		t.Fatalf("achievement ledger rows = %d, want 2", got)
	}
}

func TestCheckAndAwardChainsPointCriteria(t *testing.T) {
	db := openTestDB(t)
	seedTestCatalog(t, db)
	points := NewPointsService(db, nil)
	achievements := NewAchievementService(db, points, nil)
	user := createTestUser(t, db, "liam")

	if _, err := points.AddPoints(user.ID, 120, "verse_read", ""); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}

	res, err := achievements.CheckAndAward(user.ID)
	if err != nil {
		t.Fatalf("CheckAndAward failed: %v", err)
	}
	if len(res.NewlyUnlocked) != 1 || res.NewlyUnlocked[0].Code != "point_collector" {
		t.Fatalf("got %+v, want point_collector unlock", res.NewlyUnlocked)
	}

	fresh := reloadUser(t, db, user.ID)
	if fresh.Points != 170 {
		t.Fatalf("points = %d, want 170 (120 earned + 50 bonus)", fresh.Points)
	}
	if fresh.Level != LevelForPoints(170) {
		t.Fatalf("level = %d, want %d", fresh.Level, LevelForPoints(170))
	}
}

func TestCheckAndAwardUsesLongestStreak(t *testing.T) {
	db := openTestDB(t)
	seedTestCatalog(t, db)
	points := NewPointsService(db, nil)
	achievements := NewAchievementService(db, points, nil)
	user := createTestUser(t, db, "mona")

	// The current streak was lost, but the longest streak keeps the unlock.
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"streak": 1, "longest_streak": 5}).Error; err != nil {
		t.Fatalf("failed to set streaks: %v", err)
	}

	res, err := achievements.CheckAndAward(user.ID)
	if err != nil {
		t.Fatalf("CheckAndAward failed: %v", err)
	}
	found := false
	for _, a := range res.NewlyUnlocked {
		if a.Code == "streak_3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("streak_3 not unlocked, got %+v", res.NewlyUnlocked)
	}
}
