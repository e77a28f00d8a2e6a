package database

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/journeyapp/journey_backend/models"
)

// achievementCatalog is the static catalog. Seeding is idempotent: codes are
// unique and existing rows are left untouched.
var achievementCatalog = []models.Achievement{
	// Reading
	{Code: "first_verse", Name: "First Steps", Description: "Read your first verse", Category: "reading", Points: 10, CriteriaType: models.CriteriaVersesRead, CriteriaValue: 1},
	{Code: "verses_10", Name: "Getting Started", Description: "Read 10 verses", Category: "reading", Points: 15, CriteriaType: models.CriteriaVersesRead, CriteriaValue: 10},
	{Code: "verses_100", Name: "Scripture Seeker", Description: "Read 100 verses", Category: "reading", Points: 50, CriteriaType: models.CriteriaVersesRead, CriteriaValue: 100},
	{Code: "verses_1000", Name: "Word Devourer", Description: "Read 1,000 verses", Category: "reading", Points: 200, CriteriaType: models.CriteriaVersesRead, CriteriaValue: 1000},
	{Code: "first_chapter", Name: "Chapter One", Description: "Complete your first chapter", Category: "reading", Points: 15, CriteriaType: models.CriteriaChaptersCompleted, CriteriaValue: 1},
	{Code: "chapters_25", Name: "Page Turner", Description: "Complete 25 chapters", Category: "reading", Points: 75, CriteriaType: models.CriteriaChaptersCompleted, CriteriaValue: 25},
	{Code: "chapters_100", Name: "Deep Reader", Description: "Complete 100 chapters", Category: "reading", Points: 250, CriteriaType: models.CriteriaChaptersCompleted, CriteriaValue: 100},
	{Code: "reading_hour", Name: "An Hour in the Word", Description: "Read for 60 minutes total", Category: "reading", Points: 25, CriteriaType: models.CriteriaReadingTime, CriteriaValue: 60},
	{Code: "reading_day", Name: "A Day in the Word", Description: "Read for 24 hours total", Category: "reading", Points: 150, CriteriaType: models.CriteriaReadingTime, CriteriaValue: 1440},
	// Streaks
	{Code: "streak_3", Name: "Warming Up", Description: "Keep a 3-day streak", Category: "streak", Points: 15, CriteriaType: models.CriteriaStreak, CriteriaValue: 3},
	{Code: "streak_7", Name: "Week of Faith", Description: "Keep a 7-day streak", Category: "streak", Points: 30, CriteriaType: models.CriteriaStreak, CriteriaValue: 7},
	{Code: "streak_30", Name: "Faithful Month", Description: "Keep a 30-day streak", Category: "streak", Points: 100, CriteriaType: models.CriteriaStreak, CriteriaValue: 30},
	{Code: "streak_100", Name: "Centurion", Description: "Keep a 100-day streak", Category: "streak", Points: 300, CriteriaType: models.CriteriaStreak, CriteriaValue: 100},
	{Code: "streak_365", Name: "Year of Devotion", Description: "Keep a 365-day streak", Category: "streak", Points: 1000, CriteriaType: models.CriteriaStreak, CriteriaValue: 365},
	// Points
	{Code: "point_collector", Name: "Point Collector", Description: "Earn 100 points", Category: "points", Points: 50, CriteriaType: models.CriteriaPoints, CriteriaValue: 100},
	{Code: "points_500", Name: "Point Hoarder", Description: "Earn 500 points", Category: "points", Points: 75, CriteriaType: models.CriteriaPoints, CriteriaValue: 500},
	{Code: "points_1000", Name: "Point Master", Description: "Earn 1,000 points", Category: "points", Points: 100, CriteriaType: models.CriteriaPoints, CriteriaValue: 1000},
	{Code: "points_5000", Name: "Point Legend", Description: "Earn 5,000 points", Category: "points", Points: 250, CriteriaType: models.CriteriaPoints, CriteriaValue: 5000},
	// Devotionals & prayer
	{Code: "first_devotional", Name: "Devoted Writer", Description: "Create your first devotional", Category: "devotional", Points: 20, CriteriaType: models.CriteriaDevotionalsCreated, CriteriaValue: 1},
	{Code: "devotionals_10", Name: "Devotional Author", Description: "Create 10 devotionals", Category: "devotional", Points: 75, CriteriaType: models.CriteriaDevotionalsCreated, CriteriaValue: 10},
	{Code: "first_prayer", Name: "Prayer Warrior", Description: "Share your first prayer", Category: "prayer", Points: 15, CriteriaType: models.CriteriaPrayersShared, CriteriaValue: 1},
	{Code: "prayers_25", Name: "Intercessor", Description: "Share 25 prayers", Category: "prayer", Points: 100, CriteriaType: models.CriteriaPrayersShared, CriteriaValue: 25},
	// Community
	{Code: "first_post", Name: "Community Voice", Description: "Publish your first community post", Category: "community", Points: 10, CriteriaType: models.CriteriaCommunityPosts, CriteriaValue: 1},
	{Code: "posts_25", Name: "Encourager", Description: "Publish 25 community posts", Category: "community", Points: 75, CriteriaType: models.CriteriaCommunityPosts, CriteriaValue: 25},
	{Code: "first_friend", Name: "Fellowship", Description: "Add your first friend", Category: "community", Points: 10, CriteriaType: models.CriteriaFriendsCount, CriteriaValue: 1},
	{Code: "friends_10", Name: "Community Builder", Description: "Add 10 friends", Category: "community", Points: 50, CriteriaType: models.CriteriaFriendsCount, CriteriaValue: 10},
	// Plans
	{Code: "first_plan", Name: "Committed", Description: "Complete your first reading plan", Category: "plan", Points: 100, CriteriaType: models.CriteriaPlansCompleted, CriteriaValue: 1},
	{Code: "plans_5", Name: "Plan Finisher", Description: "Complete 5 reading plans", Category: "plan", Points: 300, CriteriaType: models.CriteriaPlansCompleted, CriteriaValue: 5},
	// Loyalty
	{Code: "week_old", Name: "One Week In", Description: "Be a member for 7 days", Category: "loyalty", Points: 10, CriteriaType: models.CriteriaAccountAgeDays, CriteriaValue: 7},
	{Code: "month_old", Name: "Regular", Description: "Be a member for 30 days", Category: "loyalty", Points: 25, CriteriaType: models.CriteriaAccountAgeDays, CriteriaValue: 30},
	{Code: "year_old", Name: "Veteran", Description: "Be a member for a year", Category: "loyalty", Points: 100, CriteriaType: models.CriteriaAccountAgeDays, CriteriaValue: 365},
}

func SeedAchievements(db *gorm.DB) {
	for i := range achievementCatalog {
		achievementCatalog[i].SortOrder = i
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&achievementCatalog).Error
	if err != nil {
		log.Fatalf("🔥 Failed to seed achievement catalog: %v", err)
		return
	}
	log.Printf("✅ Achievement catalog seeded (%d entries)", len(achievementCatalog))
}
