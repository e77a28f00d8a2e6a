package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/journeyapp/journey_backend/models"
)

// openTestDB returns an isolated in-memory database with the gamification
// schema migrated. Connections are capped at one so every query sees the same
// in-memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserStats{},
		&models.PointsTransaction{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.StreakActivity{},
		&models.StreakMilestone{},
		&models.Referral{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	testUserSeq++
	code := fmt.Sprintf("REF%05d", testUserSeq)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		Password:     "not-a-real-hash",
		Role:         "user",
		Status:       "active",
		Level:        1,
		ReferralCode: &code,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	if err := db.Create(&models.UserStats{UserID: user.ID}).Error; err != nil {
		t.Fatalf("failed to create stats for test user %s: %v", username, err)
	}
	return &user
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *models.User {
	t.Helper()

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload user %s: %v", id, err)
	}
	return &user
}

func countTransactions(t *testing.T, db *gorm.DB, userID uuid.UUID, reason string) int64 {
	t.Helper()

	var count int64
	query := db.Model(&models.PointsTransaction{}).Where("user_id = ?", userID)
	if reason != "" {
		query = query.Where("reason = ?", reason)
	}
	if err := query.Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}
