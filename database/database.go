package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/journeyapp/journey_backend/configs"
	"github.com/journeyapp/journey_backend/models"
)

// Connect opens the Postgres connection and returns the handle. Callers own
// the handle and pass it to whoever needs it; there is no package global.
func Connect() *gorm.DB {
	dsn := config.Config("DATABASE_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
	return db
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserStats{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.StreakActivity{},
		&models.StreakMilestone{},
		&models.Referral{},
		&models.PointsTransaction{},
		&models.Notification{},
		&models.CommunityPost{},
		&models.PostComment{},
		&models.PostLike{},
		&models.Devotional{},
		&models.ReadingPlan{},
		&models.UserReadingPlan{},
		&models.Certificate{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin(db *gorm.DB) {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Username: config.Config("ADMIN_USERNAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := db.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	stats := models.UserStats{UserID: adminUser.ID}
	if err := db.Create(&stats).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user stats: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
