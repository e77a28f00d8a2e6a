package jobs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/notifications"
	"github.com/journeyapp/journey_backend/services"
)

// StreakReminderJob nudges users whose streak is one missed day away
// from resetting. It runs in the evening so users still have time to
// log an activity before the UTC day rolls over.
type StreakReminderJob struct {
	DB       *gorm.DB
	Notifier *services.NotificationService
}

func NewStreakReminderJob(db *gorm.DB, notifier *services.NotificationService) *StreakReminderJob {
	return &StreakReminderJob{DB: db, Notifier: notifier}
}

func (j *StreakReminderJob) Run() {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	var users []models.User
	if err := j.DB.Where("last_activity_date = ? AND streak > 0 AND status = ?", yesterday, "active").Find(&users).Error; err != nil {
		log.Printf("🔥 Streak reminder job: failed to load users: %v", err)
		return
	}

	if len(users) == 0 {
		return
	}

	for _, user := range users {
		title := "Keep your streak alive!"
		message := fmt.Sprintf("You're on a %d day streak. Read a verse today so you don't lose it.", user.Streak)

		if j.Notifier != nil {
			if err := j.Notifier.Notify(user.ID, "streak_reminder", title, message, map[string]interface{}{
				"streak": user.Streak,
			}); err != nil {
				log.Printf("🔥 Streak reminder job: notify %s failed: %v", user.ID, err)
			}
		}

		body := fmt.Sprintf("<p>Hi %s,</p><p>You're on a <strong>%d day</strong> reading streak. Open Journey and read today to keep it going!</p>", user.Username, user.Streak)
		go notifications.SendEmail(user.Username, user.Email, title, body)
	}

	log.Printf("✅ Streak reminder job: reminded %d user(s)", len(users))
}
