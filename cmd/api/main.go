package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/journeyapp/journey_backend/database"
	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/jobs"
	"github.com/journeyapp/journey_backend/notifications"
	"github.com/journeyapp/journey_backend/routes"
	"github.com/journeyapp/journey_backend/services"
	"github.com/journeyapp/journey_backend/websocket"
)

func main() {
	db := database.Connect()
	database.Migrate(db)
	database.SeedAdmin(db)
	database.SeedAchievements(db)
	rdb := database.ConnectRedis()
	notifications.InitEmailService()

	hub := websocket.NewHub(db)
	go hub.Run()

	notifier := services.NewNotificationService(db, hub)
	points := services.NewPointsService(db, notifier)
	streaks := services.NewStreakService(db, points, notifier)
	achievements := services.NewAchievementService(db, points, notifier)
	referrals := services.NewReferralService(db, points, notifier)
	activity := services.NewActivityService(db, points, streaks, achievements, referrals)
	leaderboard := services.NewLeaderboardService(db, rdb)
	certificates := services.NewCertificateService(db)

	c := cron.New()
	c.AddJob("*/5 * * * *", jobs.NewLeaderboardRefreshJob(leaderboard))
	c.AddJob("0 18 * * *", jobs.NewStreakReminderJob(db, notifier))
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Journey",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		PassLocalsToViews: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Journey API",
		})
	})

	routes.AuthRoutes(app, handlers.NewAuthHandler(db))
	routes.ProfileRoutes(app, handlers.NewProfileHandler(db))
	routes.ActivityRoutes(app, handlers.NewActivityHandler(activity, notifier))
	routes.GamificationRoutes(app, handlers.NewGamificationHandler(db, leaderboard))
	routes.ReferralRoutes(app, handlers.NewReferralHandler(db, referrals))
	routes.CommunityRoutes(app, handlers.NewCommunityHandler(db, activity, points, notifier))
	routes.DevotionalRoutes(app, handlers.NewDevotionalHandler(db, activity))
	routes.PlanRoutes(app, handlers.NewPlanHandler(db, activity, certificates))
	routes.NotificationRoutes(app, handlers.NewNotificationHandler(db))
	routes.MessagingRoutes(app, handlers.NewMessagingHandler(db, hub))
	routes.AdminRoutes(app, handlers.NewAdminHandler(db))
	routes.UploadRoutes(app, handlers.NewUploadHandler(db))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
