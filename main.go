package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/controllers"
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/services"
)

func init() {
	initializers.LoadEnv()
	initializers.LoadConfig()
	initializers.ConnectDB()
	services.InitEmailService()
	services.InitPushNotificationService()
}

func main() {
	router := gin.Default()

	// Keyed per route and client so the tight submission limit cannot
	// starve the wall reads from the same address.
	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.FullPath() + "|" + c.ClientIP()
	}

	// public wall + submission routes
	router.GET("/prayers", middlewares.RateLimitMiddleware(10, 10, getKey), controllers.GetPrayerWall)
	router.POST("/prayers", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitPrayer)
	router.POST("/prayers/:prayer_id/updates", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitPrayerUpdate)
	router.POST("/prayers/:prayer_id/deletion-requests", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitDeletionRequest)
	router.POST("/prayers/:prayer_id/status-requests", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitStatusChangeRequest)
	router.POST("/updates/:update_id/deletion-requests", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitUpdateDeletionRequest)

	admin := router.Group("/admin")
	admin.Use(middlewares.CheckAdmin)
	admin.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		admin.GET("/pending", controllers.GetPendingItems)

		admin.POST("/prayers/:prayer_id/approve", controllers.ApprovePrayer)
		admin.POST("/prayers/:prayer_id/deny", controllers.DenyPrayer)
		admin.PATCH("/prayers/:prayer_id/status", controllers.UpdatePrayerStatus)

		admin.POST("/updates/:update_id/approve", controllers.ApprovePrayerUpdate)
		admin.POST("/updates/:update_id/deny", controllers.DenyPrayerUpdate)

		admin.POST("/deletion-requests/:request_id/approve", controllers.ApproveDeletionRequest)
		admin.POST("/deletion-requests/:request_id/deny", controllers.DenyDeletionRequest)
		admin.POST("/update-deletion-requests/:request_id/approve", controllers.ApproveUpdateDeletionRequest)
		admin.POST("/update-deletion-requests/:request_id/deny", controllers.DenyUpdateDeletionRequest)
		admin.POST("/status-requests/:request_id/approve", controllers.ApproveStatusChangeRequest)
		admin.POST("/status-requests/:request_id/deny", controllers.DenyStatusChangeRequest)

		admin.GET("/subscribers", controllers.GetSubscribers)
		admin.POST("/subscribers", controllers.EnsureSubscriber)
		admin.PATCH("/subscribers/:subscriber_id", controllers.UpdateSubscriber)
		admin.POST("/push-tokens", controllers.StorePushToken)

		// cron-facing job triggers
		admin.POST("/jobs/archive", controllers.RunArchiveJob)
		admin.POST("/jobs/reminders", controllers.RunReminderJob)
	}

	if interval := initializers.AppConfig.SchedulerInterval; interval > 0 {
		go runScheduledJobs(interval)
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}

// runScheduledJobs is the built-in alternative to an external cron: both
// jobs fire on one ticker, each run bounded by the configured job timeout.
func runScheduledJobs(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), initializers.AppConfig.JobTimeout)

		if _, err := services.ArchiveOldPrayers(ctx, initializers.AppConfig.DaysBeforeArchive); err != nil {
			log.Printf("Archive job failed: %v", err)
		}

		if _, err := services.SendReminders(ctx, initializers.AppConfig.ReminderIntervalDays); err != nil {
			log.Printf("Reminder job failed: %v", err)
		}

		cancel()
	}
}
