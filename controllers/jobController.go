package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/services"
)

// Cron-facing triggers for the background jobs. Each run gets its own
// timeout so a stuck run cannot outlive the invocation that started it;
// overlapping runs are safe because both jobs only touch rows matching
// their own query snapshot.

func RunArchiveJob(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), initializers.AppConfig.JobTimeout)
	defer cancel()

	result, err := services.ArchiveOldPrayers(ctx, initializers.AppConfig.DaysBeforeArchive)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func RunReminderJob(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), initializers.AppConfig.JobTimeout)
	defer cancel()

	result, err := services.SendReminders(ctx, initializers.AppConfig.ReminderIntervalDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
