package initializers

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the tunables that drive the lifecycle engine. Everything is
// read from the environment once at startup; zero values disable the
// corresponding feature.
type Config struct {
	DaysBeforeArchive    int
	ReminderIntervalDays int
	JobTimeout           time.Duration
	SchedulerInterval    time.Duration
	AdminAPIKey          string
	PublicBaseURL        string
}

var AppConfig Config

func LoadConfig() {
	AppConfig = Config{
		DaysBeforeArchive:    envInt("DAYS_BEFORE_ARCHIVE", 0),
		ReminderIntervalDays: envInt("REMINDER_INTERVAL_DAYS", 0),
		JobTimeout:           time.Duration(envInt("JOB_TIMEOUT_SECONDS", 60)) * time.Second,
		SchedulerInterval:    time.Duration(envInt("SCHEDULER_INTERVAL_MINUTES", 0)) * time.Minute,
		AdminAPIKey:          os.Getenv("ADMIN_API_KEY"),
		PublicBaseURL:        os.Getenv("PUBLIC_BASE_URL"),
	}

	if AppConfig.AdminAPIKey == "" {
		log.Println("WARNING: ADMIN_API_KEY not set. Admin endpoints will reject all requests.")
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using %d", key, raw, fallback)
		return fallback
	}
	return val
}
