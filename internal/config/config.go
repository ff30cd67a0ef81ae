package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	// Workflow
	ReportWindow    = 7 * 24 * time.Hour // trailing window for report rate limiting
	ActivationDelay = 15 * time.Minute   // how long a new vacancy waits before auto-activation

	// Poller
	DefaultPollSpec = "@every 1m"

	// Limits
	DefaultMaxReportCount       = 5 // unresolved reports before a vacancy is pulled
	DefaultMaxReportsPerWindow  = 5 // reports a single user may file per window
	DefaultVacancyTTL           = 30 * 24 * time.Hour
	DefaultPageSize             = 20
	DefaultExternalCallTimeout  = 5 * time.Second
	DefaultNotificationChannel  = "notifications:recruiting"
)

type Config struct {
	HTTPPort    string
	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	UserServiceBaseURL string
	CVServiceBaseURL   string

	NotificationChannel string

	MaxReportCount      int64
	MaxReportsPerWindow int64
	VacancyTTL          time.Duration
	PollSpec            string

	ExternalCallTimeout time.Duration
}

// Load reads configuration from the environment. Required values abort startup.
func Load() *Config {
	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		PostgresDSN:         getEnv("DATABASE_URL", ""),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getInt("REDIS_DB", 0),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		UserServiceBaseURL:  getEnv("USER_SERVICE_URL", ""),
		CVServiceBaseURL:    getEnv("CV_SERVICE_URL", ""),
		NotificationChannel: getEnv("NOTIFICATION_CHANNEL", DefaultNotificationChannel),
		MaxReportCount:      int64(getInt("VACANCY_MAX_REPORT_COUNT", DefaultMaxReportCount)),
		MaxReportsPerWindow: int64(getInt("MAX_REPORTS_PER_WINDOW", DefaultMaxReportsPerWindow)),
		VacancyTTL:          getDuration("VACANCY_TTL", DefaultVacancyTTL),
		PollSpec:            getEnv("POLL_SPEC", DefaultPollSpec),
		ExternalCallTimeout: getDuration("EXTERNAL_CALL_TIMEOUT", DefaultExternalCallTimeout),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
