package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Port    string
	GinMode string

	LogLevel  string
	LogFormat string

	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string

	GeolocationAPIURL string
	ReputationAPIURL  string

	LookupTimeout   time.Duration
	DispatchTimeout time.Duration

	DBDriver string
	DBDSN    string

	MaxBodyBytes int64
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:              getString("PORT", "8080"),
		GinMode:           getString("GIN_MODE", "release"),
		LogLevel:          getString("LOG_LEVEL", "info"),
		LogFormat:         getString("LOG_FORMAT", "json"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:    os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramAPIURL:    getString("TELEGRAM_API_URL", "https://api.telegram.org"),
		GeolocationAPIURL: getString("GEOLOCATION_API_URL", "http://ip-api.com"),
		ReputationAPIURL:  getString("REPUTATION_API_URL", "https://ipapi.co"),
		LookupTimeout:     getDuration("LOOKUP_TIMEOUT", 3*time.Second),
		DispatchTimeout:   getDuration("DISPATCH_TIMEOUT", 5*time.Second),
		DBDriver:          getString("DB_DRIVER", "sqlite"),
		DBDSN:             getString("DB_DSN", "data/portfolio.db"),
		MaxBodyBytes:      getInt64("MAX_BODY_BYTES", 10<<20),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go duration strings ("3s", "500ms").
func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}
