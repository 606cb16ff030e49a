package confs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// IANA zone name used to stamp sensor readings. The original
	// deployment pinned Europe/Kyiv; kept as the default on purpose.
	IrrigationTZ string

	SessionTTL            time.Duration
	DowntimeAfter         time.Duration
	DowntimeCheckInterval time.Duration
}

// Load reads .env when present and builds the typed configuration from
// environment variables with sensible fallbacks.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	sessionHours := getEnvInt("SESSION_TTL_HOURS", 12)
	downtimeMinutes := getEnvInt("DOWNTIME_AFTER_MINUTES", 30)
	checkMinutes := getEnvInt("DOWNTIME_CHECK_INTERVAL_MINUTES", 5)

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "3536"),
		IrrigationTZ:          getEnv("IRRIGATION_TZ", "Europe/Kyiv"),
		SessionTTL:            time.Duration(sessionHours) * time.Hour,
		DowntimeAfter:         time.Duration(downtimeMinutes) * time.Minute,
		DowntimeCheckInterval: time.Duration(checkMinutes) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("warning: %s is not a number, using %d", key, fallback)
	}
	return fallback
}
