package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	StorageBucket   string
	GeocoderBaseURL string
	EmailAPIKey     string
	EmailFromAddr   string
	SweepIntervalMinutes int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		GeocoderBaseURL: getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		EmailAPIKey:     getEnv("EMAIL_API_KEY", ""),
		EmailFromAddr:   getEnv("EMAIL_FROM_ADDR", "notifications@circularbuild.app"),
		SweepIntervalMinutes: getEnvAsInt64("SWEEP_INTERVAL_MINUTES", 60),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
