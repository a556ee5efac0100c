// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start. All fields have
// working defaults so a bare `go run ./cmd/server` comes up locally.
type Config struct {
	Port          string
	DBPath        string
	AppName       string
	AllowedOrigin string
	LogLevel      string
}

// Load reads a .env file if one is present, then resolves each setting
// from the environment.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "./data/tripsplit.db"),
		AppName:       getEnv("APP_NAME", "TripSplit"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
