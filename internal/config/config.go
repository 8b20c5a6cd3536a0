package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTIssuer    string
	AllowOrigins string

	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string

	// ListPageSize caps unfiltered /events listings.
	ListPageSize int
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    getEnv("JWT_ISSUER", "event-finder"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000, http://localhost:5173"),

		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		EmailFrom:     getEnv("EMAIL_FROM_ADDRESS", "noreply@eventfinder.local"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Event Finder"),

		ListPageSize: getEnvInt("LIST_PAGE_SIZE", 50),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
