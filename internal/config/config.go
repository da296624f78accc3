package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	IdentityURL     string
	IdentityKey     string
	IdentityTimeout time.Duration

	AllowedOrigins []string
	Port           string
	GinMode        string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "roster"),
		DBPassword: getEnv("DB_PASSWORD", "roster"),
		DBName:     getEnv("DB_NAME", "roster_api"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		IdentityURL:     getEnv("IDENTITY_URL", "http://localhost:9999"),
		IdentityKey:     getEnv("IDENTITY_SERVICE_KEY", ""),
		IdentityTimeout: getDurationEnv("IDENTITY_TIMEOUT", 5*time.Second),

		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitEnv(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
