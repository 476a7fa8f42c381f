package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment        string
	ServerPort         int
	LogLevel           string
	StaticDir          string
	RedisURL           string
	CacheTTL           time.Duration
	AuthRateLimit      int
	CORSAllowedOrigins []string
	Database           DatabaseConfig
}

// DatabaseConfig holds connection settings for the roster database
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads configuration from environment variables. A .env file in the
// working directory is honored when present, and missing when absent.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", getEnv("PORT", "3000")))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	cacheTTLSeconds, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}

	authRateLimit, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT_PER_MINUTE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT_PER_MINUTE: %w", err)
	}

	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    port,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StaticDir:     getEnv("STATIC_DIR", "web/public"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheTTL:      time.Duration(cacheTTLSeconds) * time.Second,
		AuthRateLimit: authRateLimit,
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            dbPort,
			User:            getEnv("DB_USER", "rosterhub"),
			Password:        getEnv("DB_PASSWORD", "dev"),
			Database:        getEnv("DB_DATABASE", "rosterhub"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
