package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer    string // Issuer claim for tokens (default: fruitdex)
	JWTSecret string // Required: HS256 signing secret

	DatabaseFile string // Path to SQLite database file (default: ./fruitdex.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	VisionURL string // Optional: base URL of the fruit vision provider
	VisionKey string // Optional: API key for the vision provider

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrNoJWTSecret aborts startup: issuing unverifiable tokens or falling
// back to a baked-in secret would both be worse than refusing to boot.
var ErrNoJWTSecret = errors.New("AUTH_JWT_SECRET is required")

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // missing .env is the normal production case

	cfg := Config{
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "fruitdex"),
		JWTSecret:           os.Getenv("AUTH_JWT_SECRET"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "fruitdex.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		VisionURL:           os.Getenv("VISION_PROVIDER_URL"),
		VisionKey:           os.Getenv("VISION_PROVIDER_KEY"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrNoJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
