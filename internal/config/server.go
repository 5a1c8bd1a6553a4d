package config

import (
	"os"
	"time"
)

// Server holds the daemon settings, read from the environment so the
// generation YAML stays purely about river parameters.
type Server struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CatalogPath     string
	LogLevel        string
}

// LoadServer reads the daemon settings with sensible defaults.
func LoadServer() Server {
	return Server{
		Port:            getEnvStr("PORT", "8080"),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 90*time.Second),
		IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		CatalogPath:     getEnvStr("CATALOG_PATH", "./rivers.db"),
		LogLevel:        getEnvStr("LOG_LEVEL", "info"),
	}
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
