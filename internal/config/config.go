// Package config reads application configuration from environment
// variables, with a .env file loaded when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type UploadConfig struct {
	// MaxSizeMB caps the accepted multipart body size.
	MaxSizeMB int
	// TempDir is where uploads are staged before extraction; empty means
	// the system temp directory.
	TempDir string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 5000),
		},
		Upload: UploadConfig{
			MaxSizeMB: getEnvAsInt("UPLOAD_MAX_SIZE_MB", 32),
			TempDir:   getEnv("UPLOAD_TEMP_DIR", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
