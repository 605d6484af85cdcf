package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// LLMConfig holds Gemini backend configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// ExtractConfig holds pipeline behavior knobs
type ExtractConfig struct {
	// Timezone is emitted verbatim in every appointment record. No timezone
	// inference happens anywhere in the pipeline.
	Timezone string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
		},
		Extract: ExtractConfig{
			Timezone: getEnv("APPT_TIMEZONE", "Asia/Kolkata"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Extract.Timezone == "" {
		return NewAppError("CONFIG_ERROR", "APPT_TIMEZONE is required", ErrInvalidInput)
	}
	return nil
}
