package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Database *DatabaseConfig `yaml:"database"`
	Redis    *RedisConfig    `yaml:"redis"`
	SMTP     *SMTPConfig     `yaml:"smtp"`
	Storage  *StorageConfig  `yaml:"storage"`
	Firebase *FirebaseConfig `yaml:"firebase"`
	Stripe   *StripeConfig   `yaml:"stripe"`
	Claims   *ClaimsConfig   `yaml:"claims"`
}

type AppConfig struct {
	Name           string   `yaml:"name"`
	Version        string   `yaml:"version"`
	Environment    string   `yaml:"environment"`
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	BaseURL        string   `yaml:"base_url"`
	FrontendURL    string   `yaml:"frontend_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Debug          bool     `yaml:"debug"`
	LogLevel       string   `yaml:"log_level"`
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		SMTP:     loadSMTPConfig(),
		Storage:  loadStorageConfig(),
		Firebase: loadFirebaseConfig(),
		Stripe:   loadStripeConfig(),
		Claims:   loadClaimsConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	frontendURL := getEnv("APP_FRONTEND_URL", "https://lazymint.com")
	return &AppConfig{
		Name:           getEnv("APP_NAME", "LazyMint"),
		Version:        getEnv("APP_VERSION", "1.0.0"),
		Environment:    getEnv("APP_ENV", "development"),
		Port:           getEnvAsInt("APP_PORT", 8080),
		Host:           getEnv("APP_HOST", "localhost"),
		BaseURL:        getEnv("APP_BASE_URL", "http://localhost:8080"),
		FrontendURL:    frontendURL,
		AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{frontendURL}),
		Debug:          getEnvAsBool("APP_DEBUG", true),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
