package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the document store settings. URL and Name may both be
// empty; the API still starts and reports the store as unavailable.
type DatabaseConfig struct {
	URL            string
	Name           string
	ConnectTimeout time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

type CORSConfig struct {
	AllowOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		Database: DatabaseConfig{
			URL:            os.Getenv("DATABASE_URL"),
			Name:           os.Getenv("DATABASE_NAME"),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	for _, o := range c.CORS.AllowOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS_ALLOW_ORIGINS entry %q must start with http:// or https://", o)
		}
	}
	return nil
}

// URLSet reports whether DATABASE_URL was provided.
func (d DatabaseConfig) URLSet() bool { return d.URL != "" }

// NameSet reports whether DATABASE_NAME was provided.
func (d DatabaseConfig) NameSet() bool { return d.Name != "" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
