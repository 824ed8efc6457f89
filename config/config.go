package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Models   ModelsConfig
	Cache    CacheConfig
	Limits   LimitsConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

type ModelsConfig struct {
	// MorphologyDB is a .yaml or .db lexicon. Empty selects the builtin one.
	MorphologyDB string
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

type LimitsConfig struct {
	RequestTimeout   time.Duration
	MaxTextRunes     int
	BatchMaxItems    int
	BatchConcurrency int
	RateLimitRPS     float64
	RateLimitBurst   int
}

type SecurityConfig struct {
	APIKey      string
	CORSOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "camel-api"),
		},
		Models: ModelsConfig{
			MorphologyDB: getEnv("MORPHOLOGY_DB", ""),
		},
		Cache: CacheConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			TTL:           getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		},
		Limits: LimitsConfig{
			RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 5*time.Second),
			MaxTextRunes:     getEnvAsInt("MAX_TEXT_RUNES", 10000),
			BatchMaxItems:    getEnvAsInt("BATCH_MAX_ITEMS", 32),
			BatchConcurrency: getEnvAsInt("BATCH_CONCURRENCY", 4),
			RateLimitRPS:     getEnvAsFloat("RATE_LIMIT_RPS", 0),
			RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Security: SecurityConfig{
			APIKey:      getEnv("API_KEY", ""),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
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

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}

	if c.Cache.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.Limits.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}

	if c.Limits.MaxTextRunes < 0 {
		return fmt.Errorf("MAX_TEXT_RUNES must not be negative")
	}

	if c.Limits.BatchMaxItems < 1 {
		return fmt.Errorf("BATCH_MAX_ITEMS must be at least 1")
	}

	if c.Limits.BatchConcurrency < 1 {
		return fmt.Errorf("BATCH_CONCURRENCY must be at least 1")
	}

	if c.Limits.RateLimitRPS > 0 && c.Limits.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when RATE_LIMIT_RPS is set")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
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

// getEnvAsList splits a comma-separated value, dropping blank entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
