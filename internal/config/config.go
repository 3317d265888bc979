package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	Face       FaceConfig
	Assistant  AssistantConfig
	Superadmin SuperadminConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// FaceConfig points at the external face-recognition service.
type FaceConfig struct {
	BaseURL       string
	Timeout       time.Duration
	KioskKey      string
	MinConfidence float64
}

// AssistantConfig enables the remote reply generator when APIKey is set.
type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type SuperadminConfig struct {
	Email    string
	Password string
	Name     string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	faceTimeout, err := time.ParseDuration(getEnv("FACE_SERVICE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_SERVICE_TIMEOUT: %w", err)
	}

	minConfidence, err := strconv.ParseFloat(getEnv("FACE_MIN_CONFIDENCE", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_MIN_CONFIDENCE: %w", err)
	}

	assistantTimeout, err := time.ParseDuration(getEnv("ASSISTANT_TIMEOUT", "12s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ASSISTANT_TIMEOUT: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "hrms"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    jwtTTL,
		},
		Face: FaceConfig{
			BaseURL:       strings.TrimRight(getEnv("FACE_SERVICE_URL", "http://localhost:8001"), "/"),
			Timeout:       faceTimeout,
			KioskKey:      getEnv("FACE_KIOSK_KEY", ""),
			MinConfidence: minConfidence,
		},
		Assistant: AssistantConfig{
			APIKey:  getEnv("ASSISTANT_API_KEY", ""),
			BaseURL: strings.TrimRight(getEnv("ASSISTANT_BASE_URL", "https://api.openai.com"), "/"),
			Model:   getEnv("ASSISTANT_MODEL", "gpt-4.1-mini"),
			Timeout: assistantTimeout,
		},
		Superadmin: SuperadminConfig{
			Email:    strings.ToLower(strings.TrimSpace(getEnv("SUPERADMIN_EMAIL", ""))),
			Password: getEnv("SUPERADMIN_PASSWORD", ""),
			Name:     getEnv("SUPERADMIN_NAME", "Super Admin"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.Face.MinConfidence < 0 || c.Face.MinConfidence > 1 {
		return fmt.Errorf("FACE_MIN_CONFIDENCE must be between 0 and 1")
	}
	if (c.Superadmin.Email == "") != (c.Superadmin.Password == "") {
		return fmt.Errorf("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD must be set together")
	}
	return nil
}

// DSN renders the key/value connection string understood by pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
