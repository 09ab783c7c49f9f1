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

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	ElevenLabs ElevenLabsConfig
	Email      EmailConfig
	Demo       DemoConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration. Redis is optional; when disabled the
// dashboard stats cache falls back to the in-memory store.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// ElevenLabsConfig holds the conversational-agent provider configuration
type ElevenLabsConfig struct {
	APIKey           string
	BaseURL          string
	WebhookSecret    string
	ProvisionTimeout time.Duration
	VoiceID          string
	ModelID          string
	LLM              string
}

// EmailConfig holds the Resend email provider configuration
type EmailConfig struct {
	APIKey    string
	BaseURL   string
	FromEmail string
	AdminName string
	// OperatorCC is always added to the CC list of scheduling notifications
	OperatorCC string
}

// DemoConfig toggles the fixed demo identity provider
type DemoConfig struct {
	Enabled        bool
	OrganizationID string
	ProfileID      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "cea_dashboard"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-me-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "24h"),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:           getEnv("ELEVENLABS_API_KEY", ""),
			BaseURL:          getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io/v1"),
			WebhookSecret:    getEnv("ELEVENLABS_WEBHOOK_SECRET", ""),
			ProvisionTimeout: getEnvAsDuration("ELEVENLABS_PROVISION_TIMEOUT", "30s"),
			VoiceID:          getEnv("ELEVENLABS_VOICE_ID", "cjVigY5qzO86Huf0OWal"),
			ModelID:          getEnv("ELEVENLABS_MODEL_ID", "eleven_turbo_v2_5"),
			LLM:              getEnv("ELEVENLABS_LLM", "gpt-4o-mini"),
		},
		Email: EmailConfig{
			APIKey:     getEnv("RESEND_API_KEY", ""),
			BaseURL:    getEnv("RESEND_BASE_URL", "https://api.resend.com"),
			FromEmail:  getEnv("EMAIL_FROM", "onboarding@resend.dev"),
			AdminName:  getEnv("EMAIL_ADMIN_NAME", "Equipo CEA"),
			OperatorCC: getEnv("EMAIL_OPERATOR_CC", "edc@provivienda.mx"),
		},
		Demo: DemoConfig{
			Enabled:        getEnvAsBool("DEMO_MODE", false),
			OrganizationID: getEnv("DEMO_ORGANIZATION_ID", "00000000-0000-0000-0000-000000000001"),
			ProfileID:      getEnv("DEMO_PROFILE_ID", "00000000-0000-0000-0000-000000000002"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" {
		if c.ElevenLabs.APIKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY is required in production")
		}
		if c.JWT.Secret == "change-me-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
